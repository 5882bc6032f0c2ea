/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: bitmap.go
Description: Edge-coverage bitmap for decoded surrogate-model state paths.
A bitmap holds one presence bit per possible state transition (N*N bits for N
states) and is the coverage signal fed back to the fuzzer and aggregated into
coverage-over-time traces.
*/

package coverage

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/kleascm/akaylee-surrogate/pkg/interfaces"
)

// ErrStateOutOfRange reports a state path index outside [0, N). This is a
// caller contract violation: paths must come from a decoder built with the
// same state count.
var ErrStateOutOfRange = errors.New("state index out of range")

// Bitmap is an edge-coverage map over an N-state model. Bit src*N+dst means
// the transition src->dst was traversed at least once. It is a presence set,
// never a hit counter.
type Bitmap struct {
	states int
	bits   *bitset.BitSet
}

// NewBitmap creates an all-zero bitmap for an N-state model.
func NewBitmap(states int) *Bitmap {
	return &Bitmap{
		states: states,
		bits:   bitset.New(uint(states * states)),
	}
}

// BuildBitmap converts a decoded state path into an edge-coverage bitmap.
// Every consecutive pair (path[i], path[i+1]) sets one bit; repeated
// traversals of the same edge are idempotent. Paths shorter than two states
// produce an all-zero bitmap. States must match the N the path was decoded
// with; callers passing a different N get ErrStateOutOfRange (or a silently
// wrong map, which no bounds check can detect).
func BuildBitmap(path interfaces.StatePath, states int) (*Bitmap, error) {
	bm := NewBitmap(states)
	for i := 0; i+1 < len(path); i++ {
		if err := bm.Set(path[i], path[i+1]); err != nil {
			return nil, fmt.Errorf("path position %d: %w", i, err)
		}
	}
	return bm, nil
}

// States returns the state count N this bitmap was built for.
func (b *Bitmap) States() int {
	return b.states
}

// Set marks the edge src->dst as covered.
func (b *Bitmap) Set(src, dst int) error {
	if src < 0 || src >= b.states {
		return fmt.Errorf("%w: src=%d, states=%d", ErrStateOutOfRange, src, b.states)
	}
	if dst < 0 || dst >= b.states {
		return fmt.Errorf("%w: dst=%d, states=%d", ErrStateOutOfRange, dst, b.states)
	}
	b.bits.Set(uint(src*b.states + dst))
	return nil
}

// Has reports whether the edge src->dst is covered. Out-of-range indices
// report false.
func (b *Bitmap) Has(src, dst int) bool {
	if src < 0 || src >= b.states || dst < 0 || dst >= b.states {
		return false
	}
	return b.bits.Test(uint(src*b.states + dst))
}

// Count returns the number of covered edges.
func (b *Bitmap) Count() int {
	return int(b.bits.Count())
}

// Fraction returns the covered share of all N*N possible edges, in [0,1].
func (b *Bitmap) Fraction() float64 {
	return float64(b.Count()) / float64(b.states*b.states)
}

// Union ORs other into b. Both bitmaps must share the same state count.
func (b *Bitmap) Union(other *Bitmap) error {
	if other.states != b.states {
		return fmt.Errorf("%w: have %d states, got %d", ErrStateCountMismatch, b.states, other.states)
	}
	b.bits.InPlaceUnion(other.bits)
	return nil
}

// Clone returns an independent copy of the bitmap.
func (b *Bitmap) Clone() *Bitmap {
	return &Bitmap{states: b.states, bits: b.bits.Clone()}
}

// Vector exposes the bitmap as a flat 0/1 byte vector of length N*N, the
// contract expected by coverage feedback consumers.
func (b *Bitmap) Vector() []byte {
	out := make([]byte, b.states*b.states)
	for i, ok := b.bits.NextSet(0); ok; i, ok = b.bits.NextSet(i + 1) {
		out[i] = 1
	}
	return out
}
