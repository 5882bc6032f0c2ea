/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: scorer.go
Description: Coverage-growth similarity scorer for the Akaylee Surrogate
Evaluator. Normalizes two coverage-over-time traces, extracts growth events,
matches them greedily within a position window, and condenses the result into
a single dissimilarity score. Measures growth timing, not absolute coverage
level.
*/

package similarity

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// DefaultWindow is the maximum position offset between two growth events
// that still counts as the same growth moment.
const DefaultWindow = 5

// Match pairs growth event A (index into curve A's gradient) with growth
// event B at absolute position distance Distance <= window.
type Match struct {
	A        int
	B        int
	Distance int
}

// Normalize prepares a coverage trace for comparison: a synthetic leading
// 0.0 represents the state before any input was processed, then the whole
// sequence is min-max normalized to [0,1].
//
// A flat curve has no range to normalize over; by convention it becomes 0.0
// at the first position and 1.0 everywhere after, treating an unchanging
// curve as fully covered from the start. Scores are only comparable across
// runs if this convention is preserved.
func Normalize(curve []float64) []float64 {
	out := make([]float64, len(curve)+1)
	copy(out[1:], curve)
	if len(curve) == 0 {
		return out
	}

	min := floats.Min(out)
	max := floats.Max(out)
	if min == max {
		for i := 1; i < len(out); i++ {
			out[i] = 1.0
		}
		return out
	}
	for i := range out {
		out[i] = (out[i] - min) / (max - min)
	}
	return out
}

// gradient is the discrete forward difference of curve, length len(curve)-1.
func gradient(curve []float64) []float64 {
	if len(curve) < 2 {
		return nil
	}
	g := make([]float64, len(curve)-1)
	for i := range g {
		g[i] = curve[i+1] - curve[i]
	}
	return g
}

// ExtractEvents returns the growth events of a curve: every index whose
// forward difference is strictly positive. A curve of length L yields at
// most L-1 events.
func ExtractEvents(curve []float64) []int {
	return eventsOf(gradient(curve))
}

func eventsOf(grad []float64) []int {
	var events []int
	for i, g := range grad {
		if g > 0 {
			events = append(events, i)
		}
	}
	return events
}

// Scorer compares the growth pattern of two coverage traces.
type Scorer struct {
	// Window bounds how far apart (in trace positions) two growth events
	// may sit and still be matched to each other. Zero or negative falls
	// back to DefaultWindow, so a zero-value Scorer is usable.
	Window int
}

// NewScorer creates a scorer with the given matching window.
func NewScorer(window int) (*Scorer, error) {
	if window < 1 {
		return nil, fmt.Errorf("window must be positive, got %d", window)
	}
	return &Scorer{Window: window}, nil
}

// Score computes the growth-timing dissimilarity of two coverage traces.
// 0 means the growth patterns align perfectly; larger values mean more
// mismatch. The score is deterministic and symmetric in its arguments.
//
// Both curves are normalized, their growth events extracted over the common
// gradient range, and events paired by greedy windowed matching: candidate
// pairs within Window positions, closest first, each event used at most
// once. This greedily approximates minimum-weight bipartite matching;
// exactness is traded for speed and determinism.
//
// Matched pairs cost their normalized squared position error plus squared
// gradient error; every unmatched event costs the saturated worst case of 2.
// The sum is normalized by 2*(total event count). Two curves with no growth
// events at all score 0.0 by convention: the scorer measures growth timing
// and sees no timing to disagree about. It deliberately does not detect
// level differences between flat curves.
func (s *Scorer) Score(curveA, curveB []float64) float64 {
	window := s.Window
	if window < 1 {
		window = DefaultWindow
	}

	normA := Normalize(curveA)
	normB := Normalize(curveB)

	gradA := gradient(normA)
	gradB := gradient(normB)

	common := len(gradA)
	if len(gradB) < common {
		common = len(gradB)
	}
	eventsA := eventsOf(gradA[:common])
	eventsB := eventsOf(gradB[:common])

	if len(eventsA) == 0 && len(eventsB) == 0 {
		return 0.0
	}

	matches := matchEvents(eventsA, eventsB, window)

	matchedA := make(map[int]bool, len(matches))
	matchedB := make(map[int]bool, len(matches))
	score := 0.0
	for _, m := range matches {
		matchedA[m.A] = true
		matchedB[m.B] = true
		posErr := float64(m.Distance) / float64(window)
		gradErr := gradA[m.A] - gradB[m.B]
		score += posErr*posErr + gradErr*gradErr
	}

	// Worst case per absent event: one unit squared in position, one in
	// gradient.
	for _, a := range eventsA {
		if !matchedA[a] {
			score += 2
		}
	}
	for _, b := range eventsB {
		if !matchedB[b] {
			score += 2
		}
	}

	return score / float64(2*(len(eventsA)+len(eventsB)))
}

// matchEvents runs the greedy windowed matching over the two event index
// sets. Candidates are ordered by distance first; ties order by the
// unordered pair (min, max) so that swapping the two curves cannot change
// which matches are accepted.
func matchEvents(eventsA, eventsB []int, window int) []Match {
	var candidates []Match
	for _, a := range eventsA {
		for _, b := range eventsB {
			if b+window < a {
				continue
			}
			if a+window < b {
				break
			}
			candidates = append(candidates, Match{A: a, B: b, Distance: abs(a - b)})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		ci, cj := candidates[i], candidates[j]
		if ci.Distance != cj.Distance {
			return ci.Distance < cj.Distance
		}
		iLo, iHi := minMax(ci.A, ci.B)
		jLo, jHi := minMax(cj.A, cj.B)
		if iLo != jLo {
			return iLo < jLo
		}
		if iHi != jHi {
			return iHi < jHi
		}
		return ci.A < cj.A
	})

	usedA := make(map[int]bool, len(eventsA))
	usedB := make(map[int]bool, len(eventsB))
	var matches []Match
	for _, c := range candidates {
		if usedA[c.A] || usedB[c.B] {
			continue
		}
		usedA[c.A] = true
		usedB[c.B] = true
		matches = append(matches, c)
	}
	return matches
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func minMax(a, b int) (int, int) {
	if a < b {
		return a, b
	}
	return b, a
}
