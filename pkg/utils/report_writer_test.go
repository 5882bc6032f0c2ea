/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: report_writer_test.go
Description: Unit tests for the evaluation report writer.
*/

package utils_test

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/kleascm/akaylee-surrogate/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWriteReport checks that a report lands as parseable JSON in a
// kind-specific subdirectory.
func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	report := map[string]interface{}{
		"score":  0.25,
		"states": 6,
	}

	path, err := utils.WriteReport(dir, "evaluation", report)
	require.NoError(t, err)
	assert.Contains(t, path, "evaluation")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, 0.25, parsed["score"])
}
