/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: report_writer.go
Description: Utility for writing evaluation reports to the reports directory.
Handles timestamped, type-specific subdirectory naming, ensures directories
exist, and writes JSON files for easy analysis.
*/

package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// WriteReport writes an evaluation report to the reports directory with a
// timestamped, kind-specific file name and returns the written path.
func WriteReport(dir string, kind string, report interface{}) (string, error) {
	reportDir := filepath.Join(dir, kind)
	if err := os.MkdirAll(reportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	// Filename like: 2024-06-11_01-30-00_evaluation.json
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s.json", timestamp, kind)
	filePath := filepath.Join(reportDir, filename)

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	return filePath, nil
}
