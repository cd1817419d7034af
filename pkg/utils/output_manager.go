package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// OutputManager organizes per-run output files under a base directory.
type OutputManager struct {
	BaseOutputDir string
}

// NewOutputManager creates an output manager rooted at baseOutputDir.
func NewOutputManager(baseOutputDir string) *OutputManager {
	return &OutputManager{BaseOutputDir: baseOutputDir}
}

// CreateRunOutputDir creates (if needed) the output directory for a run.
func (om *OutputManager) CreateRunOutputDir(runID string) (string, error) {
	runDir := filepath.Join(om.BaseOutputDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create run output directory: %w", err)
	}
	return runDir, nil
}

// OutputFilePath returns the full path for a run's output file. The filename
// is cleaned so it cannot escape the run directory.
func (om *OutputManager) OutputFilePath(runID, fileName string) string {
	return filepath.Join(om.BaseOutputDir, runID, filepath.Base(fileName))
}

// DownloadURL returns the API download URL for a run's output file.
func (om *OutputManager) DownloadURL(runID string) string {
	return fmt.Sprintf("/api/v1/runs/%s/download", runID)
}

// FileSize returns the size of a file in bytes.
func (om *OutputManager) FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
