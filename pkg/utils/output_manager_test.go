package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"etl-dashboard/pkg/utils"
)

func TestOutputManager_CreateRunOutputDir(t *testing.T) {
	om := utils.NewOutputManager(t.TempDir())

	dir, err := om.CreateRunOutputDir("run-1")
	require.NoError(t, err)
	require.DirExists(t, dir)

	// Creating the same directory again is not an error.
	_, err = om.CreateRunOutputDir("run-1")
	require.NoError(t, err)
}

func TestOutputManager_OutputFilePath(t *testing.T) {
	om := utils.NewOutputManager("/data/outputs")

	path := om.OutputFilePath("run-1", "etl_output.csv")
	require.Equal(t, filepath.Join("/data/outputs", "run-1", "etl_output.csv"), path)

	// Path traversal in the filename is stripped.
	path = om.OutputFilePath("run-1", "../../etc/passwd")
	require.Equal(t, filepath.Join("/data/outputs", "run-1", "passwd"), path)
}

func TestOutputManager_DownloadURL(t *testing.T) {
	om := utils.NewOutputManager("outputs")
	require.Equal(t, "/api/v1/runs/run-1/download", om.DownloadURL("run-1"))
}

func TestOutputManager_FileSize(t *testing.T) {
	om := utils.NewOutputManager(t.TempDir())
	dir, err := om.CreateRunOutputDir("run-1")
	require.NoError(t, err)

	path := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c\n"), 0644))

	size, err := om.FileSize(path)
	require.NoError(t, err)
	require.Equal(t, int64(6), size)

	_, err = om.FileSize(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
}
