// Package testutil provides spreadsheet fixtures for scrolldash tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/xuri/excelize/v2"
)

// XLSX builds a workbook whose first sheet holds rows starting at A1 and
// returns its encoded bytes.
func XLSX(t *testing.T, rows [][]any) []byte {
	t.Helper()

	wb := excelize.NewFile()
	defer wb.Close()

	sheet := wb.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("failed to name row %d: %v", i+1, err)
		}
		if err := wb.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("failed to write row %d: %v", i+1, err)
		}
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		t.Fatalf("failed to encode workbook: %v", err)
	}
	return buf.Bytes()
}

// WriteFile writes data to name inside a fresh temporary directory and
// returns the file's path. The directory is removed when the test completes.
func WriteFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// MemFs returns an in-memory filesystem holding files, keyed by path.
func MemFs(t *testing.T, files map[string][]byte) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for name, data := range files {
		if err := afero.WriteFile(fs, name, data, 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return fs
}
