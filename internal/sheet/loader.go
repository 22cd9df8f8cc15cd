package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX.
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
	// ErrNoHeader is returned when the first sheet has no header row.
	ErrNoHeader = errors.New("spreadsheet has no header row")
)

// Loader reads spreadsheets from a filesystem.
type Loader struct {
	Fs afero.Fs
}

// NewLoader returns a Loader backed by the OS filesystem.
func NewLoader() *Loader {
	return &Loader{Fs: afero.NewOsFs()}
}

// Supported reports whether path has an extension Load understands.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".xlsx", ".xlsm":
		return true
	}
	return false
}

// Load decodes the first sheet of path and returns its valid rows.
func (l *Loader) Load(path string) ([]Record, error) {
	if !Supported(path) {
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}

	f, err := l.Fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	var rows [][]string
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		rows, err = readCSV(f)
	} else {
		rows, err = readXLSX(f)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	return toRecords(rows)
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr.ReadAll()
}

func readXLSX(r io.Reader) ([][]string, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoHeader
	}
	// Raw values keep date cells as serial numbers; analytics converts them.
	return wb.GetRows(sheets[0], excelize.Options{RawCellValue: true})
}

func toRecords(rows [][]string) ([]Record, error) {
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}

	header := make([]string, len(rows[0]))
	empty := true
	for i, h := range rows[0] {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		header[i] = h
		empty = empty && h == ""
	}
	if empty {
		return nil, ErrNoHeader
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(header))
		for i, h := range header {
			if h == "" {
				continue
			}
			if i < len(row) {
				rec[h] = strings.TrimSpace(row[i])
			} else {
				rec[h] = ""
			}
		}
		if rec.Valid() {
			records = append(records, rec)
		}
	}
	return records, nil
}
