// Package tabular loads drug records from CSV and XLSX knowledge base files.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/kailas-cloud/vetdex/internal/domain/drug"
)

// Supported text encodings for CSV files.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1251 = "windows-1251"
)

var (
	// ErrUnsupportedFormat signals a file extension other than .csv or .xlsx.
	ErrUnsupportedFormat = errors.New("unsupported knowledge base format")
	// ErrUnsupportedEncoding signals an unknown CSV encoding.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
	// ErrNoNameColumn signals a header row without the drug name column.
	ErrNoNameColumn = errors.New("name column not found")
)

// Options controls parsing.
type Options struct {
	Separator rune   // CSV only, default ','
	Encoding  string // CSV only, utf-8 (default) or windows-1251
	Sheet     string // XLSX only, default first sheet
}

// Report summarizes a load.
type Report struct {
	Rows             int
	Loaded           int
	SkippedBlankName int
	IgnoredColumns   []string
}

// LoadFile reads records from a .csv or .xlsx file in row order.
func LoadFile(path string, opts Options) ([]drug.Record, Report, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, Report{}, fmt.Errorf("open knowledge base: %w", err)
	}
	defer func() { _ = f.Close() }()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".tsv", ".txt":
		return ReadCSV(f, opts)
	case ".xlsx", ".xlsm":
		return ReadXLSX(f, opts)
	default:
		return nil, Report{}, fmt.Errorf("%q: %w", ext, ErrUnsupportedFormat)
	}
}

// ReadCSV parses a delimited file whose first row is the header.
func ReadCSV(r io.Reader, opts Options) ([]drug.Record, Report, error) {
	decoded, err := decode(r, opts.Encoding)
	if err != nil {
		return nil, Report{}, err
	}

	cr := csv.NewReader(decoded)
	cr.Comma = ','
	if opts.Separator != 0 {
		cr.Comma = opts.Separator
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, Report{}, fmt.Errorf("parse csv: %w", err)
	}
	return fromRows(rows)
}

// ReadXLSX parses a workbook sheet whose first row is the header.
func ReadXLSX(r io.Reader, opts Options) ([]drug.Record, Report, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, Report{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = wb.Close() }()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := wb.GetSheetList()
		if len(sheets) == 0 {
			return nil, Report{}, fmt.Errorf("xlsx has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, Report{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return fromRows(rows)
}

func decode(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", EncodingUTF8, "utf8":
		return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())), nil
	case EncodingWindows1251, "cp1251":
		return charmap.Windows1251.NewDecoder().Reader(r), nil
	default:
		return nil, fmt.Errorf("%q: %w", encoding, ErrUnsupportedEncoding)
	}
}

// fromRows maps the header row to fields and converts the remaining rows.
func fromRows(rows [][]string) ([]drug.Record, Report, error) {
	var rep Report
	if len(rows) == 0 {
		return nil, rep, ErrNoNameColumn
	}

	columns := make([]drug.Field, len(rows[0]))
	hasName := false
	for i, h := range rows[0] {
		f, ok := resolveColumn(h)
		if !ok {
			rep.IgnoredColumns = append(rep.IgnoredColumns, strings.TrimSpace(h))
			continue
		}
		columns[i] = f
		if f == drug.FieldName {
			hasName = true
		}
	}
	if !hasName {
		return nil, rep, ErrNoNameColumn
	}

	records := make([]drug.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		rep.Rows++

		var rec drug.Record
		for i, cell := range row {
			if i >= len(columns) || columns[i] == "" {
				continue
			}
			// the first column mapped to a field wins
			if rec.Has(columns[i]) {
				continue
			}
			rec.Set(columns[i], strings.TrimSpace(cell))
		}
		if !rec.Has(drug.FieldName) {
			rep.SkippedBlankName++
			continue
		}
		records = append(records, rec)
	}
	rep.Loaded = len(records)
	return records, rep, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
