// Package table reads comparison tables from CSV and XLSX files. The first
// row is the header, the first column holds the reference texts and every
// further column holds candidate texts.
package table

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/baditaflorin/go_text_compare/internal/core/domain"
)

// Format identifies a supported table file format.
type Format int

const (
	CSV Format = iota
	XLSX
)

func (f Format) String() string {
	switch f {
	case CSV:
		return "csv"
	case XLSX:
		return "xlsx"
	default:
		return "unknown"
	}
}

// ErrUnsupportedFormat is returned for file extensions other than .csv and .xlsx.
var ErrUnsupportedFormat = fmt.Errorf("%w: unsupported table format", domain.ErrInvalidInputShape)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return CSV, nil
	case ".xlsx":
		return XLSX, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ReadFile opens path and reads it according to its extension.
func ReadFile(path string) (domain.Table, error) {
	format, err := FormatOf(path)
	if err != nil {
		return domain.Table{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return domain.Table{}, err
	}
	defer f.Close()
	return Read(f, format)
}

// Read reads a table in the given format.
func Read(r io.Reader, format Format) (domain.Table, error) {
	switch format {
	case CSV:
		return ReadCSV(r)
	case XLSX:
		return ReadXLSX(r)
	default:
		return domain.Table{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// ReadCSV reads UTF-8 CSV. A leading byte order mark is skipped and rows
// may have differing lengths.
func ReadCSV(r io.Reader) (domain.Table, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return domain.Table{}, err
		}
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return domain.Table{}, fmt.Errorf("read csv: %w", err)
	}
	return fromRecords(records)
}

// ReadXLSX reads the first worksheet of an XLSX workbook.
func ReadXLSX(r io.Reader) (domain.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return domain.Table{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return domain.Table{}, fmt.Errorf("%w: workbook has no sheets", domain.ErrInvalidInputShape)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return domain.Table{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	// Formatted but empty rows come back as empty slices.
	kept := rows[:0]
	for _, row := range rows {
		if !blank(row) {
			kept = append(kept, row)
		}
	}
	return fromRecords(kept)
}

func fromRecords(records [][]string) (domain.Table, error) {
	if len(records) == 0 {
		return domain.Table{}, fmt.Errorf("%w: table is empty", domain.ErrInvalidInputShape)
	}
	return domain.NewTable(records[0], records[1:])
}

func blank(rec []string) bool {
	for _, cell := range rec {
		if cell != "" {
			return false
		}
	}
	return true
}
