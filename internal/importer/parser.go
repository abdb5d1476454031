package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"catalog-service/internal/models"
)

// ErrEmptyFile is returned when a file parses but carries no data rows
var ErrEmptyFile = errors.New("the file contains no data rows")

// RawRow is one data row keyed by lower-cased, trimmed header names.
// Line is the human-visible file line (header = 1, first data row = 2).
type RawRow struct {
	Line   int
	Fields map[string]string
}

// Get returns the trimmed value for a column, or "" if absent
func (r RawRow) Get(column string) string {
	return r.Fields[column]
}

// Parse turns raw file bytes into an ordered sequence of loosely typed rows.
// A structurally unreadable file is a hard failure; row-level gaps are not,
// they surface later as validation findings.
func Parse(data []byte, format models.ImportFormat) ([]RawRow, error) {
	switch format {
	case models.ImportFormatCSV:
		return parseCSV(bytes.NewReader(data))
	case models.ImportFormatXLSX:
		return parseXLSX(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported import format %q", format)
	}
}

// FormatFromFilename maps a file name onto an import format by extension
func FormatFromFilename(name string) (models.ImportFormat, error) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		return models.ImportFormatCSV, nil
	case strings.HasSuffix(lower, ".xlsx"):
		return models.ImportFormatXLSX, nil
	default:
		return "", fmt.Errorf("only CSV and XLSX files are supported")
	}
}

func normalizeHeader(header string) string {
	h := strings.TrimSpace(strings.ToLower(header))
	// Templates mark required columns with a trailing asterisk
	return strings.TrimSpace(strings.TrimSuffix(h, "*"))
}

func parseCSV(file io.Reader) ([]RawRow, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i := range headers {
		headers[i] = normalizeHeader(headers[i])
	}

	var rows []RawRow
	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading line %d: %w", line+1, err)
		}
		line++

		fields := make(map[string]string, len(headers))
		for i, value := range record {
			if i < len(headers) {
				fields[headers[i]] = strings.TrimSpace(value)
			}
		}
		rows = append(rows, RawRow{Line: line, Fields: fields})
	}

	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	return rows, nil
}

func parseXLSX(file io.Reader) ([]RawRow, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	sheetName := sheets[0]
	// Prefer the "Catalog" sheet if it exists (template layout)
	for _, name := range sheets {
		if strings.EqualFold(name, templateSheetName) {
			sheetName = name
			break
		}
	}

	excelRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(excelRows) < 2 {
		return nil, ErrEmptyFile
	}

	headers := excelRows[0]
	for i := range headers {
		headers[i] = normalizeHeader(headers[i])
	}

	var rows []RawRow
	for rowIdx, excelRow := range excelRows[1:] {
		fields := make(map[string]string, len(headers))
		for i, value := range excelRow {
			if i < len(headers) {
				fields[headers[i]] = strings.TrimSpace(value)
			}
		}
		rows = append(rows, RawRow{Line: rowIdx + 2, Fields: fields})
	}

	return rows, nil
}
