package analytics

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Row is one CSV record keyed by header.
type Row map[string]string

// String returns the trimmed value for column.
func (r Row) String(column string) string {
	return r[column]
}

// Float returns the numeric value for column, or 0 when it is blank or not a number.
func (r Row) Float(column string) float64 {
	value := strings.ReplaceAll(r[column], ",", "")
	if value == "" {
		return 0
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}

// ReadCSV parses a header-first CSV. Quotes are stripped from headers and
// values, and rows with no non-empty value are dropped.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("csv is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i, h := range header {
		header[i] = clean(h)
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		row := make(Row, len(header))
		empty := true
		for i, name := range header {
			if i >= len(record) {
				break
			}
			value := clean(record[i])
			if value != "" {
				empty = false
			}
			row[name] = value
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// ReadCSVFile opens and parses path.
func ReadCSVFile(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	rows, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

func clean(value string) string {
	return strings.TrimSpace(strings.ReplaceAll(value, `"`, ""))
}
