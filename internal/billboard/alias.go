package billboard

import (
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"
)

//go:embed nickname_components.csv
var nicknameCSV string

// AliasParts is one row of the nickname table.
type AliasParts struct {
	Adjective string
	Noun      string
	Number    string
}

// String joins the parts, zero-padding the number to two digits.
func (a AliasParts) String() string {
	number := a.Number
	if n, err := strconv.Atoi(number); err == nil && n >= 0 && n < 10 {
		number = fmt.Sprintf("%02d", n)
	}
	return a.Adjective + a.Noun + number
}

// AliasGenerator produces anonymous nicknames such as "GreenKoala07".
type AliasGenerator struct {
	rows []AliasParts
	pick func(n int) int
}

// NewAliasGenerator loads the built-in nickname table.
func NewAliasGenerator() (*AliasGenerator, error) {
	return LoadAliasGenerator(strings.NewReader(nicknameCSV))
}

// LoadAliasGenerator reads a CSV with adjective, noun and number columns.
// Rows missing any of them are skipped.
func LoadAliasGenerator(r io.Reader) (*AliasGenerator, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read alias header: %w", err)
	}
	idx := map[string]int{"adjective": -1, "noun": -1, "number": -1}
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, ok := idx[key]; ok {
			idx[key] = i
		}
	}
	for key, i := range idx {
		if i < 0 {
			return nil, fmt.Errorf("alias csv missing %q column", key)
		}
	}

	var rows []AliasParts
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read alias row: %w", err)
		}
		field := func(key string) string {
			if idx[key] >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx[key]])
		}
		row := AliasParts{Adjective: field("adjective"), Noun: field("noun"), Number: field("number")}
		if row.Adjective == "" || row.Noun == "" || row.Number == "" {
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, errors.New("alias csv has no usable rows")
	}
	return &AliasGenerator{rows: rows, pick: rand.IntN}, nil
}

// Generate returns a random nickname.
func (g *AliasGenerator) Generate() string {
	return g.rows[g.pick(len(g.rows))].String()
}

// Len reports how many rows the generator draws from.
func (g *AliasGenerator) Len() int { return len(g.rows) }
