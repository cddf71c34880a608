// Package csvcodec parses and serializes two-column glossary CSV
// files: first column source-language term, second column target-
// language term, no enforced header row.
package csvcodec

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInvalidFormat reports a CSV stream that does not satisfy the
// glossary contract (empty file, or a row with fewer than 2 columns).
var ErrInvalidFormat = errors.New("invalid glossary CSV format")

// TermPair is one row of a glossary file.
type TermPair struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Dialect configures the delimiter and quote character. The zero
// value is not usable; start from DefaultDialect.
type Dialect struct {
	Delimiter rune
	Quote     rune
}

// DefaultDialect matches the files the Translation service expects.
func DefaultDialect() Dialect {
	return Dialect{Delimiter: ',', Quote: '"'}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse reads term pairs from r. Columns beyond the second are
// ignored; a row with fewer than two, or an entirely empty file,
// fails with ErrInvalidFormat.
func (d Dialect) Parse(r io.Reader) ([]TermPair, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	var records [][]string
	if d.Quote == '"' {
		records, err = d.parseStandard(data)
	} else {
		records, err = d.parseCustomQuote(data)
	}
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrInvalidFormat)
	}
	pairs := make([]TermPair, 0, len(records))
	for i, rec := range records {
		if len(rec) < 2 {
			return nil, fmt.Errorf("%w: row %d has %d column(s), need at least 2", ErrInvalidFormat, i+1, len(rec))
		}
		pairs = append(pairs, TermPair{Source: rec[0], Target: rec[1]})
	}
	return pairs, nil
}

func (d Dialect) parseStandard(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = d.Delimiter
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return records, nil
}

// parseCustomQuote handles quote runes encoding/csv cannot. Doubled
// quote characters inside a quoted field escape the quote; a newline
// inside a quoted field belongs to the field.
func (d Dialect) parseCustomQuote(data []byte) ([][]string, error) {
	var (
		records  [][]string
		fields   []string
		field    strings.Builder
		inQuotes bool
	)
	row := 1
	endField := func() {
		fields = append(fields, field.String())
		field.Reset()
	}
	endRecord := func() {
		// A bare newline is not a record.
		if len(fields) == 0 && field.Len() == 0 {
			return
		}
		endField()
		records = append(records, fields)
		fields = nil
	}

	runes := []rune(strings.ReplaceAll(string(data), "\r\n", "\n"))
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == d.Quote:
			if inQuotes && i+1 < len(runes) && runes[i+1] == d.Quote {
				field.WriteRune(d.Quote)
				i++
			} else {
				inQuotes = !inQuotes
			}
		case r == d.Delimiter && !inQuotes:
			endField()
		case r == '\n' && !inQuotes:
			endRecord()
			row++
		default:
			field.WriteRune(r)
		}
	}
	if inQuotes {
		return nil, fmt.Errorf("%w: row %d: unterminated quoted field", ErrInvalidFormat, row)
	}
	endRecord()
	return records, nil
}

// Write serializes pairs in row order, terminating every row with a
// newline. Fields are quoted only when they contain the delimiter,
// the quote rune, or a line break, so Write inverts Parse exactly,
// modulo the trailing newline.
func (d Dialect) Write(w io.Writer, pairs []TermPair) error {
	for _, p := range pairs {
		row := d.quoteField(p.Source) + string(d.Delimiter) + d.quoteField(p.Target) + "\n"
		if _, err := io.WriteString(w, row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	return nil
}

func (d Dialect) quoteField(s string) string {
	if !strings.ContainsAny(s, string([]rune{d.Delimiter, d.Quote, '\n', '\r'})) {
		return s
	}
	escaped := strings.ReplaceAll(s, string(d.Quote), string([]rune{d.Quote, d.Quote}))
	return string(d.Quote) + escaped + string(d.Quote)
}
