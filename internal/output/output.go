// Package output renders command results for humans (aligned tables)
// or machines (indented JSON). Both are pure display transforms.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/domdx/glossary-transfer/internal/glossary"
)

// Format selects the rendering style.
type Format string

const (
	Table Format = "table"
	JSON  Format = "json"
)

// ParseFormat validates a --output-format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case Table, JSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q (want %q or %q)", s, Table, JSON)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// terms renders an entry's terms as "en:hello, es:hola".
func terms(e *glossary.Entry) string {
	parts := make([]string, 0, len(e.Terms))
	for _, t := range e.Terms {
		parts = append(parts, t.LanguageCode+":"+t.Text)
	}
	return strings.Join(parts, ", ")
}

// Entries renders a list of glossary entries.
func Entries(w io.Writer, format Format, entries []glossary.Entry) error {
	if format == JSON {
		// An empty result is [], not null.
		if entries == nil {
			entries = []glossary.Entry{}
		}
		return writeJSON(w, entries)
	}
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "ID\tTERMS\tDESCRIPTION")
	for i := range entries {
		e := &entries[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.ID(), terms(e), e.Description)
	}
	return tw.Flush()
}

// Entry renders a single glossary entry.
func Entry(w io.Writer, format Format, e *glossary.Entry) error {
	if format == JSON {
		return writeJSON(w, e)
	}
	tw := newTabWriter(w)
	fmt.Fprintf(tw, "ID:\t%s\n", e.ID())
	fmt.Fprintf(tw, "Name:\t%s\n", e.Name)
	for _, t := range e.Terms {
		fmt.Fprintf(tw, "Term:\t%s\t%s\n", t.LanguageCode, t.Text)
	}
	if e.Description != "" {
		fmt.Fprintf(tw, "Description:\t%s\n", e.Description)
	}
	return tw.Flush()
}

// Glossaries renders Translation-service glossary summaries.
func Glossaries(w io.Writer, format Format, glossaries []glossary.Glossary) error {
	if format == JSON {
		if glossaries == nil {
			glossaries = []glossary.Glossary{}
		}
		return writeJSON(w, glossaries)
	}
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "ID\tPAIR\tENTRIES\tSUBMITTED")
	for i := range glossaries {
		g := &glossaries[i]
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", g.ID(), g.PairKey(), g.EntryCount, g.SubmitTime)
	}
	return tw.Flush()
}

// Strings renders a plain list of values, one per line in table mode.
func Strings(w io.Writer, format Format, header string, values []string) error {
	if format == JSON {
		if values == nil {
			values = []string{}
		}
		return writeJSON(w, values)
	}
	fmt.Fprintln(w, header)
	for _, v := range values {
		fmt.Fprintf(w, "  %s\n", v)
	}
	return nil
}
