package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/domdx/glossary-transfer/internal/glossary"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"table", Table, false},
		{"json", JSON, false},
		{"yaml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseFormat(%q) should fail", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q) failed: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func testEntries() []glossary.Entry {
	return []glossary.Entry{
		{
			Name: "projects/p/locations/l/glossaries/g/glossaryEntries/entry-1",
			Terms: []glossary.Term{
				{LanguageCode: "en", Text: "hello"},
				{LanguageCode: "es", Text: "hola"},
			},
			Description: "greeting",
		},
		{
			Name: "projects/p/locations/l/glossaries/g/glossaryEntries/entry-2",
			Terms: []glossary.Term{
				{LanguageCode: "en", Text: "world"},
				{LanguageCode: "es", Text: "mundo"},
			},
		},
	}
}

func TestEntriesTable(t *testing.T) {
	var buf bytes.Buffer
	if err := Entries(&buf, Table, testEntries()); err != nil {
		t.Fatalf("Entries failed: %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 rows:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[0], "TERMS") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "entry-1") || !strings.Contains(lines[1], "en:hello, es:hola") {
		t.Errorf("row = %q", lines[1])
	}
	if !strings.Contains(lines[1], "greeting") {
		t.Errorf("row should carry the description: %q", lines[1])
	}
}

func TestEntriesJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Entries(&buf, JSON, testEntries()); err != nil {
		t.Fatalf("Entries failed: %v", err)
	}

	var decoded []glossary.Entry
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[0].ID() != "entry-1" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestJSONEmptyLists(t *testing.T) {
	renderers := map[string]func(w *bytes.Buffer) error{
		"entries":    func(w *bytes.Buffer) error { return Entries(w, JSON, nil) },
		"glossaries": func(w *bytes.Buffer) error { return Glossaries(w, JSON, nil) },
		"strings":    func(w *bytes.Buffer) error { return Strings(w, JSON, "", nil) },
	}

	for name, render := range renderers {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := render(&buf); err != nil {
				t.Fatalf("render failed: %v", err)
			}
			if got := strings.TrimSpace(buf.String()); got != "[]" {
				t.Errorf("empty list renders as %q, want []", got)
			}
		})
	}
}

func TestEntryTable(t *testing.T) {
	entries := testEntries()
	var buf bytes.Buffer
	if err := Entry(&buf, Table, &entries[0]); err != nil {
		t.Fatalf("Entry failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"entry-1", "en", "hello", "es", "hola", "greeting"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestEntryTableNoDescription(t *testing.T) {
	entries := testEntries()
	var buf bytes.Buffer
	if err := Entry(&buf, Table, &entries[1]); err != nil {
		t.Fatalf("Entry failed: %v", err)
	}
	if strings.Contains(buf.String(), "Description") {
		t.Errorf("empty description should be omitted:\n%s", buf.String())
	}
}

func TestGlossariesTable(t *testing.T) {
	glossaries := []glossary.Glossary{
		{
			Name:           "projects/p/locations/l/glossaries/main",
			SourceLanguage: "en",
			TargetLanguage: "es",
			EntryCount:     42,
			SubmitTime:     "2024-01-15T10:00:00Z",
		},
	}

	var buf bytes.Buffer
	if err := Glossaries(&buf, Table, glossaries); err != nil {
		t.Fatalf("Glossaries failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"main", "en-es", "42", "2024-01-15"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStrings(t *testing.T) {
	var buf bytes.Buffer
	if err := Strings(&buf, Table, "Pairs:", []string{"en-es", "en-fr"}); err != nil {
		t.Fatalf("Strings failed: %v", err)
	}
	if buf.String() != "Pairs:\n  en-es\n  en-fr\n" {
		t.Errorf("output = %q", buf.String())
	}

	buf.Reset()
	if err := Strings(&buf, JSON, "Pairs:", []string{"en-es"}); err != nil {
		t.Fatalf("Strings failed: %v", err)
	}
	var decoded []string
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0] != "en-es" {
		t.Errorf("decoded = %v", decoded)
	}
}
