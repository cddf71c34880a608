package csvcodec

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TermPair
	}{
		{
			name:  "simple rows",
			input: "hello,hola\nworld,mundo\n",
			expected: []TermPair{
				{Source: "hello", Target: "hola"},
				{Source: "world", Target: "mundo"},
			},
		},
		{
			name:  "no trailing newline",
			input: "hello,hola",
			expected: []TermPair{
				{Source: "hello", Target: "hola"},
			},
		},
		{
			name:  "quoted field with delimiter",
			input: "database,\"base de datos, la\"\n",
			expected: []TermPair{
				{Source: "database", Target: "base de datos, la"},
			},
		},
		{
			name:  "extra columns ignored",
			input: "hello,hola,bonjour\n",
			expected: []TermPair{
				{Source: "hello", Target: "hola"},
			},
		},
		{
			name:  "UTF-8 BOM stripped",
			input: "\xEF\xBB\xBFhello,hola\n",
			expected: []TermPair{
				{Source: "hello", Target: "hola"},
			},
		},
		{
			name:  "leading space preserved",
			input: "hello, hola\n",
			expected: []TermPair{
				{Source: "hello", Target: " hola"},
			},
		},
	}

	d := DefaultDialect()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pairs, err := d.Parse(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if !reflect.DeepEqual(pairs, tt.expected) {
				t.Errorf("Parse = %v, want %v", pairs, tt.expected)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty file", ""},
		{"only newlines", "\n\n"},
		{"single column row", "hello\n"},
	}

	d := DefaultDialect()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Parse(strings.NewReader(tt.input))
			if !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("Parse error = %v, want ErrInvalidFormat", err)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"hello,hola\nworld,mundo\n",
		"computer,computadora\n",
		"a,b\nc,d\ne,f\n",
		"hello, hola\nworld,  mundo\n",
		"database,\"base de datos, la\"\n",
	}

	d := DefaultDialect()
	for _, input := range inputs {
		pairs, err := d.Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		var buf bytes.Buffer
		if err := d.Write(&buf, pairs); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		if got := buf.String(); strings.TrimRight(got, "\n") != strings.TrimRight(input, "\n") {
			t.Errorf("round trip = %q, want %q", got, input)
		}
	}
}

func TestSemicolonDelimiter(t *testing.T) {
	d := Dialect{Delimiter: ';', Quote: '"'}

	pairs, err := d.Parse(strings.NewReader("hello;hola\nworld;mundo\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(pairs) != 2 || pairs[0].Target != "hola" {
		t.Errorf("unexpected pairs: %v", pairs)
	}

	var buf bytes.Buffer
	if err := d.Write(&buf, pairs); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if buf.String() != "hello;hola\nworld;mundo\n" {
		t.Errorf("Write = %q", buf.String())
	}
}

func TestCustomQuote(t *testing.T) {
	d := Dialect{Delimiter: ',', Quote: '\''}

	input := "hello,'hola, amigo'\n'it''s',es\n"
	pairs, err := d.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	expected := []TermPair{
		{Source: "hello", Target: "hola, amigo"},
		{Source: "it's", Target: "es"},
	}
	if !reflect.DeepEqual(pairs, expected) {
		t.Errorf("Parse = %v, want %v", pairs, expected)
	}

	var buf bytes.Buffer
	if err := d.Write(&buf, pairs); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	reparsed, err := d.Parse(&buf)
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	if !reflect.DeepEqual(reparsed, pairs) {
		t.Errorf("round trip = %v, want %v", reparsed, pairs)
	}
}

func TestCustomQuoteEmbeddedNewline(t *testing.T) {
	d := Dialect{Delimiter: ',', Quote: '\''}

	pairs, err := d.Parse(strings.NewReader("greeting,'hola\namigo'\nworld,mundo\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	expected := []TermPair{
		{Source: "greeting", Target: "hola\namigo"},
		{Source: "world", Target: "mundo"},
	}
	if !reflect.DeepEqual(pairs, expected) {
		t.Errorf("Parse = %v, want %v", pairs, expected)
	}
}

func TestCustomQuoteUnterminated(t *testing.T) {
	d := Dialect{Delimiter: ',', Quote: '\''}

	if _, err := d.Parse(strings.NewReader("'open,field\n")); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Parse error = %v, want ErrInvalidFormat", err)
	}
}
