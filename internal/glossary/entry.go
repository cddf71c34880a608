package glossary

import (
	"fmt"
	"strings"
)

// Term is one language's rendering of a glossary entry.
type Term struct {
	LanguageCode string `json:"languageCode"`
	Text         string `json:"text"`
}

// Entry is a single glossary entry: a set of equivalent terms across
// two or more languages, with an optional description. Name is the
// full resource name assigned by the service on create.
type Entry struct {
	Name        string `json:"name,omitempty"`
	Terms       []Term `json:"terms"`
	Description string `json:"description,omitempty"`
}

// ID returns the trailing path segment of the entry's resource name,
// which is the identifier the service assigned on create.
func (e *Entry) ID() string {
	if e.Name == "" {
		return ""
	}
	parts := strings.Split(e.Name, "/")
	return parts[len(parts)-1]
}

// ValidateTerms enforces the create/update contract: at least two
// terms, each with a non-empty language code and text.
func ValidateTerms(terms []Term) error {
	if len(terms) < 2 {
		return fmt.Errorf("%w: an entry needs at least 2 terms, got %d", ErrInvalidArgument, len(terms))
	}
	for i, t := range terms {
		if strings.TrimSpace(t.LanguageCode) == "" {
			return fmt.Errorf("%w: term %d has an empty language code", ErrInvalidArgument, i)
		}
		if strings.TrimSpace(t.Text) == "" {
			return fmt.Errorf("%w: term %d has empty text", ErrInvalidArgument, i)
		}
	}
	return nil
}

// The service nests terms under termsSet on the wire.
type termsSet struct {
	Terms []Term `json:"terms"`
}

type entryBody struct {
	Name        string    `json:"name,omitempty"`
	TermsSet    *termsSet `json:"termsSet,omitempty"`
	Description string    `json:"description,omitempty"`
}

func (b *entryBody) toEntry() Entry {
	e := Entry{Name: b.Name, Description: b.Description}
	if b.TermsSet != nil {
		e.Terms = b.TermsSet.Terms
	}
	return e
}

func entryToBody(terms []Term, description string) *entryBody {
	return &entryBody{
		TermsSet:    &termsSet{Terms: terms},
		Description: description,
	}
}
