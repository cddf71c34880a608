package glossary

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Glossary is the summary of a glossary resource as the service
// reports it.
type Glossary struct {
	Name           string `json:"name"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
	EntryCount     int    `json:"entryCount"`
	SubmitTime     string `json:"submitTime,omitempty"`
}

// ID returns the trailing path segment of the glossary resource name.
func (g *Glossary) ID() string {
	return (&Entry{Name: g.Name}).ID()
}

// PairKey returns the language pair in "src-tgt" form.
func (g *Glossary) PairKey() string {
	return g.SourceLanguage + "-" + g.TargetLanguage
}

type languagePair struct {
	SourceLanguageCode string `json:"sourceLanguageCode"`
	TargetLanguageCode string `json:"targetLanguageCode"`
}

type glossaryBody struct {
	Name         string        `json:"name,omitempty"`
	LanguagePair *languagePair `json:"languagePair,omitempty"`
	InputConfig  *inputConfig  `json:"inputConfig,omitempty"`
	EntryCount   int           `json:"entryCount,omitempty"`
	SubmitTime   string        `json:"submitTime,omitempty"`
}

type inputConfig struct {
	GCSSource gcsSource `json:"gcsSource"`
}

type gcsSource struct {
	InputURI string `json:"inputUri"`
}

func (b *glossaryBody) toGlossary() Glossary {
	g := Glossary{Name: b.Name, EntryCount: b.EntryCount, SubmitTime: b.SubmitTime}
	if b.LanguagePair != nil {
		g.SourceLanguage = b.LanguagePair.SourceLanguageCode
		g.TargetLanguage = b.LanguagePair.TargetLanguageCode
	}
	return g
}

func (c *Client) glossariesURL() string {
	return fmt.Sprintf("%s/%s/glossaries", c.BaseURL, c.parent())
}

// ListGlossaries returns every glossary of the project/location.
func (c *Client) ListGlossaries(ctx context.Context) ([]Glossary, error) {
	var glossaries []Glossary
	pageToken := ""
	for {
		u, err := url.Parse(c.glossariesURL())
		if err != nil {
			return nil, fmt.Errorf("building list URL: %w", err)
		}
		if pageToken != "" {
			q := u.Query()
			q.Set("pageToken", pageToken)
			u.RawQuery = q.Encode()
		}
		var resp struct {
			Glossaries    []glossaryBody `json:"glossaries"`
			NextPageToken string         `json:"nextPageToken"`
		}
		if err := c.do(ctx, http.MethodGet, u.String(), nil, &resp); err != nil {
			return nil, fmt.Errorf("listing glossaries: %w", err)
		}
		for _, b := range resp.Glossaries {
			glossaries = append(glossaries, b.toGlossary())
		}
		pageToken = resp.NextPageToken
		if pageToken == "" {
			return glossaries, nil
		}
	}
}

// operation is the long-running operation envelope returned by
// glossary creation.
type operation struct {
	Name  string `json:"name"`
	Done  bool   `json:"done"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Shortened by tests.
var operationPollInterval = 2 * time.Second

// CreateGlossary creates a unidirectional glossary whose content is
// the CSV at inputURI (a gs:// object) and blocks until the operation
// finishes. The operation's error, if any, is surfaced verbatim.
func (c *Client) CreateGlossary(ctx context.Context, glossaryID, sourceLang, targetLang, inputURI string) error {
	body := glossaryBody{
		Name: fmt.Sprintf("%s/glossaries/%s", c.parent(), glossaryID),
		LanguagePair: &languagePair{
			SourceLanguageCode: sourceLang,
			TargetLanguageCode: targetLang,
		},
		InputConfig: &inputConfig{GCSSource: gcsSource{InputURI: inputURI}},
	}

	var op operation
	if err := c.do(ctx, http.MethodPost, c.glossariesURL(), &body, &op); err != nil {
		return fmt.Errorf("creating glossary %s: %w", glossaryID, err)
	}
	return c.waitOperation(ctx, op)
}

// waitOperation polls the operation until done. The operations API
// lives under the same /v3 base, keyed by the operation name.
func (c *Client) waitOperation(ctx context.Context, op operation) error {
	for !op.Done {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(operationPollInterval):
		}
		next := operation{}
		if err := c.do(ctx, http.MethodGet, c.BaseURL+"/"+op.Name, nil, &next); err != nil {
			return fmt.Errorf("polling operation %s: %w", op.Name, err)
		}
		op = next
	}
	if op.Error != nil {
		return fmt.Errorf("glossary operation failed: %s (code %d)", op.Error.Message, op.Error.Code)
	}
	return nil
}
