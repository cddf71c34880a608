package glossary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"
	"golang.org/x/oauth2"
)

const (
	defaultBaseURL  = "https://translation.googleapis.com/v3"
	defaultPageSize = 100
)

// Client talks to the Translation v3 REST API for one project/location.
// The HTTP client is expected to carry bearer authentication (see the
// auth package); tests inject a plain client and override BaseURL.
type Client struct {
	ProjectID string
	Location  string

	// BaseURL may be overridden before the first call, mainly by tests.
	BaseURL string

	hc      *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewClient creates a client for the given project and location.
func NewClient(hc *http.Client, projectID, location string) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		ProjectID: projectID,
		Location:  location,
		BaseURL:   defaultBaseURL,
		hc:        hc,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: "translation-v3",
		}),
	}
}

// parent returns projects/{p}/locations/{l}.
func (c *Client) parent() string {
	return fmt.Sprintf("projects/%s/locations/%s", c.ProjectID, c.Location)
}

func (c *Client) entriesURL(glossaryID string) string {
	return fmt.Sprintf("%s/%s/glossaries/%s/glossaryEntries", c.BaseURL, c.parent(), url.PathEscape(glossaryID))
}

func (c *Client) entryURL(glossaryID, entryID string) string {
	return c.entriesURL(glossaryID) + "/" + url.PathEscape(entryID)
}

// do issues one request and decodes the response into out (if non-nil).
// Transport failures map to ErrTransient, non-2xx statuses to APIError.
// The circuit breaker fails fast once the service is known bad; it
// never re-issues a request.
func (c *Client) do(ctx context.Context, method, rawURL string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, payload)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("x-goog-user-project", c.ProjectID)

	result, err := c.breaker.Execute(func() (any, error) {
		return c.hc.Do(req)
	})
	if err != nil {
		// oauth2 transports surface token fetch failures here.
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return fmt.Errorf("%w: %v", ErrAuthentication, err)
		}
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
	resp := result.(*http.Response)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrTransient, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: apiErrorMessage(data)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// apiErrorMessage digs the human-readable message out of a Google API
// error envelope, falling back to the raw body.
func apiErrorMessage(data []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return string(data)
}

// Get fetches a single entry. Fails with ErrNotFound if the glossary
// or entry does not exist.
func (c *Client) Get(ctx context.Context, glossaryID, entryID string) (*Entry, error) {
	var body entryBody
	if err := c.do(ctx, http.MethodGet, c.entryURL(glossaryID, entryID), nil, &body); err != nil {
		return nil, fmt.Errorf("getting entry %s: %w", entryID, err)
	}
	e := body.toEntry()
	return &e, nil
}

// Create adds a new entry to the glossary and returns it with its
// service-assigned name. Repeated calls with identical terms create
// duplicates; the service does not deduplicate and neither do we.
func (c *Client) Create(ctx context.Context, glossaryID string, terms []Term, description string) (*Entry, error) {
	if err := ValidateTerms(terms); err != nil {
		return nil, err
	}
	var body entryBody
	if err := c.do(ctx, http.MethodPost, c.entriesURL(glossaryID), entryToBody(terms, description), &body); err != nil {
		return nil, fmt.Errorf("creating entry: %w", err)
	}
	e := body.toEntry()
	return &e, nil
}

// Update replaces the entry's terms and description wholesale.
func (c *Client) Update(ctx context.Context, glossaryID, entryID string, terms []Term, description string) (*Entry, error) {
	if err := ValidateTerms(terms); err != nil {
		return nil, err
	}
	var body entryBody
	if err := c.do(ctx, http.MethodPatch, c.entryURL(glossaryID, entryID), entryToBody(terms, description), &body); err != nil {
		return nil, fmt.Errorf("updating entry %s: %w", entryID, err)
	}
	e := body.toEntry()
	return &e, nil
}

// Delete removes an entry. Fails with ErrNotFound if it is absent.
func (c *Client) Delete(ctx context.Context, glossaryID, entryID string) error {
	if err := c.do(ctx, http.MethodDelete, c.entryURL(glossaryID, entryID), nil, nil); err != nil {
		return fmt.Errorf("deleting entry %s: %w", entryID, err)
	}
	return nil
}

// Done is returned by EntryIterator.Next when the listing is exhausted.
var Done = errors.New("no more entries")

// EntryIterator pages through a glossary's entries lazily. It is not
// restartable: once Next returns Done or an error, the sequence ends.
type EntryIterator struct {
	client     *Client
	glossaryID string
	pageSize   int

	buf       []Entry
	pageToken string
	finished  bool
	err       error
}

// List returns an iterator over all entries of the glossary, in the
// order the service returns them. pageSize <= 0 uses the default.
func (c *Client) List(glossaryID string, pageSize int) *EntryIterator {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &EntryIterator{client: c, glossaryID: glossaryID, pageSize: pageSize}
}

type listResponse struct {
	GlossaryEntries []entryBody `json:"glossaryEntries"`
	NextPageToken   string      `json:"nextPageToken"`
}

// Next returns the next entry, Done at the end of the sequence, or the
// page error that aborted it. A page error is sticky.
func (it *EntryIterator) Next(ctx context.Context) (*Entry, error) {
	if it.err != nil {
		return nil, it.err
	}
	for len(it.buf) == 0 {
		if it.finished {
			return nil, Done
		}
		if err := it.fetchPage(ctx); err != nil {
			it.err = err
			return nil, err
		}
	}
	e := it.buf[0]
	it.buf = it.buf[1:]
	return &e, nil
}

func (it *EntryIterator) fetchPage(ctx context.Context) error {
	u, err := url.Parse(it.client.entriesURL(it.glossaryID))
	if err != nil {
		return fmt.Errorf("building list URL: %w", err)
	}
	q := u.Query()
	q.Set("pageSize", strconv.Itoa(it.pageSize))
	if it.pageToken != "" {
		q.Set("pageToken", it.pageToken)
	}
	u.RawQuery = q.Encode()

	var resp listResponse
	if err := it.client.do(ctx, http.MethodGet, u.String(), nil, &resp); err != nil {
		return fmt.Errorf("listing entries of %s: %w", it.glossaryID, err)
	}
	for _, b := range resp.GlossaryEntries {
		it.buf = append(it.buf, b.toEntry())
	}
	it.pageToken = resp.NextPageToken
	// The service only supplies a token when another page exists.
	if it.pageToken == "" {
		it.finished = true
	}
	return nil
}

// All drains the iterator into a slice.
func (it *EntryIterator) All(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	for {
		e, err := it.Next(ctx)
		if errors.Is(err, Done) {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
}
