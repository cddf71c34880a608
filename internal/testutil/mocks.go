package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/domdx/glossary-transfer/internal/glossary"
)

// FakeBucket is an in-memory transfer.BucketStore.
type FakeBucket struct {
	mu      sync.Mutex
	Objects map[string][]byte

	// FailWith, when set, is returned by every operation.
	FailWith error
}

// NewFakeBucket returns an empty fake bucket.
func NewFakeBucket() *FakeBucket {
	return &FakeBucket{Objects: map[string][]byte{}}
}

func (b *FakeBucket) Exists(ctx context.Context, name string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailWith != nil {
		return false, b.FailWith
	}
	_, ok := b.Objects[name]
	return ok, nil
}

func (b *FakeBucket) Read(ctx context.Context, name string) (io.ReadCloser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailWith != nil {
		return nil, b.FailWith
	}
	data, ok := b.Objects[name]
	if !ok {
		return nil, fmt.Errorf("%w: object %s", glossary.ErrNotFound, name)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (b *FakeBucket) Write(ctx context.Context, name string, r io.Reader) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailWith != nil {
		return b.FailWith
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	b.Objects[name] = data
	return nil
}

func (b *FakeBucket) List(ctx context.Context) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailWith != nil {
		return nil, b.FailWith
	}
	names := make([]string, 0, len(b.Objects))
	for name := range b.Objects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// FakeGlossaryService implements transfer.GlossaryLister and
// transfer.GlossaryCreator for tests.
type FakeGlossaryService struct {
	Glossaries []glossary.Glossary

	// CreatedURIs records the input URIs passed to CreateGlossary.
	CreatedURIs []string

	// FailWith, when set, is returned by every operation.
	FailWith error
}

func (s *FakeGlossaryService) ListGlossaries(ctx context.Context) ([]glossary.Glossary, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	return s.Glossaries, nil
}

func (s *FakeGlossaryService) CreateGlossary(ctx context.Context, glossaryID, sourceLang, targetLang, inputURI string) error {
	if s.FailWith != nil {
		return s.FailWith
	}
	s.CreatedURIs = append(s.CreatedURIs, inputURI)
	s.Glossaries = append(s.Glossaries, glossary.Glossary{
		Name:           "projects/test-project/locations/us-central1/glossaries/" + glossaryID,
		SourceLanguage: sourceLang,
		TargetLanguage: targetLang,
	})
	return nil
}
