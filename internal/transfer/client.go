package transfer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/domdx/glossary-transfer/internal/csvcodec"
	"github.com/domdx/glossary-transfer/internal/glossary"
)

// GlossaryLister lists glossaries registered with the Translation
// service; satisfied by *glossary.Client.
type GlossaryLister interface {
	ListGlossaries(ctx context.Context) ([]glossary.Glossary, error)
}

// GlossaryCreator creates a glossary in the Translation service from
// a gs:// CSV; satisfied by *glossary.Client.
type GlossaryCreator interface {
	CreateGlossary(ctx context.Context, glossaryID, sourceLang, targetLang, inputURI string) error
}

// Listing sources for ListAvailable.
const (
	SourceStorage = "storage"
	SourceAPI     = "api"
)

// Client transfers glossary CSV files between local disk and the
// bucket, and bridges to the Translation service for glossary-level
// operations.
type Client struct {
	store   BucketStore
	lister  GlossaryLister
	creator GlossaryCreator
	bucket  string
	dialect csvcodec.Dialect
}

// NewClient builds a transfer client. lister and creator may be nil
// when only bucket operations are needed.
func NewClient(store BucketStore, bucket string, dialect csvcodec.Dialect, lister GlossaryLister, creator GlossaryCreator) *Client {
	return &Client{
		store:   store,
		lister:  lister,
		creator: creator,
		bucket:  bucket,
		dialect: dialect,
	}
}

// Upload validates the local CSV and writes it to the pair's derived
// object name. Without overwrite an existing object fails with
// ErrAlreadyExists.
func (c *Client) Upload(ctx context.Context, localPath, pairKey string, overwrite bool) (string, error) {
	pair, err := ParsePair(pairKey)
	if err != nil {
		return "", err
	}

	f, err := os.Open(localPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: local file %s", glossary.ErrNotFound, localPath)
		}
		return "", fmt.Errorf("opening %s: %w", localPath, err)
	}
	defer f.Close()

	if _, err := c.dialect.Parse(f); err != nil {
		return "", fmt.Errorf("validating %s: %w", localPath, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewinding %s: %w", localPath, err)
	}

	name := pair.ObjectName()
	exists, err := c.store.Exists(ctx, name)
	if err != nil {
		return "", fmt.Errorf("checking for %s: %w", name, err)
	}
	if exists && !overwrite {
		return "", fmt.Errorf("%w: object %s (pass overwrite to replace)", glossary.ErrAlreadyExists, name)
	}

	if err := c.store.Write(ctx, name, f); err != nil {
		return "", fmt.Errorf("uploading %s: %w", name, err)
	}
	return name, nil
}

// Download fetches the pair's object to localPath. An empty localPath
// derives the filename from the naming convention, in the current
// directory. Parent directories are created as needed; a partial file
// is removed on copy failure.
func (c *Client) Download(ctx context.Context, pairKey, localPath string) (string, error) {
	pair, err := ParsePair(pairKey)
	if err != nil {
		return "", err
	}
	name := pair.ObjectName()
	if localPath == "" {
		localPath = name
	}

	r, err := c.store.Read(ctx, name)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", name, err)
	}
	defer r.Close()

	if dir := filepath.Dir(localPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", localPath, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(localPath)
		return "", fmt.Errorf("writing %s: %w", localPath, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", localPath, err)
	}
	return localPath, nil
}

// ListAvailable enumerates the language-pair keys that have a
// glossary, from the bucket (SourceStorage) or the Translation
// service (SourceAPI). Object names that do not follow the naming
// convention are skipped. The result is de-duplicated and sorted.
func (c *Client) ListAvailable(ctx context.Context, source string) ([]string, error) {
	switch source {
	case SourceStorage:
		names, err := c.store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing bucket objects: %w", err)
		}
		seen := map[string]bool{}
		var keys []string
		for _, name := range names {
			pair, ok := PairFromObjectName(name)
			if !ok {
				continue
			}
			if key := pair.Key(); !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
		sort.Strings(keys)
		return keys, nil

	case SourceAPI:
		if c.lister == nil {
			return nil, fmt.Errorf("%w: no Translation service client configured", glossary.ErrInvalidArgument)
		}
		glossaries, err := c.lister.ListGlossaries(ctx)
		if err != nil {
			return nil, err
		}
		seen := map[string]bool{}
		var keys []string
		for _, g := range glossaries {
			if key := g.PairKey(); !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
		sort.Strings(keys)
		return keys, nil

	default:
		return nil, fmt.Errorf("%w: unknown listing source %q (want %q or %q)", glossary.ErrInvalidArgument, source, SourceStorage, SourceAPI)
	}
}

// Glossaries returns the full Translation-service glossary summaries,
// for detailed listings.
func (c *Client) Glossaries(ctx context.Context) ([]glossary.Glossary, error) {
	if c.lister == nil {
		return nil, fmt.Errorf("%w: no Translation service client configured", glossary.ErrInvalidArgument)
	}
	return c.lister.ListGlossaries(ctx)
}

// CreateAPIGlossary registers the pair's uploaded CSV as a glossary
// in the Translation service under glossaryID.
func (c *Client) CreateAPIGlossary(ctx context.Context, pairKey, glossaryID string) error {
	if c.creator == nil {
		return fmt.Errorf("%w: no Translation service client configured", glossary.ErrInvalidArgument)
	}
	pair, err := ParsePair(pairKey)
	if err != nil {
		return err
	}
	return c.creator.CreateGlossary(ctx, glossaryID, pair.Source, pair.Target, pair.GCSURI(c.bucket))
}
