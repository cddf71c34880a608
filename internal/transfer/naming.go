package transfer

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/domdx/glossary-transfer/internal/glossary"
)

const (
	// iwdKeyPrefix marks the specialized IWD glossary variant in pair
	// keys ("iwd-en-es") and, underscored, in object names.
	iwdKeyPrefix    = "iwd-"
	iwdObjectPrefix = "iwd_"
	objectSuffix    = "_glossary.csv"

	// nestedPrefix is the alternative bucket layout
	// glossaries/{pair}/glossary.csv some buckets use.
	nestedPrefix = "glossaries/"
	nestedSuffix = "/glossary.csv"
)

// Pair is a source/target language pair, optionally in the IWD
// category. Classification is purely the key prefix: "iwd-" present
// means IWD, absent means regular.
type Pair struct {
	Source string `json:"source"`
	Target string `json:"target"`
	IWD    bool   `json:"iwd,omitempty"`
}

// ParsePair parses a pair key such as "en-es" or "iwd-en-bs". Both
// language codes must be well-formed BCP 47 tags.
func ParsePair(key string) (Pair, error) {
	var p Pair
	rest := key
	if strings.HasPrefix(rest, iwdKeyPrefix) {
		p.IWD = true
		rest = strings.TrimPrefix(rest, iwdKeyPrefix)
	}
	src, tgt, ok := strings.Cut(rest, "-")
	if !ok || src == "" || tgt == "" {
		return Pair{}, fmt.Errorf("%w: language pair %q must look like \"en-es\"", glossary.ErrInvalidArgument, key)
	}
	for _, code := range []string{src, tgt} {
		if _, err := language.Parse(code); err != nil {
			return Pair{}, fmt.Errorf("%w: invalid language code %q in pair %q", glossary.ErrInvalidArgument, code, key)
		}
	}
	p.Source, p.Target = src, tgt
	return p, nil
}

// Key renders the pair back to its canonical key form.
func (p Pair) Key() string {
	key := p.Source + "-" + p.Target
	if p.IWD {
		return iwdKeyPrefix + key
	}
	return key
}

// ObjectName derives the bucket object name for the pair:
// en-es -> en_es_glossary.csv, iwd-en-bs -> iwd_en_bs_glossary.csv.
func (p Pair) ObjectName() string {
	name := strings.ReplaceAll(p.Source+"-"+p.Target, "-", "_") + objectSuffix
	if p.IWD {
		return iwdObjectPrefix + name
	}
	return name
}

// GCSURI returns the gs:// URI of the pair's object in bucket.
func (p Pair) GCSURI(bucket string) string {
	return fmt.Sprintf("gs://%s/%s", bucket, p.ObjectName())
}

// PairFromObjectName inverts ObjectName. It also recognizes the
// nested glossaries/{pair}/glossary.csv layout. Malformed names
// report ok = false and are skipped by listings, not treated as
// errors.
func PairFromObjectName(name string) (Pair, bool) {
	if strings.HasPrefix(name, nestedPrefix) && strings.HasSuffix(name, nestedSuffix) {
		key := strings.TrimSuffix(strings.TrimPrefix(name, nestedPrefix), nestedSuffix)
		if key == "" || strings.Contains(key, "/") {
			return Pair{}, false
		}
		p, err := ParsePair(key)
		if err != nil {
			return Pair{}, false
		}
		return p, true
	}

	if !strings.HasSuffix(name, objectSuffix) || strings.Contains(name, "/") {
		return Pair{}, false
	}
	key := strings.TrimSuffix(name, objectSuffix)
	iwd := false
	if strings.HasPrefix(key, iwdObjectPrefix) {
		iwd = true
		key = strings.TrimPrefix(key, iwdObjectPrefix)
	}
	key = strings.ReplaceAll(key, "_", "-")
	if iwd {
		key = iwdKeyPrefix + key
	}
	p, err := ParsePair(key)
	if err != nil {
		return Pair{}, false
	}
	return p, true
}
