package transfer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/domdx/glossary-transfer/internal/csvcodec"
)

// sampleTerms seed a new glossary file with a handful of common terms.
// The first row doubles as a header naming the language codes, which
// the Translation service tolerates.
var sampleTerms = []csvcodec.TermPair{
	{Source: "hello", Target: "hola"},
	{Source: "world", Target: "mundo"},
	{Source: "computer", Target: "computadora"},
	{Source: "software", Target: "software"},
	{Source: "database", Target: "base de datos"},
}

// WriteSample writes a starter CSV for the pair to outputPath,
// creating parent directories as needed.
func (c *Client) WriteSample(pairKey, outputPath string) error {
	pair, err := ParsePair(pairKey)
	if err != nil {
		return err
	}

	rows := make([]csvcodec.TermPair, 0, len(sampleTerms)+1)
	rows = append(rows, csvcodec.TermPair{Source: pair.Source, Target: pair.Target})
	rows = append(rows, sampleTerms...)

	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outputPath, err)
	}
	defer f.Close()

	if err := c.dialect.Write(f, rows); err != nil {
		return fmt.Errorf("writing sample glossary: %w", err)
	}
	return nil
}
