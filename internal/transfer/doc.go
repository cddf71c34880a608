// Package transfer moves glossary CSV files between local disk and
// the Cloud Storage bucket the Translation service reads glossaries
// from, following the {src}_{tgt}_glossary.csv naming convention and
// its iwd_-prefixed variant.
package transfer
