// Package glossary is a typed REST client for the Google Cloud
// Translation v3 glossary and glossaryEntries resources. It covers
// entry CRUD with paginated listing, plus glossary-level creation and
// listing used by the transfer tool.
package glossary
