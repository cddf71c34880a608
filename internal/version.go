// Package internal holds values shared by both binaries.
package internal

// Version is the release version reported by --version.
var Version = "0.2.0"
