package cli

// Flags holds all command-line flag values shared by both binaries.
type Flags struct {
	// Global flags
	CfgFile      string
	Env          string
	OutputFormat string

	// Environment overrides
	Project     string
	Location    string
	Bucket      string
	Credentials string

	// Entry manager flags
	Glossary    string
	PageSize    int
	Terms       []string
	Description string

	// Transfer tool flags
	Overwrite bool
	Source    string
	Output    string
	Detail    bool
}

// NewFlags creates a new Flags instance with default values.
func NewFlags() *Flags {
	return &Flags{
		Env:          "dev",
		OutputFormat: "table",
		PageSize:     100,
		Source:       "storage",
	}
}
