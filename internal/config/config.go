// Package config resolves the effective configuration for one
// invocation: a named environment's built-in defaults, overridden by
// the viper config file, .env values, process environment, and
// finally CLI flags (applied by the cli package).
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/domdx/glossary-transfer/internal/csvcodec"
	"github.com/domdx/glossary-transfer/internal/transfer"
)

// Environment is the resolved configuration tuple. It is constructed
// once at process start and treated as immutable for the rest of the
// invocation.
type Environment struct {
	Name            string
	ProjectID       string
	Location        string
	BucketName      string
	CredentialsPath string
	SupportedPairs  []string
	CSV             csvcodec.Dialect
}

// Built-in defaults per named environment; every field can be
// overridden through config file, .env, environment, or flags.
var builtins = map[string]Environment{
	"dev": {
		Name:            "dev",
		ProjectID:       "translation-dev",
		Location:        "us-central1",
		BucketName:      "translation-dev-glossaries",
		CredentialsPath: "auth_files/dev-service-account.json",
	},
	"prod": {
		Name:            "prod",
		ProjectID:       "translation-prod",
		Location:        "us-central1",
		BucketName:      "translation-prod-glossaries",
		CredentialsPath: "auth_files/prod-service-account.json",
	},
}

var defaultPairs = []string{"en-es", "en-fr", "en-bs", "en-sw"}

// Environments lists the known environment names, sorted.
func Environments() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load resolves the named environment. dotenvFiles are optional .env
// paths; when none are given, ./.env is loaded if present. Values
// read via viper pick up the config file (read by cli.InitConfig) and
// GLOSSARY_-prefixed environment variables.
func Load(name string, dotenvFiles ...string) (*Environment, error) {
	base, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown environment %q (available: %s)", name, strings.Join(Environments(), ", "))
	}
	env := base
	env.SupportedPairs = append([]string(nil), defaultPairs...)
	env.CSV = csvcodec.DefaultDialect()

	// .env values become process environment, which viper's automatic
	// env lookup then sees.
	if len(dotenvFiles) == 0 {
		_ = godotenv.Load() // ./.env, absence is fine
	} else if err := godotenv.Load(dotenvFiles...); err != nil {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	if v := viper.GetString("project_id"); v != "" {
		env.ProjectID = v
	}
	if v := viper.GetString("location"); v != "" {
		env.Location = v
	}
	if v := viper.GetString("bucket"); v != "" {
		env.BucketName = v
	}
	if v := viper.GetString("credentials"); v != "" {
		env.CredentialsPath = v
	}
	if v := viper.GetString("supported_pairs"); v != "" {
		env.SupportedPairs = splitList(v)
	}
	if v := viper.GetString("csv.delimiter"); v != "" {
		env.CSV.Delimiter = []rune(v)[0]
	}
	if v := viper.GetString("csv.quote"); v != "" {
		env.CSV.Quote = []rune(v)[0]
	}
	return &env, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks that the environment is usable: the credentials
// file exists and every supported pair parses.
func (e *Environment) Validate() error {
	if _, err := os.Stat(e.CredentialsPath); err != nil {
		return fmt.Errorf("credentials file %s: %w", e.CredentialsPath, err)
	}
	if e.Location == "" {
		return fmt.Errorf("environment %s has no location", e.Name)
	}
	for _, key := range e.SupportedPairs {
		if _, err := transfer.ParsePair(key); err != nil {
			return fmt.Errorf("supported pair %q: %w", key, err)
		}
	}
	return nil
}
