package cli

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/domdx/glossary-transfer/internal/glossary"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"Env", flags.Env, "dev"},
		{"OutputFormat", flags.OutputFormat, "table"},
		{"PageSize", flags.PageSize, 100},
		{"Source", flags.Source, "storage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func lookupFlag(cmd *cobra.Command, name string) *pflag.Flag {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f
	}
	return cmd.PersistentFlags().Lookup(name)
}

func TestCreateEntryCommand(t *testing.T) {
	flags := NewFlags()
	cmd := CreateEntryCommand(flags)

	if cmd.Use != "glossaryctl" {
		t.Errorf("Use = %q", cmd.Use)
	}

	for _, name := range []string{"config", "env", "output-format", "project", "location", "credentials", "glossary"} {
		t.Run("flag_"+name, func(t *testing.T) {
			if lookupFlag(cmd, name) == nil {
				t.Errorf("expected persistent flag %s", name)
			}
		})
	}

	subs := map[string]bool{}
	for _, sub := range cmd.Commands() {
		subs[strings.Fields(sub.Use)[0]] = true
	}
	for _, name := range []string{"list", "get", "create", "update", "delete"} {
		if !subs[name] {
			t.Errorf("missing sub-command %s", name)
		}
	}
}

func TestCreateTransferCommand(t *testing.T) {
	flags := NewFlags()
	cmd := CreateTransferCommand(flags)

	if cmd.Use != "glosstransfer" {
		t.Errorf("Use = %q", cmd.Use)
	}
	if lookupFlag(cmd, "bucket") == nil {
		t.Error("expected persistent flag bucket")
	}

	subs := map[string]*cobra.Command{}
	for _, sub := range cmd.Commands() {
		subs[strings.Fields(sub.Use)[0]] = sub
	}
	for _, name := range []string{"upload", "download", "list", "sample", "create-api", "validate"} {
		if subs[name] == nil {
			t.Errorf("missing sub-command %s", name)
		}
	}

	if list := subs["list"]; list != nil {
		for _, name := range []string{"source", "detail"} {
			if list.Flags().Lookup(name) == nil {
				t.Errorf("list is missing flag %s", name)
			}
		}
	}
}

func TestParseTerms(t *testing.T) {
	terms, err := ParseTerms([]string{"en=hello", "es=hola, amigo"})
	if err != nil {
		t.Fatalf("ParseTerms failed: %v", err)
	}
	expected := []glossary.Term{
		{LanguageCode: "en", Text: "hello"},
		{LanguageCode: "es", Text: "hola, amigo"},
	}
	if !reflect.DeepEqual(terms, expected) {
		t.Errorf("ParseTerms = %v, want %v", terms, expected)
	}
}

func TestParseTermsInvalid(t *testing.T) {
	if _, err := ParseTerms([]string{"no-separator"}); !errors.Is(err, glossary.ErrInvalidArgument) {
		t.Errorf("ParseTerms error = %v, want ErrInvalidArgument", err)
	}
}

func TestResolveEnvironmentFlagOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	flags := NewFlags()
	flags.Env = "dev"
	flags.Project = "flag-project"
	flags.Bucket = "flag-bucket"

	env, err := resolveEnvironment(flags)
	if err != nil {
		t.Fatalf("resolveEnvironment failed: %v", err)
	}
	if env.ProjectID != "flag-project" {
		t.Errorf("ProjectID = %q, want flag override", env.ProjectID)
	}
	if env.BucketName != "flag-bucket" {
		t.Errorf("BucketName = %q, want flag override", env.BucketName)
	}
	// Untouched fields keep the environment defaults.
	if env.Location != "us-central1" {
		t.Errorf("Location = %q", env.Location)
	}
}

func TestResolveEnvironmentUnknown(t *testing.T) {
	flags := NewFlags()
	flags.Env = "qa"

	if _, err := resolveEnvironment(flags); err == nil {
		t.Error("expected error for unknown environment")
	}
}
