package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/domdx/glossary-transfer/internal"
	"github.com/domdx/glossary-transfer/internal/glossary"
	"github.com/domdx/glossary-transfer/internal/output"
)

// CreateEntryCommand creates and configures the glossaryctl root
// command with its entry CRUD sub-commands.
func CreateEntryCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "glossaryctl",
		Short: "Manage Google Cloud Translation v3 glossary entries",
		Long: `glossaryctl manages the entries of a Translation v3 glossary.

Entries are term sets spanning two or more languages, stored remotely;
every command round-trips to the Translation service.

Examples:
  glossaryctl --glossary my-glossary list
  glossaryctl --glossary my-glossary create --term en=hello --term es=hola
  glossaryctl --glossary my-glossary delete entry-123`,
		Version:       internal.Version,
		SilenceErrors: true,
	}

	addGlobalFlags(rootCmd, flags)
	rootCmd.PersistentFlags().StringVarP(&flags.Glossary, "glossary", "g", "", "Glossary id (required)")

	rootCmd.AddCommand(
		newListEntriesCommand(flags),
		newGetEntryCommand(flags),
		newCreateEntryCommand(flags),
		newUpdateEntryCommand(flags),
		newDeleteEntryCommand(flags),
	)
	return rootCmd
}

// entrySetup resolves everything an entry sub-command needs.
func entrySetup(ctx context.Context, flags *Flags) (*glossary.Client, output.Format, error) {
	format, err := output.ParseFormat(flags.OutputFormat)
	if err != nil {
		return nil, "", err
	}
	if flags.Glossary == "" {
		return nil, "", fmt.Errorf("required flag --glossary not set")
	}
	env, err := resolveEnvironment(flags)
	if err != nil {
		return nil, "", err
	}
	client, err := newGlossaryClient(ctx, env)
	if err != nil {
		return nil, "", err
	}
	return client, format, nil
}

func newListEntriesCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all entries of the glossary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, format, err := entrySetup(cmd.Context(), flags)
			if err != nil {
				return err
			}
			entries, err := client.List(flags.Glossary, flags.PageSize).All(cmd.Context())
			if err != nil {
				return err
			}
			return output.Entries(os.Stdout, format, entries)
		},
	}
	cmd.Flags().IntVar(&flags.PageSize, "page-size", flags.PageSize, "Entries per page request")
	return cmd
}

func newGetEntryCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "get ENTRY_ID",
		Short: "Show one glossary entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, format, err := entrySetup(cmd.Context(), flags)
			if err != nil {
				return err
			}
			entry, err := client.Get(cmd.Context(), flags.Glossary, args[0])
			if err != nil {
				return err
			}
			return output.Entry(os.Stdout, format, entry)
		},
	}
}

func newCreateEntryCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a glossary entry from --term flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, format, err := entrySetup(cmd.Context(), flags)
			if err != nil {
				return err
			}
			terms, err := ParseTerms(flags.Terms)
			if err != nil {
				return err
			}
			entry, err := client.Create(cmd.Context(), flags.Glossary, terms, flags.Description)
			if err != nil {
				return err
			}
			return output.Entry(os.Stdout, format, entry)
		},
	}
	addTermFlags(cmd, flags)
	return cmd
}

func newUpdateEntryCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update ENTRY_ID",
		Short: "Replace an entry's terms and description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, format, err := entrySetup(cmd.Context(), flags)
			if err != nil {
				return err
			}
			terms, err := ParseTerms(flags.Terms)
			if err != nil {
				return err
			}
			entry, err := client.Update(cmd.Context(), flags.Glossary, args[0], terms, flags.Description)
			if err != nil {
				return err
			}
			return output.Entry(os.Stdout, format, entry)
		},
	}
	addTermFlags(cmd, flags)
	return cmd
}

func newDeleteEntryCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ENTRY_ID",
		Short: "Delete a glossary entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := entrySetup(cmd.Context(), flags)
			if err != nil {
				return err
			}
			if err := client.Delete(cmd.Context(), flags.Glossary, args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted entry %s\n", args[0])
			return nil
		},
	}
}

func addTermFlags(cmd *cobra.Command, flags *Flags) {
	cmd.Flags().StringArrayVar(&flags.Terms, "term", nil, "Term as code=text (repeat for each language, at least twice)")
	cmd.Flags().StringVar(&flags.Description, "description", "", "Free-text description for the entry")
}

// ParseTerms converts repeated --term code=text flags into terms.
func ParseTerms(raw []string) ([]glossary.Term, error) {
	terms := make([]glossary.Term, 0, len(raw))
	for _, s := range raw {
		code, text, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("%w: term %q must look like code=text", glossary.ErrInvalidArgument, s)
		}
		terms = append(terms, glossary.Term{LanguageCode: code, Text: text})
	}
	return terms, nil
}
