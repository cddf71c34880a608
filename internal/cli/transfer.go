package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/domdx/glossary-transfer/internal"
	"github.com/domdx/glossary-transfer/internal/output"
	"github.com/domdx/glossary-transfer/internal/transfer"
)

// CreateTransferCommand creates and configures the glosstransfer root
// command with its sub-commands.
func CreateTransferCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "glosstransfer",
		Short: "Move glossary CSV files between local disk and Cloud Storage",
		Long: `glosstransfer manages the CSV glossary files the Translation service
reads from a Cloud Storage bucket. Object names follow the
{src}_{tgt}_glossary.csv convention; the iwd- key prefix selects the
IWD variant (iwd_{src}_{tgt}_glossary.csv).

Examples:
  glosstransfer upload glossaries/en_es.csv en-es --overwrite
  glosstransfer download iwd-en-bs
  glosstransfer list --source api
  glosstransfer create-api en-es my-glossary`,
		Version:       internal.Version,
		SilenceErrors: true,
	}

	addGlobalFlags(rootCmd, flags)
	rootCmd.PersistentFlags().StringVar(&flags.Bucket, "bucket", "", "Override the environment's bucket name")

	rootCmd.AddCommand(
		newUploadCommand(flags),
		newDownloadCommand(flags),
		newListGlossariesCommand(flags),
		newSampleCommand(flags),
		newCreateAPICommand(flags),
		newValidateCommand(flags),
	)
	return rootCmd
}

func newUploadCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload FILE LANGUAGE_PAIR",
		Short: "Upload a local CSV glossary to the bucket",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(flags)
			if err != nil {
				return err
			}
			client, closeFn, err := newTransferClient(cmd.Context(), env)
			if err != nil {
				return err
			}
			defer closeFn()
			name, err := client.Upload(cmd.Context(), args[0], args[1], flags.Overwrite)
			if err != nil {
				return err
			}
			fmt.Printf("Uploaded %s to gs://%s/%s\n", args[0], env.BucketName, name)
			return nil
		},
	}
	cmd.Flags().BoolVar(&flags.Overwrite, "overwrite", false, "Replace the remote object if it already exists")
	return cmd
}

func newDownloadCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download LANGUAGE_PAIR",
		Short: "Download a glossary CSV from the bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(flags)
			if err != nil {
				return err
			}
			client, closeFn, err := newTransferClient(cmd.Context(), env)
			if err != nil {
				return err
			}
			defer closeFn()
			path, err := client.Download(cmd.Context(), args[0], flags.Output)
			if err != nil {
				return err
			}
			fmt.Printf("Downloaded %s to %s\n", args[0], path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Local path to write (default: derived from the pair)")
	return cmd
}

func newListGlossariesCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available glossaries by language pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ParseFormat(flags.OutputFormat)
			if err != nil {
				return err
			}
			env, err := resolveEnvironment(flags)
			if err != nil {
				return err
			}
			client, closeFn, err := newTransferClient(cmd.Context(), env)
			if err != nil {
				return err
			}
			defer closeFn()
			if flags.Detail {
				if flags.Source != transfer.SourceAPI {
					return fmt.Errorf("--detail requires --source %s", transfer.SourceAPI)
				}
				glossaries, err := client.Glossaries(cmd.Context())
				if err != nil {
					return err
				}
				return output.Glossaries(os.Stdout, format, glossaries)
			}
			keys, err := client.ListAvailable(cmd.Context(), flags.Source)
			if err != nil {
				return err
			}
			header := fmt.Sprintf("Available glossaries (%s):", flags.Source)
			return output.Strings(os.Stdout, format, header, keys)
		},
	}
	cmd.Flags().StringVar(&flags.Source, "source", flags.Source,
		fmt.Sprintf("Where to list from: %q (bucket objects) or %q (Translation service)", transfer.SourceStorage, transfer.SourceAPI))
	cmd.Flags().BoolVar(&flags.Detail, "detail", false,
		"Show full glossary summaries instead of pair keys (requires --source api)")
	return cmd
}

func newSampleCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "sample LANGUAGE_PAIR OUTPUT_FILE",
		Short: "Write a starter CSV glossary for a language pair",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(flags)
			if err != nil {
				return err
			}
			// Samples are written locally; no remote clients needed.
			client := transfer.NewClient(nil, env.BucketName, env.CSV, nil, nil)
			if err := client.WriteSample(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Created sample glossary: %s\n", args[1])
			return nil
		},
	}
}

func newCreateAPICommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "create-api LANGUAGE_PAIR GLOSSARY_ID",
		Short: "Create a Translation-service glossary from the pair's uploaded CSV",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(flags)
			if err != nil {
				return err
			}
			client, closeFn, err := newTransferClient(cmd.Context(), env)
			if err != nil {
				return err
			}
			defer closeFn()
			if err := client.CreateAPIGlossary(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Created glossary %q for %s in the Translation service\n", args[1], args[0])
			return nil
		},
	}
}

func newValidateCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the selected environment's configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(flags)
			if err != nil {
				return err
			}
			fmt.Printf("Environment:  %s\n", env.Name)
			fmt.Printf("Project ID:   %s\n", env.ProjectID)
			fmt.Printf("Location:     %s\n", env.Location)
			fmt.Printf("Bucket:       %s\n", env.BucketName)
			fmt.Printf("Credentials:  %s\n", env.CredentialsPath)
			fmt.Printf("Pairs:        %d supported\n", len(env.SupportedPairs))
			if err := env.Validate(); err != nil {
				return fmt.Errorf("environment %s is not usable: %w", env.Name, err)
			}
			fmt.Println("Environment OK")
			return nil
		},
	}
}
