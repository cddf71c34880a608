package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"google.golang.org/api/option"

	"github.com/domdx/glossary-transfer/internal/auth"
	"github.com/domdx/glossary-transfer/internal/config"
	"github.com/domdx/glossary-transfer/internal/glossary"
	"github.com/domdx/glossary-transfer/internal/transfer"
)

// InitConfig initializes viper configuration for both binaries.
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".glossary-transfer")
	}

	// GLOSSARY_PROJECT_ID overrides project_id, GLOSSARY_CSV_DELIMITER
	// overrides csv.delimiter, and so on.
	viper.SetEnvPrefix("GLOSSARY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// resolveEnvironment loads the named environment and applies flag
// overrides, the last layer of the resolution order.
func resolveEnvironment(flags *Flags) (*config.Environment, error) {
	env, err := config.Load(flags.Env)
	if err != nil {
		return nil, err
	}
	if flags.Project != "" {
		env.ProjectID = flags.Project
	}
	if flags.Location != "" {
		env.Location = flags.Location
	}
	if flags.Bucket != "" {
		env.BucketName = flags.Bucket
	}
	if flags.Credentials != "" {
		env.CredentialsPath = flags.Credentials
	}
	return env, nil
}

// newGlossaryClient builds the authenticated Translation client.
func newGlossaryClient(ctx context.Context, env *config.Environment) (*glossary.Client, error) {
	creds, err := auth.Load(env.CredentialsPath)
	if err != nil {
		return nil, err
	}
	hc, err := creds.HTTPClient(ctx)
	if err != nil {
		return nil, err
	}
	return glossary.NewClient(hc, env.ProjectID, env.Location), nil
}

// newTransferClient builds the transfer client over Cloud Storage,
// with the Translation client attached for the api-side operations.
// The returned func releases the storage connection.
func newTransferClient(ctx context.Context, env *config.Environment) (*transfer.Client, func() error, error) {
	creds, err := auth.Load(env.CredentialsPath)
	if err != nil {
		return nil, nil, err
	}
	ts, err := creds.TokenSource(ctx)
	if err != nil {
		return nil, nil, err
	}
	sc, err := storage.NewClient(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, nil, fmt.Errorf("creating storage client: %w", err)
	}
	hc, err := creds.HTTPClient(ctx)
	if err != nil {
		sc.Close()
		return nil, nil, err
	}
	gc := glossary.NewClient(hc, env.ProjectID, env.Location)
	store := transfer.NewGCSStore(sc, env.BucketName)
	return transfer.NewClient(store, env.BucketName, env.CSV, gc, gc), sc.Close, nil
}

// addGlobalFlags registers the persistent flags both binaries share.
func addGlobalFlags(cmd *cobra.Command, flags *Flags) {
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.glossary-transfer.yaml)")
	cmd.PersistentFlags().StringVar(&flags.Env, "env", flags.Env, "Named environment (dev or prod)")
	cmd.PersistentFlags().StringVarP(&flags.OutputFormat, "output-format", "F", flags.OutputFormat, "Output format (table or json)")
	cmd.PersistentFlags().StringVar(&flags.Project, "project", "", "Override the environment's project id")
	cmd.PersistentFlags().StringVar(&flags.Location, "location", "", "Override the environment's location")
	cmd.PersistentFlags().StringVar(&flags.Credentials, "credentials", "", "Override the environment's credentials file path")
}
