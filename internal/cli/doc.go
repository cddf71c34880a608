// Package cli builds the cobra command trees for the two binaries
// (glossaryctl and glosstransfer) and wires flag, config-file, .env
// and environment-variable resolution through viper.
package cli
