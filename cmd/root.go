package cmd

import (
	"fmt"
	"os"

	"github.com/rafflehouse/artcli/internal/config"
	"github.com/spf13/cobra"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/rafflehouse/artcli/cmd.Version=1.2.3" .
var Version = "1.0.0"

var (
	cfgDir  string
	cfg     *config.Config
	verbose bool
)

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "artcli",
	Short: "Prize artwork resolver for NFT raffle pools",
	Long: `artcli — resolve the displayable artwork for an NFT raffle-pool prize.

  Finds the actual image or video behind a prize token when the metadata
  may live on IPFS, IPNS, Arweave, or plain HTTP, keyed by decimal or
  zero-padded hex token ids, with or without .json suffixes, and possibly
  behind a hash registry or a backend cache.

Run ` + "`artcli resolve <collection> <tokenId>`" + ` to resolve a prize, or
` + "`artcli variants`" + ` to inspect the candidate URIs it would try.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// ARTCLI_CONFIG_DIR env var overrides --config flag.
	if envDir := os.Getenv("ARTCLI_CONFIG_DIR"); envDir != "" {
		cfgDir = envDir
	}

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", cfgDir, "config directory (default: ~/.artcli)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		resolveCmd,
		variantsCmd,
		inspectCmd,
		gatewaysCmd,
		configCmd,
		cacheCmd,
	)
}
