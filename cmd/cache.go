package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rafflehouse/artcli/internal/artcache"
	"github.com/rafflehouse/artcli/internal/ui"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the backend artwork-cache credential",
}

var cacheTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the cache API token",
}

var cacheTokenSetCmd = &cobra.Command{
	Use:   "set <token>",
	Short: "Store the cache API token in the OS keychain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ks := artcache.DefaultKeystore()
		if err := ks.StoreToken(args[0]); err != nil {
			return err
		}
		fmt.Println(ui.Success("Cache token stored"))
		return nil
	},
}

var cacheTokenClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored cache API token",
	RunE: func(cmd *cobra.Command, args []string) error {
		ks := artcache.DefaultKeystore()
		if err := ks.ClearToken(); err != nil {
			return err
		}
		fmt.Println(ui.Success("Cache token cleared"))
		return nil
	},
}

func init() {
	cacheTokenCmd.AddCommand(cacheTokenSetCmd, cacheTokenClearCmd)
	cacheCmd.AddCommand(cacheTokenCmd)
}
