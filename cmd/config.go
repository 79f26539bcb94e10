package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rafflehouse/artcli/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and change artcli settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(ui.StyleHeader.Render("artcli configuration"))
		fmt.Printf("  %s %s\n", ui.Meta("rpc-url:      "), cfg.RPCURL)
		fmt.Printf("  %s %s\n", ui.Meta("cache-url:    "), orUnset(cfg.CacheURL))
		fmt.Printf("  %s %s\n", ui.Meta("registry-url: "), orUnset(cfg.RegistryURL))
		fmt.Printf("  %s %ds\n", ui.Meta("fast-timeout: "), cfg.FastTimeoutSecs)
		fmt.Printf("  %s %ds\n", ui.Meta("slow-timeout: "), cfg.SlowTimeoutSecs)
		fmt.Printf("  %s %s\n", ui.Meta("config dir:   "), cfg.Dir())
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and persist it.

Keys: rpc-url, cache-url, registry-url, fast-timeout, slow-timeout.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		switch key {
		case "rpc-url":
			cfg.RPCURL = value
		case "cache-url":
			cfg.CacheURL = value
		case "registry-url":
			cfg.RegistryURL = value
		case "fast-timeout", "slow-timeout":
			secs, err := strconv.Atoi(value)
			if err != nil || secs <= 0 {
				return fmt.Errorf("invalid timeout %q (want seconds > 0)", value)
			}
			if key == "fast-timeout" {
				cfg.FastTimeoutSecs = secs
			} else {
				cfg.SlowTimeoutSecs = secs
			}
		default:
			return fmt.Errorf("unknown config key %q", key)
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Set %s = %s", key, value)))
		return nil
	},
}

func orUnset(s string) string {
	if s == "" {
		return ui.Meta("(unset)")
	}
	return s
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd)
}
