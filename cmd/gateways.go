package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rafflehouse/artcli/internal/gateway"
	"github.com/rafflehouse/artcli/internal/ui"
)

var gatewaysCmd = &cobra.Command{
	Use:   "gateways",
	Short: "Manage and probe storage gateways",
}

var gatewaysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured gateways in priority order",
	RunE: func(cmd *cobra.Command, args []string) error {
		gws := cfg.GatewaySet()

		fmt.Println(ui.StyleHeader.Render("IPFS gateways:"))
		for i, g := range gws.IPFS {
			fmt.Printf("  %s %s\n", ui.Meta(fmt.Sprintf("%d.", i+1)), ui.Gateway(g))
		}
		fmt.Println(ui.StyleHeader.Render("IPNS gateways (derived):"))
		for i, g := range gws.IPNS() {
			fmt.Printf("  %s %s\n", ui.Meta(fmt.Sprintf("%d.", i+1)), ui.Gateway(g))
		}
		fmt.Println(ui.StyleHeader.Render("Arweave gateways:"))
		for i, g := range gws.Arweave {
			fmt.Printf("  %s %s\n", ui.Meta(fmt.Sprintf("%d.", i+1)), ui.Gateway(g))
		}
		return nil
	},
}

var gatewaysCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe every configured gateway for reachability",
	RunE: func(cmd *cobra.Command, args []string) error {
		spin := ui.NewSpinner("probing gateways")
		spin.Start()
		endpoints := gateway.ProbeAll(context.Background(), cfg.GatewaySet(), 0)
		spin.Stop()

		for _, ep := range endpoints {
			if ep.Healthy {
				fmt.Printf("  %s %s %s\n",
					ui.Success("up"), ui.Gateway(ep.URL),
					ui.Meta(fmt.Sprintf("%dms", ep.Latency.Milliseconds())))
			} else {
				fmt.Printf("  %s %s\n", ui.Err("down"), ui.Gateway(ep.URL))
			}
		}
		return nil
	},
}

var gatewaysAddCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Add an IPFS gateway endpoint (lowest priority)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.AddIPFSGateway(args[0]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success("Added gateway: " + args[0]))
		return nil
	},
}

var gatewaysRemoveCmd = &cobra.Command{
	Use:   "remove <url>",
	Short: "Remove an IPFS gateway endpoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RemoveIPFSGateway(args[0]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success("Removed gateway: " + args[0]))
		return nil
	},
}

func init() {
	gatewaysCmd.AddCommand(gatewaysListCmd, gatewaysCheckCmd, gatewaysAddCmd, gatewaysRemoveCmd)
}
