package cmd

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/rafflehouse/artcli/internal/chain"
	"github.com/rafflehouse/artcli/internal/nft"
	"github.com/rafflehouse/artcli/internal/ui"
)

var inspectRPC string

var inspectCmd = &cobra.Command{
	Use:   "inspect <collection>",
	Short: "Inspect a prize collection contract",
	Long: `Inspect a prize collection contract: name, symbol, owner, and the
detected token standard (ERC-165 probe).

Useful before resolving: confirms the address is a contract on the
configured chain and tells you which --standard to pass.

Example:
  artcli inspect 0xBC4CA0EdA7647A8aB7C2061c2E118A18a936f13D`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !common.IsHexAddress(args[0]) {
			return fmt.Errorf("invalid collection address %q", args[0])
		}
		collection := common.HexToAddress(args[0])

		rpcURL := cfg.RPCURL
		if inspectRPC != "" {
			rpcURL = inspectRPC
		}
		client := chain.NewEVMClient(rpcURL)
		ctx := context.Background()

		spin := ui.NewSpinner("inspecting " + ui.Addr(collection.Hex()))
		spin.Start()

		latency, block, pingErr := client.Ping(ctx)
		code, codeErr := client.GetCode(ctx, collection.Hex())

		reader := nft.NewReader(client, collection)
		name, _ := reader.Name(ctx)
		symbol, _ := reader.Symbol(ctx)
		owner, _ := reader.Owner(ctx)
		is721, _ := reader.SupportsInterface(ctx, nft.InterfaceERC721)
		is1155, _ := reader.SupportsInterface(ctx, nft.InterfaceERC1155)

		spin.Stop()

		if pingErr != nil {
			return fmt.Errorf("RPC endpoint unreachable: %w", pingErr)
		}
		fmt.Printf("%s %s\n", ui.Meta("endpoint:"),
			ui.Meta(fmt.Sprintf("block %d, %dms", block, latency.Milliseconds())))

		if codeErr == nil && (code == "" || code == "0x") {
			fmt.Println(ui.Warn("no contract code at this address"))
			return nil
		}

		fmt.Printf("%s %s\n", ui.Meta("name:    "), orUnset(name))
		fmt.Printf("%s %s\n", ui.Meta("symbol:  "), orUnset(symbol))
		fmt.Printf("%s %s\n", ui.Meta("owner:   "), orUnset(owner))

		switch {
		case is721:
			fmt.Println(ui.Success("standard: erc721"))
		case is1155:
			fmt.Println(ui.Success("standard: erc1155"))
		default:
			fmt.Println(ui.Warn("standard: not detected (ERC-165 probe failed) — pass --standard explicitly"))
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().StringVar(&inspectRPC, "rpc", "", "override the configured RPC endpoint")
}
