package cmd

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/rafflehouse/artcli/internal/nft"
	"github.com/rafflehouse/artcli/internal/ui"
	"github.com/rafflehouse/artcli/internal/variant"
)

var (
	variantsStandard  string
	variantsRootPrio  bool
	variantsExpandGws bool
)

var variantsCmd = &cobra.Command{
	Use:   "variants <baseURI> <tokenId>",
	Short: "Show the metadata-URI candidates for a base URI",
	Long: `Show the ordered candidate URIs the resolver would try for a base URI.

Useful for debugging a collection whose artwork does not resolve: the list
shows exactly which locations get attempted, in priority order.

Examples:
  artcli variants ipfs://QmHash/ 42 --standard 1155
  artcli variants https://meta.example/9.json 9 --standard 721 --expand`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		baseURI := args[0]

		id, ok := new(big.Int).SetString(args[1], 10)
		if !ok || id.Sign() < 0 {
			return fmt.Errorf("invalid token id %q", args[1])
		}
		std, err := nft.ParseStandard(variantsStandard)
		if err != nil {
			return err
		}

		vs := variant.Build(baseURI, id, std, variantsRootPrio)
		if len(vs) == 0 {
			fmt.Println(ui.Meta("no variants (empty base URI)"))
			return nil
		}

		gws := cfg.GatewaySet()
		n := 0
		for _, v := range vs {
			if !variantsExpandGws {
				n++
				fmt.Printf("  %s %s\n", ui.Meta(fmt.Sprintf("%2d.", n)), v)
				continue
			}
			for _, u := range gws.Expand(v) {
				n++
				fmt.Printf("  %s %s\n", ui.Meta(fmt.Sprintf("%2d.", n)), u)
			}
		}
		fmt.Println(ui.Meta(fmt.Sprintf("\n%d candidates", n)))
		return nil
	},
}

func init() {
	variantsCmd.Flags().StringVar(&variantsStandard, "standard", "721", "token standard: 721 or 1155")
	variantsCmd.Flags().BoolVar(&variantsRootPrio, "root-first", false, "try directory-level metadata before the literal URI")
	variantsCmd.Flags().BoolVar(&variantsExpandGws, "expand", false, "expand each variant across configured gateways")
}
