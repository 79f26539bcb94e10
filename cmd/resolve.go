package cmd

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/rafflehouse/artcli/internal/artcache"
	"github.com/rafflehouse/artcli/internal/chain"
	"github.com/rafflehouse/artcli/internal/hashreg"
	"github.com/rafflehouse/artcli/internal/metadata"
	"github.com/rafflehouse/artcli/internal/nft"
	"github.com/rafflehouse/artcli/internal/resolver"
	"github.com/rafflehouse/artcli/internal/ui"
)

var (
	resolveStandard string
	resolveEscrowed bool
	resolveRPC      string
	resolveNoCache  bool
	resolvePreview  bool
	resolveRootPrio bool
	resolveTimeout  int
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <collection> <tokenId>",
	Short: "Resolve the displayable artwork for a prize token",
	Long: `Resolve the displayable artwork for a prize token.

Walks the full pipeline: base-URI decision (backend cache, then on-chain
reads), metadata-URI variant construction, gateway expansion, and the
fetch cascade. Prints the resolved source URI and the ordered image
candidate URLs.

Examples:
  artcli resolve 0xABC... 42 --standard 721
  artcli resolve 0xABC... 7 --standard 1155 --escrowed --preview
  artcli resolve 0xABC... 42 --standard 721 --no-cache --timeout 3`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := parsePrizeRef(args[0], args[1], resolveStandard, resolveEscrowed)
		if err != nil {
			return err
		}

		rpcURL := cfg.RPCURL
		if resolveRPC != "" {
			rpcURL = resolveRPC
		}
		client := chain.NewEVMClient(rpcURL)

		r := &resolver.Resolver{
			Readers: func(addr common.Address) resolver.CollectionReader {
				return nft.NewReader(client, addr)
			},
			Registry:       hashreg.NewClient(cfg.RegistryURL),
			Gateways:       cfg.GatewaySet(),
			FastTimeout:    cfg.FastTimeout(),
			SlowTimeout:    cfg.SlowTimeout(),
			PrioritizeRoot: resolveRootPrio,
		}
		if !resolveNoCache && cfg.CacheURL != "" {
			token := artcache.DefaultKeystore().Token()
			r.Cache = artcache.NewClient(cfg.CacheURL, token)
		}
		if resolveTimeout > 0 {
			r.FastTimeout = time.Duration(resolveTimeout) * time.Second
			r.SlowTimeout = r.FastTimeout
		}

		spin := ui.NewSpinner(fmt.Sprintf("resolving %s #%s", ui.Addr(args[0]), ref.TokenID))
		spin.Start()
		result, err := r.Resolve(context.Background(), ref)
		spin.Stop()

		switch {
		case errors.Is(err, resolver.ErrNotAvailable):
			// Not revealed or not eligible — suppress, not an error.
			fmt.Println(ui.Meta("artwork not available yet"))
			return nil
		case errors.Is(err, metadata.ErrNoMetadata):
			printWarnings(result)
			fmt.Println(ui.Err("artwork unavailable — every candidate URI failed"))
			return nil
		case err != nil:
			return err
		}

		printWarnings(result)
		printResolved(result.Meta)

		if resolvePreview {
			title := fmt.Sprintf("%s #%s", ui.TruncateURI(args[0], 16), ref.TokenID)
			loaded, err := ui.RunPreview(title, result.Meta.ImageCandidates)
			if err != nil {
				return err
			}
			if loaded == "" {
				fmt.Println(ui.Err("artwork unavailable"))
			}
		}
		return nil
	},
}

func printResolved(meta *metadata.Resolved) {
	fmt.Println(ui.Success("artwork resolved"))
	fmt.Printf("  %s %s\n", ui.Meta("source:"), meta.SourceURI)
	fmt.Printf("  %s %s\n", ui.Meta("image: "), meta.RawImage)
	fmt.Printf("  %s\n", ui.Meta("candidates:"))
	for i, c := range meta.ImageCandidates {
		fmt.Printf("    %s %s\n", ui.Meta(fmt.Sprintf("%d.", i+1)), ui.Val(c))
	}
}

func printWarnings(result *metadata.Result) {
	if !verbose || result == nil {
		return
	}
	for _, w := range result.Warnings {
		fmt.Println(ui.Warn(w))
	}
}

// parsePrizeRef validates and assembles the prize reference from CLI input.
func parsePrizeRef(collection, tokenID, standard string, escrowed bool) (nft.PrizeReference, error) {
	var ref nft.PrizeReference

	if !common.IsHexAddress(collection) {
		return ref, fmt.Errorf("invalid collection address %q", collection)
	}

	id, ok := new(big.Int).SetString(tokenID, 10)
	if !ok || id.Sign() < 0 {
		return ref, fmt.Errorf("invalid token id %q (want a non-negative integer)", tokenID)
	}

	std, err := nft.ParseStandard(standard)
	if err != nil {
		return ref, err
	}

	return nft.PrizeReference{
		Collection: common.HexToAddress(collection),
		TokenID:    id,
		Standard:   std,
		Escrowed:   escrowed,
	}, nil
}

func init() {
	resolveCmd.Flags().StringVar(&resolveStandard, "standard", "721", "token standard: 721 or 1155")
	resolveCmd.Flags().BoolVar(&resolveEscrowed, "escrowed", false, "prize is a pre-existing token held by the pool")
	resolveCmd.Flags().StringVar(&resolveRPC, "rpc", "", "override the configured RPC endpoint")
	resolveCmd.Flags().BoolVar(&resolveNoCache, "no-cache", false, "skip the backend artwork cache")
	resolveCmd.Flags().BoolVar(&resolvePreview, "preview", false, "interactively probe image candidates")
	resolveCmd.Flags().BoolVar(&resolveRootPrio, "root-first", false, "try directory-level metadata before the literal URI")
	resolveCmd.Flags().IntVar(&resolveTimeout, "timeout", 0, "per-attempt timeout in seconds (overrides config)")
}
