package config

// Config holds all artcli configuration.
type Config struct {
	RPCURL          string   `json:"rpc_url"`
	CacheURL        string   `json:"cache_url"`        // backend artwork cache, optional
	RegistryURL     string   `json:"registry_url"`     // hash-registry resolver, optional
	IPFSGateways    []string `json:"ipfs_gateways"`    // ordered, first = most preferred
	ArweaveGateways []string `json:"arweave_gateways"` // ordered
	FastTimeoutSecs int      `json:"fast_timeout_secs"` // mintable ERC-721 metadata attempts
	SlowTimeoutSecs int      `json:"slow_timeout_secs"` // escrowed / ERC-1155 attempts

	// internal: config dir path used for Save()
	configDir string
}
