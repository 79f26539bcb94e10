package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Load / Save
// ---------------------------------------------------------------------------

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://eth.llamarpc.com", cfg.RPCURL)
	assert.Equal(t, 5*time.Second, cfg.FastTimeout())
	assert.Equal(t, 10*time.Second, cfg.SlowTimeout())
	assert.GreaterOrEqual(t, len(cfg.IPFSGateways), 3)
	assert.GreaterOrEqual(t, len(cfg.ArweaveGateways), 1)
	assert.Empty(t, cfg.CacheURL, "backend cache is opt-in")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	cfg.RPCURL = "https://rpc.example/v1"
	cfg.CacheURL = "https://cache.example"
	cfg.FastTimeoutSecs = 3
	require.NoError(t, cfg.Save())

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://rpc.example/v1", got.RPCURL)
	assert.Equal(t, "https://cache.example", got.CacheURL)
	assert.Equal(t, 3*time.Second, got.FastTimeout())
	assert.Equal(t, dir, got.Dir())
}

func TestLoadBackfillsEmptyGateways(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"rpc_url":"https://rpc.example","ipfs_gateways":[]}`), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.IPFSGateways, "an empty gateway list would make every prize unresolvable")
	assert.NotEmpty(t, cfg.ArweaveGateways)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{nope"), 0o600))

	_, err := Load(dir)
	require.Error(t, err)
}

func TestSaveFileMode(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NoError(t, cfg.Save())

	info, err := os.Stat(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

// ---------------------------------------------------------------------------
// Gateway list edits
// ---------------------------------------------------------------------------

func TestAddIPFSGateway(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	before := len(cfg.IPFSGateways)
	require.NoError(t, cfg.AddIPFSGateway("https://mygw.test/ipfs/"))
	assert.Len(t, cfg.IPFSGateways, before+1)
	assert.Equal(t, "https://mygw.test/ipfs/", cfg.IPFSGateways[before], "new gateways go last (lowest priority)")

	err = cfg.AddIPFSGateway("https://mygw.test/ipfs/")
	require.Error(t, err, "duplicate gateways rejected")
}

func TestRemoveIPFSGateway(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, cfg.AddIPFSGateway("https://mygw.test/ipfs/"))
	require.NoError(t, cfg.RemoveIPFSGateway("https://mygw.test/ipfs/"))
	assert.NotContains(t, cfg.IPFSGateways, "https://mygw.test/ipfs/")

	require.Error(t, cfg.RemoveIPFSGateway("https://absent.test/ipfs/"))
}

func TestGatewaySet(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	s := cfg.GatewaySet()
	assert.Equal(t, cfg.IPFSGateways, s.IPFS)
	assert.Equal(t, cfg.ArweaveGateways, s.Arweave)
}
