package artcache

import (
	"fmt"
	"runtime"

	"github.com/99designs/keyring"
)

const keychainService = "artcli"

const tokenKey = keychainService + ".cache-token"

// Keystore wraps OS keychain access for the backend-cache credential.
type Keystore struct {
	ring keyring.Keyring
}

// DefaultKeystore returns a keystore backed by the OS keychain.
func DefaultKeystore() *Keystore {
	cfg := keyring.Config{
		ServiceName:              keychainService,
		KeychainTrustApplication: true,
	}

	// On Linux without a GUI, fall back to file-based storage.
	if runtime.GOOS == "linux" {
		cfg.AllowedBackends = []keyring.BackendType{
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.FileBackend,
		}
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		ring, _ = keyring.Open(keyring.Config{
			ServiceName:     keychainService,
			AllowedBackends: []keyring.BackendType{keyring.FileBackend},
		})
	}

	return &Keystore{ring: ring}
}

// StoreToken saves the backend-cache API token.
func (k *Keystore) StoreToken(token string) error {
	if k.ring == nil {
		return fmt.Errorf("keystore not available")
	}
	err := k.ring.Set(keyring.Item{
		Key:  tokenKey,
		Data: []byte(token),
	})
	if err != nil {
		return fmt.Errorf("keychain store: %w", err)
	}
	return nil
}

// Token fetches the stored API token. Missing tokens return "" — the cache
// client works unauthenticated against open backends.
func (k *Keystore) Token() string {
	if k.ring == nil {
		return ""
	}
	item, err := k.ring.Get(tokenKey)
	if err != nil {
		return ""
	}
	return string(item.Data)
}

// ClearToken removes the stored API token.
func (k *Keystore) ClearToken() error {
	if k.ring == nil {
		return nil
	}
	return k.ring.Remove(tokenKey)
}
