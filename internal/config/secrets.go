package config

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// VaultPrefix marks a config value that must be fetched from Vault.
const VaultPrefix = "vault:"

// SecretTTL is how long resolved secrets stay in the Vault client cache.
const SecretTTL = 10 * time.Minute

// SecretSource fetches one key from a KV secret.  *vault.Client satisfies
// it.
type SecretSource interface {
	GetKV(ctx context.Context, secretPath, key string, ttl time.Duration) (string, error)
}

// IsVaultRef reports whether s is a `vault:<path>#<key>` reference.
func IsVaultRef(s string) bool { return strings.HasPrefix(s, VaultPrefix) }

// ResolveSecrets returns a copy of cfg with Vault references replaced by
// their values.  cfg itself is never modified.  A nil source is an error
// only if cfg actually holds a reference.
func ResolveSecrets(ctx context.Context, cfg *Config, src SecretSource) (*Config, error) {
	out := *cfg
	if !IsVaultRef(cfg.Database.Password) {
		return &out, nil
	}
	if src == nil {
		return nil, fmt.Errorf("database.password references vault but no vault client is configured")
	}

	path, key, err := splitRef(cfg.Database.Password)
	if err != nil {
		return nil, fmt.Errorf("database.password: %w", err)
	}
	val, err := src.GetKV(ctx, path, key, SecretTTL)
	if err != nil {
		return nil, fmt.Errorf("database.password: %w", err)
	}
	if val == "" {
		return nil, fmt.Errorf("database.password: vault secret %s#%s is empty", path, key)
	}
	out.Database.Password = val
	return &out, nil
}

// splitRef turns "vault:secret/company/db#password" into its path and key.
func splitRef(ref string) (path, key string, err error) {
	rest := strings.TrimPrefix(ref, VaultPrefix)
	i := strings.LastIndexByte(rest, '#')
	if i <= 0 || i == len(rest)-1 {
		return "", "", fmt.Errorf("malformed vault reference %q, want vault:<path>#<key>", ref)
	}
	return rest[:i], rest[i+1:], nil
}
