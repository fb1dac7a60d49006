// internal/vault/vault.go
//
// Vault secret references for configuration.
//
// Context
// -------
//   Operators keep the webhook URL and the ledger DSN out of YAML by writing
//   a reference instead of the value:
//
//       webhook:
//         url: "vault:secret/leadmodal#webhook_url"
//
//   The config loader hands every such string to Client.Resolve, which reads
//   the key from a KV-v2 secret (`<mount>/<path>#<key>`) and caches it for the
//   configured TTL.  A background watcher keeps the token alive.
//
// Public workflow
// ---------------
//  1. cli, err := vault.New(ctx, zap.S(), 10*time.Minute)   // during boot.
//  2. v,   err := cli.Resolve(ctx, "vault:secret/app#key") // config loader.
//
// Environment: VAULT_ADDR, VAULT_TOKEN (or ~/.vault-token).
package vault

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	vault "github.com/hashicorp/vault/api"
	"go.uber.org/zap"
)

// RefPrefix marks a configuration value as a Vault reference.
const RefPrefix = "vault:"

// ErrBadRef is returned for references without a path or key.
var ErrBadRef = errors.New("malformed vault reference")

//
// SECTION 1.  Reference parsing
//

// IsRef reports whether s is a Vault reference.
func IsRef(s string) bool { return strings.HasPrefix(s, RefPrefix) }

// ParseRef splits "vault:<mount>/<path>#<key>" into its secret path and key.
func ParseRef(s string) (secretPath, key string, err error) {
	if !IsRef(s) {
		return "", "", fmt.Errorf("%w: %q lacks the %q prefix", ErrBadRef, s, RefPrefix)
	}
	body := strings.TrimPrefix(s, RefPrefix)
	secretPath, key, ok := strings.Cut(body, "#")
	if !ok || secretPath == "" || key == "" || !strings.Contains(secretPath, "/") {
		return "", "", fmt.Errorf("%w: %q", ErrBadRef, s)
	}
	return secretPath, key, nil
}

//
// SECTION 2.  Client
//

// Client is safe for concurrent use.  Zero value is invalid.
type Client struct {
	api *vault.Client
	log *zap.SugaredLogger
	ttl time.Duration

	mu    sync.RWMutex
	cache map[string]cached // path#key → value
}

type cached struct {
	val string
	exp time.Time
}

// New builds a client from the VAULT_* environment and starts token renewal
// bound to ctx.  ttl is how long resolved values are cached; zero disables
// caching.
func New(ctx context.Context, log *zap.SugaredLogger, ttl time.Duration) (*Client, error) {
	if log == nil {
		log = zap.S()
	}
	cfg := vault.DefaultConfig()
	if err := cfg.ReadEnvironment(); err != nil {
		return nil, fmt.Errorf("vault env cfg: %w", err)
	}
	api, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault api: %w", err)
	}
	if tok := os.Getenv("VAULT_TOKEN"); tok != "" {
		api.SetToken(tok)
	}

	c := &Client{api: api, log: log, ttl: ttl, cache: make(map[string]cached)}
	go c.keepTokenAlive(ctx)
	return c, nil
}

// Resolve returns s unchanged unless it is a reference, in which case the
// referenced secret value is returned.
func (c *Client) Resolve(ctx context.Context, s string) (string, error) {
	if !IsRef(s) {
		return s, nil
	}
	secretPath, key, err := ParseRef(s)
	if err != nil {
		return "", err
	}
	return c.GetKV(ctx, secretPath, key)
}

// GetKV reads one string key from a KV-v2 secret, through the cache.
func (c *Client) GetKV(ctx context.Context, secretPath, key string) (string, error) {
	id := secretPath + "#" + key
	if v, ok := c.cached(id); ok {
		return v, nil
	}

	mount, rel, _ := strings.Cut(secretPath, "/")
	sec, err := c.api.KVv2(mount).Get(ctx, rel)
	if err != nil {
		return "", fmt.Errorf("vault get %s: %w", secretPath, err)
	}
	raw, ok := sec.Data[key]
	if !ok {
		return "", fmt.Errorf("key %q not found in secret %q", key, secretPath)
	}
	val, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("value at %s is not a string", id)
	}

	if c.ttl > 0 {
		c.mu.Lock()
		c.cache[id] = cached{val: val, exp: time.Now().Add(c.ttl)}
		c.mu.Unlock()
	}
	return val, nil
}

func (c *Client) cached(id string) (string, bool) {
	if c.ttl <= 0 {
		return "", false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	cv, ok := c.cache[id]
	if !ok || time.Now().After(cv.exp) {
		return "", false
	}
	return cv.val, true
}

//
// SECTION 3.  Token renewal
//

func (c *Client) keepTokenAlive(ctx context.Context) {
	for ctx.Err() == nil {
		wait := c.watchToken(ctx)
		sleep(ctx, wait)
	}
}

// watchToken renews the token until the watcher gives up and returns how long
// to wait before probing again.
func (c *Client) watchToken(ctx context.Context) time.Duration {
	sec, err := c.api.Auth().Token().RenewSelfWithContext(ctx, 0)
	if err != nil {
		c.log.Warnw("vault token renew failed", "err", err)
		return 30 * time.Second
	}
	if sec == nil || sec.Auth == nil || !sec.Auth.Renewable {
		c.log.Infow("vault token is not renewable")
		return time.Hour
	}

	w, err := c.api.NewLifetimeWatcher(&vault.LifetimeWatcherInput{Secret: sec})
	if err != nil {
		c.log.Warnw("vault watcher init failed", "err", err)
		return 30 * time.Second
	}
	go w.Start()
	defer w.Stop()

	for {
		select {
		case <-ctx.Done():
			return 0
		case err := <-w.DoneCh():
			if err != nil {
				c.log.Warnw("vault token renewal stopped", "err", err)
			}
			return 15 * time.Second
		case ev := <-w.RenewCh():
			if ev != nil && ev.Secret != nil && ev.Secret.Auth != nil {
				c.log.Debugw("vault token renewed", "ttl_s", ev.Secret.Auth.LeaseDuration)
			}
		}
	}
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
