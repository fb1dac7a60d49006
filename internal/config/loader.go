// internal/config/loader.go
//
// Configuration loader and hot-reloader.
//
/*
Context
--------
`Load()` builds one immutable `Config` from three layers (highest precedence
last):

  1. Optional `conf/.env` under the root.
  2. `conf/global.yaml` (optional; env-only deployments are fine).
  3. Environment variables prefixed `LEADMODAL_`, where `__` maps to “.”
     (e.g., `LEADMODAL_WEBHOOK__URL → webhook.url`).

After merging, the tree is unmarshalled into typed structs, defaults are
filled, `vault:` references are resolved through the SecretResolver, and the
result is validated and cached in an `atomic.Pointer`.  `Reload()` runs the
same steps again and swaps the pointer.

Instrumentation
---------------
  • DEBUG – root discovery, YAML read.
  • ERROR – YAML parse, env overlay, unmarshal, secret, validation failures.
  • INFO  – final “config loaded” with key highlights (never secrets).
*/
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// EnvPrefix marks environment overrides.
const EnvPrefix = "LEADMODAL_"

// ErrNoResolver is returned when a vault: reference is configured but no
// SecretResolver was supplied.
var ErrNoResolver = errors.New("secret reference without a resolver")

// SecretResolver turns a `vault:` reference into its value and returns any
// other string unchanged.
type SecretResolver interface {
	Resolve(ctx context.Context, s string) (string, error)
}

var (
	current atomic.Pointer[Config]

	loadMu       sync.Mutex // serialises Load and Reload
	lastResolver SecretResolver
)

/*──────────────────────────── root discovery ───────────────────────────────*/

// rootDir resolves LEADMODAL_ROOT or climbs directories until conf/global.yaml
// is found, falling back to the working directory.
func rootDir() string {
	if r := os.Getenv(EnvPrefix + "ROOT"); r != "" {
		return r
	}
	wd, _ := os.Getwd()
	for dir := wd; ; {
		if _, err := os.Stat(filepath.Join(dir, "conf", "global.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return wd
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// Load reads the layers under the discovered root.
func Load(ctx context.Context, secrets SecretResolver) (*Config, error) {
	return LoadFrom(ctx, rootDir(), secrets)
}

// LoadFrom reads the layers under root, validates, and caches the result.
func LoadFrom(ctx context.Context, root string, secrets SecretResolver) (*Config, error) {
	loadMu.Lock()
	defer loadMu.Unlock()

	log := zap.S()
	log.Debugw("config root resolved", "root", root)

	_ = godotenv.Load(filepath.Join(root, "conf", ".env"))

	k := koanf.New(".")

	yamlPath := filepath.Join(root, "conf", "global.yaml")
	if _, err := os.Stat(yamlPath); err == nil {
		if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
			log.Errorw("config yaml load failed", "file", yamlPath, "err", err)
			return nil, fmt.Errorf("config yaml: %w", err)
		}
		log.Debugw("config yaml loaded", "file", yamlPath)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		return strings.ToLower(strings.ReplaceAll(s, "__", "."))
	}), nil); err != nil {
		log.Errorw("config env overlay failed", "err", err)
		return nil, fmt.Errorf("config env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		log.Errorw("config unmarshal failed", "err", err)
		return nil, fmt.Errorf("config unmarshal: %w", err)
	}
	cfg.Paths.Root = root
	applyDefaults(&cfg)

	if err := resolveSecrets(ctx, &cfg, secrets); err != nil {
		log.Errorw("config secret resolution failed", "err", err)
		return nil, err
	}
	if err := validateStruct(&cfg); err != nil {
		log.Errorw("config validation failed", "err", err)
		return nil, fmt.Errorf("config invalid: %w", err)
	}

	current.Store(&cfg)
	lastResolver = secrets
	log.Infow("config loaded",
		"listen_addr", cfg.HTTP.ListenAddr,
		"force_https", cfg.HTTP.ForceHTTPS,
		"ledger", cfg.Ledger.Driver,
		"locale", cfg.Locale.Default,
		"root", cfg.Paths.Root,
	)
	return &cfg, nil
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

func applyDefaults(c *Config) {
	if c.HTTP.ListenAddr == "" {
		c.HTTP.ListenAddr = ":8080"
	}
	if c.Ledger.Driver == "" {
		c.Ledger.Driver = "file"
	}
	if c.Ledger.Driver == "file" && c.Ledger.Path == "" {
		c.Ledger.Path = filepath.Join(c.Paths.Root, "data", "ledger.json")
	}
	if c.Ledger.Path != "" && !filepath.IsAbs(c.Ledger.Path) {
		c.Ledger.Path = filepath.Join(c.Paths.Root, c.Ledger.Path)
	}
	if c.Locale.Overrides != "" && !filepath.IsAbs(c.Locale.Overrides) {
		c.Locale.Overrides = filepath.Join(c.Paths.Root, c.Locale.Overrides)
	}
}

func resolveSecrets(ctx context.Context, c *Config, secrets SecretResolver) error {
	for name, p := range map[string]*string{
		"webhook.url": &c.Webhook.URL,
		"ledger.dsn":  &c.Ledger.DSN,
	} {
		if !strings.HasPrefix(*p, "vault:") {
			continue
		}
		if secrets == nil {
			return fmt.Errorf("%s: %w", name, ErrNoResolver)
		}
		v, err := secrets.Resolve(ctx, *p)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*p = v
	}
	return nil
}

// Get returns the last loaded Config, or nil before the first Load.
func Get() *Config { return current.Load() }

// Reload re-reads the same root with the previous resolver.
func Reload(ctx context.Context) error {
	root := rootDir()
	if c := Get(); c != nil {
		root = c.Paths.Root
	}
	loadMu.Lock()
	secrets := lastResolver
	loadMu.Unlock()
	_, err := LoadFrom(ctx, root, secrets)
	return err
}
