package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "conf"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "conf", "global.yaml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

type mapResolver map[string]string

func (m mapResolver) Resolve(_ context.Context, s string) (string, error) {
	if !strings.HasPrefix(s, "vault:") {
		return s, nil
	}
	v, ok := m[s]
	if !ok {
		return "", errors.New("no such secret")
	}
	return v, nil
}

func TestLoadFrom_YAMLEnvAndDefaults(t *testing.T) {
	root := writeYAML(t, `
http:
  listen_addr: "127.0.0.1:9000"
webhook:
  url: "https://hooks.example/lead"
  timeout: 5s
antispam:
  min_fill_time: 2s
  rate_window: 5m
  rate_max: 3
locale:
  default: en
`)
	t.Setenv("LEADMODAL_HTTP__FORCE_HTTPS", "true")
	t.Setenv("LEADMODAL_MODAL__SOURCE_PAGE", "pricing.html")

	cfg, err := LoadFrom(context.Background(), root, nil)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.HTTP.ListenAddr != "127.0.0.1:9000" || !cfg.HTTP.ForceHTTPS {
		t.Fatalf("http = %+v", cfg.HTTP)
	}
	if cfg.Webhook.Timeout != 5*time.Second || cfg.Antispam.RateWindow != 5*time.Minute || cfg.Antispam.RateMax != 3 {
		t.Fatalf("durations = %+v %+v", cfg.Webhook, cfg.Antispam)
	}
	if cfg.Modal.SourcePage != "pricing.html" {
		t.Fatalf("env override lost: %q", cfg.Modal.SourcePage)
	}
	if cfg.Ledger.Driver != "file" || cfg.Ledger.Path != filepath.Join(root, "data", "ledger.json") {
		t.Fatalf("ledger defaults = %+v", cfg.Ledger)
	}
	if Get() != cfg {
		t.Fatal("config not cached")
	}
}

func TestLoadFrom_ResolvesVaultRefs(t *testing.T) {
	root := writeYAML(t, `
webhook:
  url: "vault:secret/leadmodal#webhook_url"
`)
	secrets := mapResolver{"vault:secret/leadmodal#webhook_url": "https://hooks.example/secret"}

	cfg, err := LoadFrom(context.Background(), root, secrets)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Webhook.URL != "https://hooks.example/secret" {
		t.Fatalf("url = %q", cfg.Webhook.URL)
	}

	if _, err := LoadFrom(context.Background(), root, nil); !errors.Is(err, ErrNoResolver) {
		t.Fatalf("without resolver err = %v, want ErrNoResolver", err)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	cases := map[string]string{
		"missing url":      "http:\n  listen_addr: \":8080\"\n",
		"bad driver":       "webhook:\n  url: \"https://h.example\"\nledger:\n  driver: redis\n",
		"mysql no dsn":     "webhook:\n  url: \"https://h.example\"\nledger:\n  driver: mysql\n",
		"bad locale":       "webhook:\n  url: \"https://h.example\"\nlocale:\n  default: de\n",
		"window too tight": "webhook:\n  url: \"https://h.example\"\nantispam:\n  min_fill_time: 5s\n  rate_window: 3s\n",
	}
	for name, body := range cases {
		if _, err := LoadFrom(context.Background(), writeYAML(t, body), nil); err == nil {
			t.Errorf("%s: expected a validation error", name)
		}
	}
}
