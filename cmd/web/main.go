// cmd/web/main.go
//
// Leadmodal – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (jail-wide file → .env fallback).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Connect to Vault when VAULT_ADDR is set, so `vault:` references in
//     the config can be resolved.
//
//  4. Load and validate conf/global.yaml + LEADMODAL_* overrides.
//
//  5. Build the text table and the rate-limit ledger store
//     (memory, JSON file, or MySQL).
//
//  6. Build the webhook client and the visitor cache.
//
//  7. Mount routes:
//
//     • /api/modal/*   – modal controller API
//     • /metrics       – Prometheus
//     • /healthz       – liveness
//
//     wrapped with security headers and HTTPS enforcement.
//
//  8. Serve until SIGINT/SIGTERM, then shut down gracefully.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yanizio/leadmodal/internal/antispam"
	"github.com/yanizio/leadmodal/internal/config"
	"github.com/yanizio/leadmodal/internal/database"
	"github.com/yanizio/leadmodal/internal/httpapi"
	"github.com/yanizio/leadmodal/internal/locale"
	"github.com/yanizio/leadmodal/internal/logger"
	"github.com/yanizio/leadmodal/internal/middleware"
	"github.com/yanizio/leadmodal/internal/server"
	"github.com/yanizio/leadmodal/internal/vault"
	"github.com/yanizio/leadmodal/internal/visitor"
	"github.com/yanizio/leadmodal/internal/webhook"
)

const (
	serverEnvPath = "/usr/local/etc/leadmodal/global.env"
	vaultCacheTTL = 10 * time.Minute
)

// loadEnv prefers the jail-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootDir, _ := os.Getwd()
	logOut, err := logger.New(logger.Options{
		Dir:   filepath.Join(rootDir, "logs"),
		Tee:   runningInTTY(),
		Level: os.Getenv("LEADMODAL_LOG_LEVEL"),
	})
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = logOut.Sync() }()

	if err := run(ctx, logOut); err != nil {
		logOut.Fatalw("leadmodal stopped", "err", err)
	}
}

func run(ctx context.Context, logOut *zap.SugaredLogger) error {
	//
	// ── 1.  Vault (optional) ────────────────────────────────────────────
	//
	var secrets config.SecretResolver
	if os.Getenv("VAULT_ADDR") != "" {
		vc, err := vault.New(ctx, logOut, vaultCacheTTL)
		if err != nil {
			return fmt.Errorf("vault: %w", err)
		}
		secrets = vc
		logOut.Infow("vault client ready", "addr", os.Getenv("VAULT_ADDR"))
	}

	//
	// ── 2.  Configuration ───────────────────────────────────────────────
	//
	cfg, err := config.Load(ctx, secrets)
	if err != nil {
		return err
	}

	//
	// ── 3.  Texts ───────────────────────────────────────────────────────
	//
	texts := locale.Default()
	if cfg.Locale.Overrides != "" {
		if err := texts.LoadOverrides(cfg.Locale.Overrides); err != nil {
			return fmt.Errorf("locale overrides: %w", err)
		}
		logOut.Infow("locale overrides loaded", "file", cfg.Locale.Overrides)
	}

	//
	// ── 4.  Rate-limit ledger store ─────────────────────────────────────
	//
	store, closeStore, err := openStore(ctx, cfg.Ledger, logOut)
	if err != nil {
		return err
	}
	defer closeStore()

	//
	// ── 5.  Webhook client + visitor cache ──────────────────────────────
	//
	hook, err := webhook.New(cfg.Webhook.URL,
		webhook.WithTimeout(cfg.Webhook.Timeout),
		webhook.WithLogger(logOut),
	)
	if err != nil {
		return fmt.Errorf("webhook: %w", err)
	}

	sessions := visitor.New(visitor.Deps{
		Texts:     texts,
		Lang:      locale.Lang(cfg.Locale.Default),
		Store:     store,
		LedgerKey: cfg.Ledger.Key,
		Antispam: antispam.Config{
			MinFillTime:  cfg.Antispam.MinFillTime,
			Window:       cfg.Antispam.RateWindow,
			MaxPerWindow: cfg.Antispam.RateMax,
		},
		Submitter:      hook,
		Logger:         logOut,
		SourcePage:     cfg.Modal.SourcePage,
		AutoCloseDelay: cfg.Modal.AutoCloseDelay,
		FocusDelay:     cfg.Modal.FocusDelay,
	}, cfg.Sessions.IdleTTL, cfg.Sessions.MaxEntries)
	defer sessions.Close()

	//
	// ── 6.  Router ──────────────────────────────────────────────────────
	//
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Security)
	r.Use(middleware.ForceHTTPS(cfg.HTTP.ForceHTTPS))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Mount("/api/modal", httpapi.New(sessions, logOut).Routes())

	//
	// ── 7.  Serve ───────────────────────────────────────────────────────
	//
	return server.Run(ctx, server.New(cfg.HTTP.ListenAddr, r), logOut)
}

// openStore builds the ledger backend named by the config.  The returned
// func releases whatever the store holds.
func openStore(ctx context.Context, c config.Ledger, logOut *zap.SugaredLogger) (antispam.Store, func(), error) {
	nop := func() {}
	switch c.Driver {
	case "memory":
		logOut.Warnw("rate-limit ledger is in memory; it resets on restart")
		return antispam.NewMemoryStore(), nop, nil

	case "mysql":
		db, err := database.Open(ctx, c.DSN)
		if err != nil {
			return nil, nop, fmt.Errorf("ledger db: %w", err)
		}
		st, err := antispam.NewSQLStore(db, c.Table)
		if err == nil {
			err = st.EnsureTable(ctx)
		}
		if err != nil {
			_ = db.Close()
			return nil, nop, err
		}
		logOut.Infow("rate-limit ledger online", "driver", "mysql", "table", c.Table)
		return st, func() { _ = db.Close() }, nil

	default:
		st, err := antispam.NewFileStore(c.Path)
		if err != nil {
			return nil, nop, fmt.Errorf("ledger file: %w", err)
		}
		logOut.Infow("rate-limit ledger online", "driver", "file", "path", c.Path)
		return st, nop, nil
	}
}
