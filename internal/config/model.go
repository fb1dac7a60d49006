// internal/config/model.go
//
// Typed configuration model for leadmodal.
//
// Context
// -------
// These structs define the tree that `loader.go` builds from three layers:
//
//   • optional `conf/.env`                        – dotenv values,
//   • `conf/global.yaml`                          – primary static file,
//   • `LEADMODAL_`-prefixed environment overrides – highest precedence.
//
// Secret-bearing strings (webhook URL, ledger DSN) may hold a `vault:`
// reference; the loader resolves them before validation, so the model only
// ever carries plain values once Load returns.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`.  Durations are written as Go duration
//     strings ("3s", "10m").
//   • The `Paths` block is filled at runtime; YAML must not set it.

package config

import "time"

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Webhook section
//

// Webhook is the lead endpoint.
type Webhook struct {
	URL     string        `koanf:"url"     validate:"required,url"`
	Timeout time.Duration `koanf:"timeout" validate:"gte=0"`
}

//
// Anti-spam section
//

// Antispam holds the gate thresholds.  Zero values take the defaults.
type Antispam struct {
	MinFillTime time.Duration `koanf:"min_fill_time" validate:"gte=0"`
	RateWindow  time.Duration `koanf:"rate_window"   validate:"gte=0"`
	RateMax     int           `koanf:"rate_max"      validate:"gte=0"`
}

//
// Modal section
//

// Modal holds controller timings and payload metadata.
type Modal struct {
	AutoCloseDelay time.Duration `koanf:"auto_close_delay" validate:"gte=0"`
	FocusDelay     time.Duration `koanf:"focus_delay"      validate:"gte=0"`
	SourcePage     string        `koanf:"source_page"`
}

//
// Locale section
//

// Locale picks the display language.  An empty Default lets each visitor's
// first request decide.
type Locale struct {
	Default   string `koanf:"default"   validate:"omitempty,oneof=ru en fr"`
	Overrides string `koanf:"overrides"`
}

//
// Ledger section
//

// Ledger selects the rate-limit ledger backend.
type Ledger struct {
	Driver string `koanf:"driver" validate:"oneof=memory file mysql"`
	Key    string `koanf:"key"`
	Path   string `koanf:"path"   validate:"required_if=Driver file"`
	DSN    string `koanf:"dsn"    validate:"required_if=Driver mysql"`
	Table  string `koanf:"table"`
}

//
// Sessions section
//

// Sessions bounds the visitor cache of the HTTP host.
type Sessions struct {
	IdleTTL    time.Duration `koanf:"idle_ttl"    validate:"gte=0"`
	MaxEntries int           `koanf:"max_entries" validate:"gte=0"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.
type Paths struct {
	Root string // LEADMODAL_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Webhook  Webhook  `koanf:"webhook"`
	Antispam Antispam `koanf:"antispam"`
	Modal    Modal    `koanf:"modal"`
	Locale   Locale   `koanf:"locale"`
	Ledger   Ledger   `koanf:"ledger"`
	Sessions Sessions `koanf:"sessions"`
	Paths    Paths    `koanf:"-"`
}
