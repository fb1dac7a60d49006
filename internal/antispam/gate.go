// internal/antispam/gate.go
//
// Leadmodal – Anti-Spam Gate.
//
// Context
//   Runs at submit time, before field validation and before any network call.
//   Three checks, in order:
//
//     1. Honeypot – a hidden input humans never fill.  Any value aborts.
//     2. Fill time – less than MinFillTime between open and submit aborts.
//     3. Rate limit – MaxPerWindow accepted submissions inside Window blocks.
//
//   The first two verdicts are silent: the caller must leave the modal as it
//   is and make no request, so a bot sees nothing happen.  Only the rate limit
//   is surfaced to the user.  The ledger entry for a submission is written by
//   Record, after the webhook confirmed it, never here.
//
//------------------------------------------------------------------------------

package antispam

import (
	"context"
	"time"
)

// Defaults for Config.
const (
	DefaultMinFillTime  = 3000 * time.Millisecond
	DefaultWindow       = 10 * time.Minute
	DefaultMaxPerWindow = 5
)

// Config holds the gate thresholds.
type Config struct {
	MinFillTime  time.Duration
	Window       time.Duration
	MaxPerWindow int
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		MinFillTime:  DefaultMinFillTime,
		Window:       DefaultWindow,
		MaxPerWindow: DefaultMaxPerWindow,
	}
}

// Verdict is the outcome of Gate.Check.
type Verdict int

const (
	VerdictPass Verdict = iota
	VerdictHoneypot
	VerdictTooFast
	VerdictRateLimited
)

func (v Verdict) String() string {
	switch v {
	case VerdictPass:
		return "pass"
	case VerdictHoneypot:
		return "honeypot"
	case VerdictTooFast:
		return "too_fast"
	case VerdictRateLimited:
		return "rate_limited"
	default:
		return "unknown"
	}
}

// Silent reports whether the verdict must leave no visible trace.
func (v Verdict) Silent() bool { return v == VerdictHoneypot || v == VerdictTooFast }

// Gate evaluates the checks against one ledger.
type Gate struct {
	cfg    Config
	ledger *Ledger
}

// WithDefaults returns cfg with zero thresholds replaced by the defaults.
func (cfg Config) WithDefaults() Config {
	def := DefaultConfig()
	if cfg.MinFillTime <= 0 {
		cfg.MinFillTime = def.MinFillTime
	}
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	if cfg.MaxPerWindow <= 0 {
		cfg.MaxPerWindow = def.MaxPerWindow
	}
	return cfg
}

// NewGate returns a Gate.  Zero thresholds in cfg take the defaults.  The
// ledger's window should match cfg.Window.
func NewGate(cfg Config, ledger *Ledger) *Gate {
	return &Gate{cfg: cfg.WithDefaults(), ledger: ledger}
}

// Config returns the effective thresholds.
func (g *Gate) Config() Config { return g.cfg }

// Check runs the three checks in order and returns the first failing verdict.
func (g *Gate) Check(ctx context.Context, honeypot string, openedAt, now time.Time) Verdict {
	if honeypot != "" {
		return VerdictHoneypot
	}
	if now.Sub(openedAt) < g.cfg.MinFillTime {
		return VerdictTooFast
	}
	if len(g.ledger.Recent(ctx, now)) >= g.cfg.MaxPerWindow {
		return VerdictRateLimited
	}
	return VerdictPass
}

// Record appends an accepted submission to the ledger.
func (g *Gate) Record(ctx context.Context, now time.Time) {
	g.ledger.Append(ctx, now)
}
