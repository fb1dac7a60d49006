package visitor

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/yanizio/leadmodal/internal/antispam"
	"github.com/yanizio/leadmodal/internal/catalog"
	"github.com/yanizio/leadmodal/internal/eventloop"
	"github.com/yanizio/leadmodal/internal/locale"
	"github.com/yanizio/leadmodal/internal/metrics"
	"github.com/yanizio/leadmodal/internal/modal"
	"github.com/yanizio/leadmodal/internal/webhook"
)

// Static defaults.  Overridden by the sessions section of the config.
const (
	IdleTTL       = 30 * time.Minute
	MaxEntries    = 10000
	EvictInterval = time.Minute
)

// ErrEmptyID is returned by Get for an empty visitor id.
var ErrEmptyID = errors.New("visitor id is empty")

// Deps is what every new session is built from.
type Deps struct {
	Texts     locale.Table
	Lang      locale.Lang // fixed display language; empty resolves per visitor
	Store     antispam.Store
	LedgerKey string
	Antispam  antispam.Config
	Submitter webhook.Submitter
	Logger    *zap.SugaredLogger

	SourcePage     string
	AutoCloseDelay time.Duration
	FocusDelay     time.Duration
}

// Cache lazily creates sessions, keeps them in a sync.Map, and evicts them on
// idle TTL or LRU pressure.
type Cache struct {
	deps     Deps
	catalogs map[locale.Lang]*catalog.Catalog
	log      *zap.SugaredLogger

	sfg singleflight.Group
	m   sync.Map // id → *Session

	idleTTL    time.Duration
	maxEntries int

	stop     chan struct{}
	stopOnce sync.Once
}

// New builds a Cache and starts the background evictor.  Zero limits take the
// package defaults.
func New(deps Deps, idleTTL time.Duration, maxEntries int) *Cache {
	if deps.Logger == nil {
		deps.Logger = zap.S()
	}
	if deps.LedgerKey == "" {
		deps.LedgerKey = antispam.DefaultLedgerKey
	}
	deps.Antispam = deps.Antispam.WithDefaults()
	if idleTTL <= 0 {
		idleTTL = IdleTTL
	}
	if maxEntries <= 0 {
		maxEntries = MaxEntries
	}
	c := &Cache{
		deps:       deps,
		catalogs:   make(map[locale.Lang]*catalog.Catalog, len(locale.Supported)),
		log:        deps.Logger,
		idleTTL:    idleTTL,
		maxEntries: maxEntries,
		stop:       make(chan struct{}),
	}
	for _, l := range locale.Supported {
		c.catalogs[l] = catalog.New(deps.Texts.For(l))
	}
	go c.evictLoop(EvictInterval)
	return c
}

// Get returns the session for id, creating it on first use.  langHint (a
// lang query or Accept-Language value) only matters on creation and only
// when no fixed language is configured.
func (c *Cache) Get(id, langHint string) (*Session, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	if v, ok := c.m.Load(id); ok {
		s := v.(*Session)
		s.touch()
		return s, nil
	}

	v, err, _ := c.sfg.Do(id, func() (any, error) {
		if v, ok := c.m.Load(id); ok {
			return v.(*Session), nil
		}
		s, err := c.build(id, langHint)
		if err != nil {
			return nil, err
		}
		c.m.Store(id, s)
		metrics.ActiveVisitors.Inc()
		c.log.Debugw("visitor session created", "visitor", id, "lang", s.Lang)
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	s := v.(*Session)
	s.touch()
	return s, nil
}

func (c *Cache) build(id, langHint string) (*Session, error) {
	lang := c.deps.Lang
	if lang == "" {
		lang = locale.Resolve(langHint)
	}
	msgs := c.deps.Texts.For(lang)

	ledger := antispam.NewLedger(c.deps.Store, c.deps.LedgerKey+":"+id, c.deps.Antispam.Window, c.log)
	gate := antispam.NewGate(c.deps.Antispam, ledger)

	loop := eventloop.New(c.log)
	ctrl, err := modal.New(modal.Options{
		Messages:       msgs,
		Catalog:        c.catalogs[msgs.Lang()],
		Gate:           gate,
		Submitter:      c.deps.Submitter,
		Scheduler:      loop,
		Logger:         c.log.With("visitor", id),
		SourcePage:     c.deps.SourcePage,
		AutoCloseDelay: c.deps.AutoCloseDelay,
		FocusDelay:     c.deps.FocusDelay,
		Context:        context.Background(),
	})
	if err != nil {
		loop.Stop()
		return nil, err
	}

	s := &Session{ID: id, Lang: msgs.Lang(), loop: loop, ctrl: ctrl}
	s.touch()
	return s, nil
}

// Len reports the number of live sessions.
func (c *Cache) Len() int {
	n := 0
	c.m.Range(func(_, _ any) bool { n++; return true })
	return n
}

// Close stops the evictor and every session.
func (c *Cache) Close() {
	c.stopOnce.Do(func() {
		close(c.stop)
		c.m.Range(func(key, value any) bool {
			value.(*Session).Close()
			c.m.Delete(key)
			metrics.ActiveVisitors.Dec()
			return true
		})
	})
}
