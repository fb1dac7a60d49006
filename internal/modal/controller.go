// internal/modal/controller.go
//
// Leadmodal – Modal State Machine.
//
// Context
//   A Controller owns the one modal instance of a page (or, in the HTTP host,
//   of a visitor).  The instance is created on the first Open and reused
//   afterwards: each Open replaces its content.  Sections move as
//
//       form → loading → success → (auto-close)
//                      ↘ error  → form (Retry)
//                      ↘ form   (server field errors)
//
//   and the modal can be closed by the user from form, success, or error,
//   never from loading.  Two guards hold the invariants: `submitting` allows
//   one webhook call at a time and blocks Open while it runs, and every
//   callback arrives on the Scheduler's single thread so no locks are taken.
//
// Workflow
//   •  Open      – look up the schema, render fields fresh, stamp openedAt,
//                  schedule initial focus.
//   •  Input/Blur/SetChecked – live editing and per-field validation
//                  (fields.go).
//   •  Submit    – anti-spam gate, full validation, webhook (submit.go).
//   •  View      – declarative snapshot for any renderer.
//
//------------------------------------------------------------------------------

package modal

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/yanizio/leadmodal/internal/antispam"
	"github.com/yanizio/leadmodal/internal/catalog"
	"github.com/yanizio/leadmodal/internal/eventloop"
	"github.com/yanizio/leadmodal/internal/locale"
	"github.com/yanizio/leadmodal/internal/metrics"
	"github.com/yanizio/leadmodal/internal/webhook"
)

// Defaults for Options.
const (
	DefaultAutoCloseDelay = 3000 * time.Millisecond
	DefaultFocusDelay     = 350 * time.Millisecond
	DefaultSourcePage     = "index.html"
)

// ErrMissingDependency is returned by New when a required option is nil.
var ErrMissingDependency = errors.New("modal: missing dependency")

// Config is the trigger input of one Open.  It is kept only while the modal
// shows the form it opened.
type Config struct {
	FormType   catalog.FormType `json:"form"`
	Service    string           `json:"service"`
	Price      string           `json:"price"`
	Plan       string           `json:"plan"`
	ButtonText string           `json:"button"`
}

// Options wires a Controller.  Gate, Submitter and Scheduler are required.
// Catalog defaults to the built-in schemas in the Messages language.
type Options struct {
	Messages  locale.Messages
	Catalog   *catalog.Catalog
	Gate      *antispam.Gate
	Submitter webhook.Submitter
	Scheduler eventloop.Scheduler
	Logger    *zap.SugaredLogger

	SourcePage     string
	AutoCloseDelay time.Duration
	FocusDelay     time.Duration

	// Context is handed to ledger reads and writes.
	Context context.Context
}

// Controller drives the modal.  All methods must be called on the
// Scheduler's thread.
type Controller struct {
	msgs      locale.Messages
	catalog   *catalog.Catalog
	gate      *antispam.Gate
	submitter webhook.Submitter
	sched     eventloop.Scheduler
	log       *zap.SugaredLogger
	ctx       context.Context

	sourcePage     string
	autoCloseDelay time.Duration
	focusDelay     time.Duration

	inst       *instance
	visible    bool
	submitting bool

	cancelAutoClose eventloop.Cancel
	cancelFocus     eventloop.Cancel
}

// New validates opts and returns a Controller with no instance yet.
func New(opts Options) (*Controller, error) {
	if opts.Gate == nil || opts.Submitter == nil || opts.Scheduler == nil {
		return nil, ErrMissingDependency
	}
	c := &Controller{
		msgs:           opts.Messages,
		catalog:        opts.Catalog,
		gate:           opts.Gate,
		submitter:      opts.Submitter,
		sched:          opts.Scheduler,
		log:            opts.Logger,
		ctx:            opts.Context,
		sourcePage:     opts.SourcePage,
		autoCloseDelay: opts.AutoCloseDelay,
		focusDelay:     opts.FocusDelay,
	}
	if c.catalog == nil {
		c.catalog = catalog.New(c.msgs)
	}
	if c.log == nil {
		c.log = zap.S()
	}
	if c.ctx == nil {
		c.ctx = context.Background()
	}
	if c.sourcePage == "" {
		c.sourcePage = DefaultSourcePage
	}
	if c.autoCloseDelay <= 0 {
		c.autoCloseDelay = DefaultAutoCloseDelay
	}
	if c.focusDelay <= 0 {
		c.focusDelay = DefaultFocusDelay
	}
	return c, nil
}

// Visible reports whether the modal is shown.
func (c *Controller) Visible() bool { return c.visible }

// Submitting reports whether a webhook call is in flight.
func (c *Controller) Submitting() bool { return c.submitting }

// Section reports the current section, or "" before the first Open.
func (c *Controller) Section() Section {
	if c.inst == nil {
		return ""
	}
	return c.inst.section
}

// Open shows the form for cfg.  It reports false, changing nothing, while a
// submission is in flight or when the form type is unknown.
func (c *Controller) Open(cfg Config) bool {
	if c.submitting {
		c.log.Debugw("open ignored while submitting", "form_type", cfg.FormType)
		return false
	}
	schema, ok := c.catalog.Schema(cfg.FormType)
	if !ok {
		c.log.Debugw("open ignored: unknown form type", "form_type", cfg.FormType)
		return false
	}

	c.stopTimers()
	if c.inst == nil {
		c.inst = &instance{}
	}
	c.inst.render(schema, cfg, catalog.ConsentSpec(c.msgs))
	c.inst.openedAt = c.sched.Now()
	c.inst.errorText = c.msgs.Get(locale.FailureText)
	c.visible = true

	inst := c.inst
	c.cancelFocus = c.sched.After(c.focusDelay, func() {
		c.cancelFocus = nil
		if c.visible && inst.section == SectionForm && len(inst.fields) > 0 {
			inst.focus = inst.fields[0].spec.Name
		}
	})

	metrics.ModalOpenTotal.WithLabelValues(string(schema.Type)).Inc()
	c.log.Debugw("modal opened", "form_type", schema.Type, "service", cfg.Service)
	return true
}

// Close hides the modal.  It is refused while loading and when nothing is
// shown.  Entered values stay in the instance until the next Open.
func (c *Controller) Close() bool {
	if c.inst == nil || !c.visible {
		return false
	}
	if c.inst.section == SectionLoading {
		return false
	}
	c.hide()
	return true
}

// Retry returns from the error section to the form, keeping values.
func (c *Controller) Retry() bool {
	if c.inst == nil || !c.visible || c.inst.section != SectionError {
		return false
	}
	c.inst.section = SectionForm
	return true
}

func (c *Controller) hide() {
	c.visible = false
	c.stopTimers()
	if c.inst != nil {
		c.inst.focus = ""
	}
}

func (c *Controller) stopTimers() {
	if c.cancelAutoClose != nil {
		c.cancelAutoClose()
		c.cancelAutoClose = nil
	}
	if c.cancelFocus != nil {
		c.cancelFocus()
		c.cancelFocus = nil
	}
}

// View returns the current snapshot.
func (c *Controller) View() View {
	v := View{
		Visible:    c.visible,
		Lang:       string(c.msgs.Lang()),
		Submitting: c.submitting,
	}
	inst := c.inst
	if inst == nil || inst.schema == nil {
		return v
	}

	v.Section = inst.section
	v.FormType = string(inst.schema.Type)
	v.ShowHeader = inst.section == SectionForm || inst.section == SectionLoading
	v.ShowClose = inst.section != SectionLoading
	v.CloseLabel = c.msgs.Get(locale.CloseLabel)
	v.Title = inst.schema.Title
	v.Service = inst.cfg.Service
	if inst.cfg.Price != "" {
		v.Price = c.msgs.Format(locale.PriceTag, inst.cfg.Price)
		v.ShowPrice = true
	}
	v.SubmitText = inst.schema.SubmitText(inst.cfg.Price)

	v.Fields = make([]FieldView, 0, len(inst.fields))
	for _, f := range inst.fields {
		v.Fields = append(v.Fields, f.view())
	}
	consent := inst.consent.view()
	v.Consent = &consent
	v.Focus = inst.focus

	v.LoadingText = c.msgs.Get(locale.LoadingText)
	v.SuccessTitle = c.msgs.Get(locale.SuccessTitle)
	v.SuccessText = c.msgs.Get(locale.SuccessText)
	v.ErrorTitle = c.msgs.Get(locale.FailureTitle)
	v.ErrorText = inst.errorText
	v.RetryLabel = c.msgs.Get(locale.RetryLabel)
	return v
}
