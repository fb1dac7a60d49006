package modal

import (
	"context"
	"strings"

	"github.com/yanizio/leadmodal/internal/antispam"
	"github.com/yanizio/leadmodal/internal/catalog"
	"github.com/yanizio/leadmodal/internal/locale"
	"github.com/yanizio/leadmodal/internal/metrics"
	"github.com/yanizio/leadmodal/internal/validate"
	"github.com/yanizio/leadmodal/internal/webhook"
)

// Submit runs the gate, validates every field and, when both pass, starts
// the webhook call.  It reports whether a call was started.  Honeypot and
// fill-time rejections leave no trace; the rate limit shows the error
// section.
func (c *Controller) Submit() bool {
	if c.submitting || !c.editable() {
		return false
	}
	inst := c.inst
	now := c.sched.Now()

	verdict := c.gate.Check(c.ctx, inst.honeypot, inst.openedAt, now)
	if verdict != antispam.VerdictPass {
		metrics.AntispamBlockTotal.WithLabelValues(verdict.String()).Inc()
		if verdict.Silent() {
			c.log.Debugw("submission dropped", "reason", verdict.String())
			return false
		}
		c.log.Infow("submission rate limited", "form_type", inst.schema.Type)
		inst.section = SectionError
		inst.errorText = c.msgs.Get(locale.RateLimitText)
		return false
	}

	if !c.ValidateAll() {
		return false
	}

	payload := c.payload()
	c.submitting = true
	inst.section = SectionLoading
	inst.errorText = c.msgs.Get(locale.FailureText)

	var out webhook.Outcome
	c.sched.Go(
		func(ctx context.Context) { out = c.submitter.Submit(ctx, payload) },
		func() { c.finish(out) },
	)
	return true
}

// finish applies a webhook outcome to whatever state the instance is in.
func (c *Controller) finish(out webhook.Outcome) {
	c.submitting = false
	inst := c.inst

	switch out.Kind {
	case webhook.Accepted:
		c.gate.Record(c.ctx, c.sched.Now())
		inst.section = SectionSuccess
		inst.focus = ""
		if c.cancelAutoClose != nil {
			c.cancelAutoClose()
		}
		c.cancelAutoClose = c.sched.After(c.autoCloseDelay, func() {
			c.cancelAutoClose = nil
			c.hide()
		})
	case webhook.FieldErrors:
		inst.section = SectionForm
		c.applyServerErrors(out.Errors)
	default:
		inst.section = SectionError
		inst.errorText = c.msgs.Get(locale.FailureText)
	}
}

// applyServerErrors decorates rendered fields with server messages.  Names
// that are not rendered are dropped.
func (c *Controller) applyServerErrors(errs map[string]string) {
	inst := c.inst
	applied := 0
	for name, msg := range errs {
		if f, ok := inst.byName[name]; ok {
			f.decorate(StateError, msg)
			applied++
		}
	}
	if applied < len(errs) {
		c.log.Debugw("server errors for unknown fields dropped", "count", len(errs)-applied)
	}

	for _, f := range inst.ordered() {
		if f.state == StateError {
			inst.focus = f.spec.Name
			return
		}
	}
}

// payload serialises the instance: non-empty trimmed values, normalised
// phone, lower-cased email, and the fixed metadata.
func (c *Controller) payload() webhook.Payload {
	inst := c.inst
	p := webhook.Payload{
		"form_type":     string(inst.schema.Type),
		"service_name":  inst.cfg.Service,
		"service_price": inst.cfg.Price,
		"selected_plan": inst.cfg.Plan,
		"source_page":   c.sourcePage,
		"source_button": inst.cfg.ButtonText,
		"gdpr_consent":  true,
		"_timestamp":    inst.openedAt.UnixMilli(),
		"lang":          string(c.msgs.Lang()),
	}
	for _, f := range inst.fields {
		v := strings.TrimSpace(f.value)
		switch f.spec.Kind {
		case catalog.KindTel:
			v = validate.NormalizePhone(v)
		case catalog.KindEmail:
			v = strings.ToLower(v)
		}
		if v != "" {
			p[f.spec.Name] = v
		}
	}
	return p
}
