package modal

import (
	"strings"
	"time"

	"github.com/yanizio/leadmodal/internal/catalog"
	"github.com/yanizio/leadmodal/internal/locale"
	"github.com/yanizio/leadmodal/internal/validate"
)

// instance is the single live modal.  Its content is replaced on every Open.
type instance struct {
	section  Section
	schema   *catalog.Schema
	cfg      Config
	fields   []*field
	byName   map[string]*field
	consent  *field
	honeypot string
	openedAt time.Time

	errorText string
	focus     string
}

type field struct {
	spec    catalog.FieldSpec
	value   string
	checked bool
	state   FieldState
	message string
}

// render replaces the instance content with a fresh form for schema.
func (in *instance) render(schema *catalog.Schema, cfg Config, consent catalog.FieldSpec) {
	in.section = SectionForm
	in.schema = schema
	in.cfg = cfg
	in.honeypot = ""
	in.focus = ""

	in.fields = make([]*field, 0, len(schema.Fields))
	in.byName = make(map[string]*field, len(schema.Fields)+1)
	for _, spec := range schema.Fields {
		f := &field{spec: spec}
		if spec.Name == catalog.FieldPlan && hasOption(spec, cfg.Plan) {
			f.value = cfg.Plan
		}
		in.fields = append(in.fields, f)
		in.byName[spec.Name] = f
	}
	in.consent = &field{spec: consent}
	in.byName[consent.Name] = in.consent
}

// hasOption mirrors a select control: a value outside the options leaves the
// first option selected.
func hasOption(spec catalog.FieldSpec, value string) bool {
	if value == "" {
		return false
	}
	for _, o := range spec.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// ordered yields the schema fields followed by the consent box.
func (in *instance) ordered() []*field {
	out := make([]*field, 0, len(in.fields)+1)
	out = append(out, in.fields...)
	return append(out, in.consent)
}

// editable reports whether the form is on screen.
func (c *Controller) editable() bool {
	return c.inst != nil && c.visible && c.inst.section == SectionForm
}

// Input applies a live edit and returns the caret position to restore.  Phone
// values are regrouped as typed.  An error decoration clears as soon as the
// value becomes valid, or empty on an optional field.  The hidden honeypot
// input is accepted under its own name.
func (c *Controller) Input(name, value string, caret int) int {
	if !c.editable() {
		return caret
	}
	if name == catalog.FieldHoneypot {
		c.inst.honeypot = value
		return caret
	}
	f, ok := c.inst.byName[name]
	if !ok || f.spec.Kind == catalog.KindCheckbox {
		return caret
	}

	if f.spec.Kind == catalog.KindTel {
		value, caret = validate.FormatPhoneInput(value, caret)
	}
	f.value = value

	v := strings.TrimSpace(value)
	switch {
	case v != "" && validate.Field(f.spec.Kind, v, false):
		f.decorate(StateValid, "")
	case v == "" && !f.spec.Required:
		f.decorate(StateNeutral, "")
	}
	return caret
}

// Blur validates the field the user left.
func (c *Controller) Blur(name string) {
	if !c.editable() {
		return
	}
	c.ValidateField(name)
}

// SetChecked toggles a checkbox and validates it immediately.
func (c *Controller) SetChecked(name string, checked bool) {
	if !c.editable() {
		return
	}
	f, ok := c.inst.byName[name]
	if !ok || f.spec.Kind != catalog.KindCheckbox {
		return
	}
	f.checked = checked
	c.ValidateField(name)
}

// ValidateField runs the field's rule and decorates it.  Names that are not
// rendered report false.
func (c *Controller) ValidateField(name string) bool {
	if c.inst == nil {
		return false
	}
	f, ok := c.inst.byName[name]
	if !ok {
		return false
	}
	return c.check(f)
}

// ValidateAll checks every rendered field and the consent box.  On failure
// focus moves to the first failing field.
func (c *Controller) ValidateAll() bool {
	if c.inst == nil || c.inst.schema == nil {
		return false
	}
	first := ""
	for _, f := range c.inst.ordered() {
		if !c.check(f) && first == "" {
			first = f.spec.Name
		}
	}
	if first != "" {
		c.inst.focus = first
		return false
	}
	return true
}

func (c *Controller) check(f *field) bool {
	if f.spec.Kind == catalog.KindCheckbox {
		switch {
		case validate.Field(f.spec.Kind, "", f.checked):
			f.decorate(StateValid, "")
		case f.spec.Required:
			f.decorate(StateError, c.msgs.Get(locale.ErrCheckbox))
			return false
		default:
			f.decorate(StateNeutral, "")
		}
		return true
	}

	v := strings.TrimSpace(f.value)
	switch {
	case v == "" && f.spec.Required:
		f.decorate(StateError, c.msgs.Get(locale.ErrRequired))
		return false
	case v == "":
		f.decorate(StateNeutral, "")
	case !validate.Field(f.spec.Kind, v, false):
		f.decorate(StateError, c.msgs.Get(kindError(f.spec.Kind)))
		return false
	default:
		f.decorate(StateValid, "")
	}
	return true
}

func (f *field) decorate(state FieldState, msg string) {
	f.state = state
	f.message = msg
}

func kindError(k catalog.Kind) locale.MsgID {
	switch k {
	case catalog.KindText:
		return locale.ErrText
	case catalog.KindEmail:
		return locale.ErrEmail
	case catalog.KindURL:
		return locale.ErrURL
	case catalog.KindTel:
		return locale.ErrTel
	case catalog.KindTextarea:
		return locale.ErrTextarea
	case catalog.KindCompany:
		return locale.ErrCompany
	case catalog.KindSelect:
		return locale.ErrSelect
	case catalog.KindCheckbox:
		return locale.ErrCheckbox
	default:
		return locale.ErrInvalid
	}
}
