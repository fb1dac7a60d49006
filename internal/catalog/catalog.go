// internal/catalog/catalog.go
//
// Leadmodal – Field Catalog.
//
// Context
//   Each modal form is described by a Schema: its form type, a title, an
//   ordered list of FieldSpecs, and a function mapping an optional price to the
//   submit-button caption.  Schemas are built once from the locale table the
//   process selected at startup and never mutated afterwards, so every caller
//   holding a *Schema sees the same field sequence the controller renders.
//
// Workflow
//   •  New(messages) builds the three canonical schemas (express, consult,
//      subscription) with all presentation text already resolved.
//   •  Catalog.Schema looks a schema up by form type.  Unknown keys report
//      false; the controller treats that as a silent no-op.
//
//------------------------------------------------------------------------------

package catalog

import "github.com/yanizio/leadmodal/internal/locale"

// FormType identifies one of the closed set of form kinds.
type FormType string

const (
	Express      FormType = "express"
	Consult      FormType = "consult"
	Subscription FormType = "subscription"
)

// FormTypes lists every supported form type in catalog order.
var FormTypes = []FormType{Express, Consult, Subscription}

// Kind selects the validator applied to a field.
type Kind string

const (
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindURL      Kind = "url"
	KindTel      Kind = "tel"
	KindTextarea Kind = "textarea"
	KindCompany  Kind = "company"
	KindSelect   Kind = "select"
	KindCheckbox Kind = "checkbox"
)

// Well-known field names referenced by the controller and the payload.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldWebsite  = "website_url"
	FieldPhone    = "phone"
	FieldCompany  = "company"
	FieldMessage  = "message"
	FieldPlan     = "selected_plan"
	FieldConsent  = "gdpr_consent"
	FieldHoneypot = "website"
)

// Option is one (value, label) pair of a select field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FieldSpec describes one input of a schema.  Options is set for KindSelect
// only.
type FieldSpec struct {
	Name        string
	Label       string
	Kind        Kind
	Placeholder string
	Required    bool
	Options     []Option
}

// InputType is the HTML control type a renderer should use.  url and company
// render as plain text inputs.
func (f FieldSpec) InputType() string {
	switch f.Kind {
	case KindURL, KindCompany:
		return "text"
	default:
		return string(f.Kind)
	}
}

// Schema is the immutable definition of one form type.
type Schema struct {
	Type       FormType
	Title      string
	Fields     []FieldSpec
	SubmitText func(price string) string
}

// Field returns the FieldSpec with the given name.
func (s *Schema) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Catalog holds the schemas resolved for one display language.
type Catalog struct {
	lang    locale.Lang
	schemas map[FormType]*Schema
}

// New builds the canonical schemas with text from msgs.
func New(msgs locale.Messages) *Catalog {
	c := &Catalog{
		lang:    msgs.Lang(),
		schemas: make(map[FormType]*Schema, len(FormTypes)),
	}
	for _, s := range builtinSchemas(msgs) {
		c.schemas[s.Type] = s
	}
	return c
}

// Lang reports the language the catalog was built for.
func (c *Catalog) Lang() locale.Lang { return c.lang }

// Schema returns the schema for key.  The boolean is false when the key is
// unknown.
func (c *Catalog) Schema(key FormType) (*Schema, bool) {
	s, ok := c.schemas[key]
	return s, ok
}
