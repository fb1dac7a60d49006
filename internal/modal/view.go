package modal

import (
	"github.com/yanizio/leadmodal/internal/catalog"
)

// Section is the visible panel of an open modal.
type Section string

const (
	SectionForm    Section = "form"
	SectionLoading Section = "loading"
	SectionSuccess Section = "success"
	SectionError   Section = "error"
)

// FieldState is the decoration of one input.
type FieldState string

const (
	StateNeutral FieldState = ""
	StateValid   FieldState = "valid"
	StateError   FieldState = "error"
)

// requiredMark is appended to the label of required fields.
const requiredMark = " *"

// View is a declarative snapshot of the modal.  Renderers apply it as is;
// nothing in it aliases controller state.
type View struct {
	Visible bool    `json:"visible"`
	Section Section `json:"section,omitempty"`
	Lang    string  `json:"lang"`

	FormType   string `json:"form_type,omitempty"`
	ShowHeader bool   `json:"show_header"`
	ShowClose  bool   `json:"show_close"`
	CloseLabel string `json:"close_label,omitempty"`
	Title      string `json:"title,omitempty"`
	Service    string `json:"service,omitempty"`
	Price      string `json:"price,omitempty"`
	ShowPrice  bool   `json:"show_price"`
	SubmitText string `json:"submit_text,omitempty"`

	Fields  []FieldView `json:"fields,omitempty"`
	Consent *FieldView  `json:"consent,omitempty"`
	Focus   string      `json:"focus,omitempty"`

	Submitting   bool   `json:"submitting"`
	LoadingText  string `json:"loading_text,omitempty"`
	SuccessTitle string `json:"success_title,omitempty"`
	SuccessText  string `json:"success_text,omitempty"`
	ErrorTitle   string `json:"error_title,omitempty"`
	ErrorText    string `json:"error_text,omitempty"`
	RetryLabel   string `json:"retry_label,omitempty"`
}

// FieldView is one rendered input.
type FieldView struct {
	Name        string           `json:"name"`
	Label       string           `json:"label"`
	Kind        catalog.Kind     `json:"kind"`
	InputType   string           `json:"input_type"`
	Placeholder string           `json:"placeholder,omitempty"`
	Required    bool             `json:"required"`
	Options     []catalog.Option `json:"options,omitempty"`
	Value       string           `json:"value,omitempty"`
	Checked     bool             `json:"checked,omitempty"`
	State       FieldState       `json:"state,omitempty"`
	Message     string           `json:"message,omitempty"`
}

// Field returns the rendered field or consent box with the given name.
func (v View) Field(name string) (FieldView, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f, true
		}
	}
	if v.Consent != nil && v.Consent.Name == name {
		return *v.Consent, true
	}
	return FieldView{}, false
}

func (f *field) view() FieldView {
	label := f.spec.Label
	if f.spec.Required {
		label += requiredMark
	}
	fv := FieldView{
		Name:        f.spec.Name,
		Label:       label,
		Kind:        f.spec.Kind,
		InputType:   f.spec.InputType(),
		Placeholder: f.spec.Placeholder,
		Required:    f.spec.Required,
		Value:       f.value,
		Checked:     f.checked,
		State:       f.state,
	}
	if len(f.spec.Options) > 0 {
		fv.Options = append([]catalog.Option(nil), f.spec.Options...)
	}
	if f.state == StateError {
		fv.Message = f.message
	}
	return fv
}
