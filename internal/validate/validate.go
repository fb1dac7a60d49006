// internal/validate/validate.go
//
// Leadmodal – Validator Set.
//
// Context
//   One pure predicate per field kind.  Every predicate receives the value
//   already trimmed and answers true or false; deciding between "required" and
//   "invalid" messages is the controller's job, not ours.  The rules are
//   expressed as go-playground/validator tag strings so length bounds read the
//   same here as they do in struct tags elsewhere.  Custom tags cover the
//   shapes validator's built-ins do not match exactly (letters-only names, the
//   conventional email shape, http(s) URLs, phone digit counts).
//
// Notes
//   •  Lengths count runes, not bytes.
//   •  Optional kinds (tel, textarea, company) accept the empty string.
//
//------------------------------------------------------------------------------

package validate

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/yanizio/leadmodal/internal/catalog"
)

var (
	lettersRe = regexp.MustCompile(`^[\p{L}\p{Z}\t\n\r\f\v\-'.]+$`)
	emailRe   = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	urlRe     = regexp.MustCompile(`^https?://[a-zA-Z0-9\-]+(\.[a-zA-Z0-9\-]+)+`)
)

// Phone digit bounds after stripping non-digits.
const (
	MinPhoneDigits = 10
	MaxPhoneDigits = 15
)

// rules maps each kind to its validator tag.  Checkbox is handled apart
// because it validates a checked state, not a string.
var rules = map[catalog.Kind]string{
	catalog.KindText:     "min=2,max=50,lead_letters",
	catalog.KindEmail:    "lead_email",
	catalog.KindURL:      "lead_url",
	catalog.KindTel:      "omitempty,lead_phone",
	catalog.KindTextarea: "omitempty,min=10,max=1000",
	catalog.KindCompany:  "omitempty,max=100",
	catalog.KindSelect:   "required",
}

var v = newValidator()

func newValidator() *validator.Validate {
	vd := validator.New()
	custom := map[string]validator.Func{
		"lead_letters": func(fl validator.FieldLevel) bool { return lettersRe.MatchString(fl.Field().String()) },
		"lead_email":   func(fl validator.FieldLevel) bool { return emailRe.MatchString(fl.Field().String()) },
		"lead_url":     func(fl validator.FieldLevel) bool { return urlRe.MatchString(fl.Field().String()) },
		"lead_phone": func(fl validator.FieldLevel) bool {
			n := len(Digits(fl.Field().String()))
			return n >= MinPhoneDigits && n <= MaxPhoneDigits
		},
	}
	for tag, fn := range custom {
		if err := vd.RegisterValidation(tag, fn); err != nil {
			panic("validate: register " + tag + ": " + err.Error())
		}
	}
	return vd
}

// Value reports whether the trimmed value satisfies kind.  Unknown kinds and
// KindCheckbox report false; use Checkbox for the latter.
func Value(kind catalog.Kind, value string) bool {
	tag, ok := rules[kind]
	if !ok {
		return false
	}
	return v.Var(value, tag) == nil
}

// Checkbox reports whether a checkbox satisfies its rule.
func Checkbox(checked bool) bool { return checked }

// Field dispatches to Value or Checkbox by kind.
func Field(kind catalog.Kind, value string, checked bool) bool {
	if kind == catalog.KindCheckbox {
		return Checkbox(checked)
	}
	return Value(kind, value)
}
