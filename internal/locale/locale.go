// internal/locale/locale.go
//
// Leadmodal – display text lookup.
//
// Context
//   Every user-visible string of the modal (titles, labels, placeholders,
//   option labels, error texts, and section copy) lives in one table keyed by
//   (language, message id).  The language is picked once at startup from an
//   ambient indicator, resolved against the supported set, and frozen into a
//   Messages value.  The catalog and the controller only ever see Messages,
//   so an already open modal never changes language.
//
// Workflow
//   •  Default() returns the built-in table (ru, en, fr).
//   •  Table.LoadOverrides merges operator copy from a YAML file.
//   •  Resolve maps a raw tag ("en-GB", "fr", an Accept-Language list) onto a
//      supported Lang, falling back to ru.
//   •  Table.For freezes one language into Messages.
//
//------------------------------------------------------------------------------

package locale

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Lang is a supported display language.
type Lang string

const (
	Russian Lang = "ru"
	English Lang = "en"
	French  Lang = "fr"
)

// Fallback is used whenever the ambient language is missing or unsupported.
const Fallback = Russian

// Supported lists the languages with a complete built-in table, in matcher
// preference order.
var Supported = []Lang{Russian, English, French}

// MsgID names one entry of the text table.
type MsgID string

// Table maps language → message id → text.
type Table map[Lang]map[MsgID]string

// Default returns a fresh copy of the built-in table so callers may merge
// overrides without touching package state.
func Default() Table {
	out := make(Table, len(builtin))
	for lang, msgs := range builtin {
		cp := make(map[MsgID]string, len(msgs))
		for k, v := range msgs {
			cp[k] = v
		}
		out[lang] = cp
	}
	return out
}

// LoadOverrides merges a YAML document of the form
//
//	en:
//	  form.express.title: "Get in touch"
//
// into t.  Unknown languages are rejected so typos surface at boot.
func (t Table) LoadOverrides(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read locale overrides %s: %w", path, err)
	}

	var doc map[string]map[string]string
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse locale overrides %s: %w", path, err)
	}

	for rawLang, msgs := range doc {
		lang := Lang(strings.ToLower(strings.TrimSpace(rawLang)))
		if !isSupported(lang) {
			return fmt.Errorf("locale overrides %s: unsupported language %q", path, rawLang)
		}
		if t[lang] == nil {
			t[lang] = make(map[MsgID]string, len(msgs))
		}
		for id, text := range msgs {
			t[lang][MsgID(id)] = text
		}
	}
	return nil
}

// For freezes the table for one language.
func (t Table) For(lang Lang) Messages {
	if !isSupported(lang) {
		lang = Fallback
	}
	return Messages{lang: lang, primary: t[lang], fallback: t[Fallback]}
}

// -----------------------------------------------------------------------------
// Language resolution
// -----------------------------------------------------------------------------

var matcher = language.NewMatcher([]language.Tag{
	language.Russian,
	language.English,
	language.French,
})

// Resolve maps a page language attribute or an Accept-Language header onto a
// supported Lang.  Empty, malformed, or unmatched input yields Fallback.
func Resolve(raw string) Lang {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Fallback
	}
	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return Fallback
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Fallback
	}
	return Supported[idx]
}

func isSupported(l Lang) bool {
	for _, s := range Supported {
		if s == l {
			return true
		}
	}
	return false
}

// -----------------------------------------------------------------------------
// Messages
// -----------------------------------------------------------------------------

// Messages is the table frozen to one language.  The zero value returns ids.
type Messages struct {
	lang     Lang
	primary  map[MsgID]string
	fallback map[MsgID]string
}

// Lang reports the frozen language.
func (m Messages) Lang() Lang {
	if m.lang == "" {
		return Fallback
	}
	return m.lang
}

// Get returns the text for id, falling back to the default language and then
// to the id itself.
func (m Messages) Get(id MsgID) string {
	if s, ok := m.primary[id]; ok {
		return s
	}
	if s, ok := m.fallback[id]; ok {
		return s
	}
	return string(id)
}

// Format runs Get(id) through fmt.Sprintf.
func (m Messages) Format(id MsgID, args ...any) string {
	return fmt.Sprintf(m.Get(id), args...)
}
