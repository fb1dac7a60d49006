package locale

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolve(t *testing.T) {
	cases := map[string]Lang{
		"":                        Russian,
		"ru":                      Russian,
		"en":                      English,
		"en-GB":                   English,
		"fr-CA":                   French,
		"fr-FR,fr;q=0.9,en;q=0.8": French,
		"ja":                      Russian,
		"%%%":                     Russian,
	}
	for in, want := range cases {
		if got := Resolve(in); got != want {
			t.Errorf("Resolve(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuiltinTablesComplete(t *testing.T) {
	ref := builtin[Fallback]
	for _, lang := range Supported {
		for id := range ref {
			if _, ok := builtin[lang][id]; !ok {
				t.Errorf("%s: missing %s", lang, id)
			}
		}
	}
}

func TestMessagesFallback(t *testing.T) {
	tbl := Default()
	delete(tbl[English], SuccessTitle)

	en := tbl.For(English)
	if got := en.Get(SuccessTitle); got != builtin[Russian][SuccessTitle] {
		t.Fatalf("missing en text should fall back to ru, got %q", got)
	}
	if got := en.Get("no.such.id"); got != "no.such.id" {
		t.Fatalf("unknown id should echo, got %q", got)
	}
	if got := tbl.For("de").Lang(); got != Russian {
		t.Fatalf("unsupported lang froze as %q", got)
	}
	if builtin[English][SuccessTitle] == "" {
		t.Fatal("Default must not alias the built-in table")
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "copy.yaml")
	doc := "en:\n  form.express.title: \"Get in touch\"\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	tbl := Default()
	if err := tbl.LoadOverrides(path); err != nil {
		t.Fatalf("LoadOverrides: %v", err)
	}
	if got := tbl.For(English).Get(TitleExpress); got != "Get in touch" {
		t.Fatalf("override not applied, got %q", got)
	}

	bad := filepath.Join(dir, "bad.yaml")
	_ = os.WriteFile(bad, []byte("de:\n  x: y\n"), 0o644)
	if err := tbl.LoadOverrides(bad); err == nil {
		t.Fatal("expected error for unsupported language")
	}
}
