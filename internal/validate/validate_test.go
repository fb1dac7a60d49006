package validate

import (
	"strings"
	"testing"

	"github.com/yanizio/leadmodal/internal/catalog"
)

func TestValue_Boundaries(t *testing.T) {
	cases := []struct {
		kind  catalog.Kind
		value string
		want  bool
	}{
		// text: [2,50] letters, spaces, hyphen, apostrophe, period.
		{catalog.KindText, "A", false},
		{catalog.KindText, "Al", true},
		{catalog.KindText, strings.Repeat("a", 50), true},
		{catalog.KindText, strings.Repeat("a", 51), false},
		{catalog.KindText, "Анна-Мария O'Neil Jr.", true},
		{catalog.KindText, "Ana2", false},
		{catalog.KindText, "Анна\u00a0Мария", true},
		{catalog.KindText, "Ann\u2003Lee", true},
		{catalog.KindText, "", false},

		// textarea: empty or [10,1000].
		{catalog.KindTextarea, "", true},
		{catalog.KindTextarea, strings.Repeat("x", 9), false},
		{catalog.KindTextarea, strings.Repeat("x", 10), true},
		{catalog.KindTextarea, strings.Repeat("x", 1000), true},
		{catalog.KindTextarea, strings.Repeat("x", 1001), false},
		{catalog.KindTextarea, strings.Repeat("ж", 10), true},

		// tel: empty or [10,15] digits.
		{catalog.KindTel, "", true},
		{catalog.KindTel, strings.Repeat("1", 9), false},
		{catalog.KindTel, strings.Repeat("1", 10), true},
		{catalog.KindTel, "+3 361 23 45 67 8", true},
		{catalog.KindTel, strings.Repeat("1", 15), true},
		{catalog.KindTel, strings.Repeat("1", 16), false},

		// company: empty or ≤ 100.
		{catalog.KindCompany, "", true},
		{catalog.KindCompany, strings.Repeat("c", 100), true},
		{catalog.KindCompany, strings.Repeat("c", 101), false},

		// email.
		{catalog.KindEmail, "a@b.com", true},
		{catalog.KindEmail, "first.last+tag@sub.example.org", true},
		{catalog.KindEmail, "a@b", false},
		{catalog.KindEmail, "a@b.c", false},
		{catalog.KindEmail, "", false},

		// url.
		{catalog.KindURL, "https://b.com", true},
		{catalog.KindURL, "http://shop.example.co.uk/path?q=1", true},
		{catalog.KindURL, "https://localhost", false},
		{catalog.KindURL, "ftp://b.com", false},
		{catalog.KindURL, "b.com", false},
		{catalog.KindURL, "", false},

		// select.
		{catalog.KindSelect, "Basic", true},
		{catalog.KindSelect, "", false},

		// checkbox needs Checkbox.
		{catalog.KindCheckbox, "on", false},
	}

	for _, c := range cases {
		if got := Value(c.kind, c.value); got != c.want {
			t.Errorf("Value(%s, %q) = %v, want %v", c.kind, c.value, got, c.want)
		}
	}
}

func TestField_Checkbox(t *testing.T) {
	if !Field(catalog.KindCheckbox, "", true) {
		t.Error("checked checkbox must pass")
	}
	if Field(catalog.KindCheckbox, "", false) {
		t.Error("unchecked checkbox must fail")
	}
	if !Field(catalog.KindEmail, "a@b.com", false) {
		t.Error("Field must dispatch string kinds to Value")
	}
}
