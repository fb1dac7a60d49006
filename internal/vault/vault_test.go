package vault

import (
	"context"
	"errors"
	"testing"
)

func TestParseRef(t *testing.T) {
	path, key, err := ParseRef("vault:secret/leadmodal#webhook_url")
	if err != nil || path != "secret/leadmodal" || key != "webhook_url" {
		t.Fatalf("ParseRef = (%q, %q, %v)", path, key, err)
	}

	for _, bad := range []string{
		"secret/leadmodal#k",
		"vault:",
		"vault:secret/leadmodal",
		"vault:secret/leadmodal#",
		"vault:#k",
		"vault:nomount#k",
	} {
		if _, _, err := ParseRef(bad); !errors.Is(err, ErrBadRef) {
			t.Errorf("ParseRef(%q) err = %v, want ErrBadRef", bad, err)
		}
	}
}

func TestResolve_PlainValuePassesThrough(t *testing.T) {
	// A zero client is enough: plain values never reach the API.
	var c Client
	got, err := c.Resolve(context.Background(), "https://hooks.example/abc")
	if err != nil || got != "https://hooks.example/abc" {
		t.Fatalf("Resolve = (%q, %v)", got, err)
	}
	if _, err := c.Resolve(context.Background(), "vault:broken"); !errors.Is(err, ErrBadRef) {
		t.Fatalf("malformed ref err = %v", err)
	}
}
