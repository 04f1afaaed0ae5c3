package auth_test

import (
	"testing"

	"github.com/impactlens/ilens/pkg/auth"
	"github.com/zalando/go-keyring"
)

func TestTokenSource(t *testing.T) {
	t.Parallel()
	if ts := auth.TokenSource(""); ts != nil {
		t.Errorf("no key: wanted nil, got %T", ts)
	}
	tok, err := auth.TokenSource("static").Token()
	if err != nil {
		t.Fatalf("static token: %v", err)
	}
	if tok.AccessToken != "static" {
		t.Errorf("wanted static, got %q", tok.AccessToken)
	}
}

func TestKeyringManager(t *testing.T) { //nolint:paralleltest
	keyring.MockInit()
	km := auth.NewKeyringManager()
	if err := km.RemoveAPIKey(); err != nil {
		t.Fatalf("remove a missing key: %v", err)
	}
	if err := km.SetAPIKey("k1"); err != nil {
		t.Fatal(err)
	}
	got, err := km.GetAPIKey()
	if err != nil {
		t.Fatal(err)
	}
	if got != "k1" {
		t.Errorf("wanted k1, got %q", got)
	}
	if err := km.RemoveAPIKey(); err != nil {
		t.Fatal(err)
	}
	if _, err := km.GetAPIKey(); err == nil {
		t.Error("expected error after removal, got nil")
	}
}

func TestKeyringEnabled(t *testing.T) {
	t.Parallel()
	if !auth.KeyringEnabled(func(string) string { return "true" }) {
		t.Error("wanted true")
	}
	if auth.KeyringEnabled(func(string) string { return "" }) {
		t.Error("wanted false")
	}
}
