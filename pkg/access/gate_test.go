package access

import (
	"errors"
	"testing"

	"github.com/goliatone/go-formctrl/pkg/config"
)

func gateConfig(t *testing.T, permissions map[string]any) *config.Config {
	t.Helper()
	cfg, err := config.Load(map[string]any{
		"modelClass":  "Article",
		"form":        "form.yaml",
		"permissions": permissions,
	})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

func TestGate_UnconfiguredActionAllowed(t *testing.T) {
	gate := NewGate(gateConfig(t, map[string]any{}), AuthorizerFunc(func(string) bool {
		t.Fatalf("authorizer must not be consulted for unconfigured actions")
		return false
	}))

	if err := gate.Allow(ActionCreate); err != nil {
		t.Fatalf("unconfigured action should be allowed: %v", err)
	}
}

func TestGate_DelegatesConfiguredPermission(t *testing.T) {
	var asked []string
	gate := NewGate(
		gateConfig(t, map[string]any{"modelDelete": "articles.delete"}),
		AuthorizerFunc(func(permission string) bool {
			asked = append(asked, permission)
			return permission == "articles.delete"
		}),
	)

	if err := gate.Allow(ActionDelete); err != nil {
		t.Fatalf("granted permission should allow: %v", err)
	}
	if len(asked) != 1 || asked[0] != "articles.delete" {
		t.Fatalf("authorizer asked = %v", asked)
	}
}

func TestGate_Denial(t *testing.T) {
	gate := NewGate(
		gateConfig(t, map[string]any{"modelDelete": "articles.delete"}),
		AuthorizerFunc(func(string) bool { return false }),
	)

	err := gate.Allow(ActionDelete)
	var denied *DeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected DeniedError, got %v", err)
	}
	if denied.Action != ActionDelete || denied.Permission != "articles.delete" {
		t.Fatalf("denied = %+v", denied)
	}
}

func TestGate_NilAuthorizerDeniesConfiguredKeys(t *testing.T) {
	gate := NewGate(gateConfig(t, map[string]any{"modelUpdate": "articles.update"}), nil)

	if err := gate.Allow(ActionUpdate); err == nil {
		t.Fatalf("configured permission without authorizer should deny")
	}
	if err := gate.Allow(ActionPreview); err != nil {
		t.Fatalf("unconfigured action should still allow: %v", err)
	}
}
