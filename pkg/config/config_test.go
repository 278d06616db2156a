package config

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func baseTree() map[string]any {
	return map[string]any{
		"modelClass": "Article",
		"name":       "Article",
		"form":       "form.yaml",
		"context":    "base-context",
		"permissions": map[string]any{
			"modelDelete": "articles.delete",
		},
		"update": map[string]any{
			"form":    "update-form.yaml",
			"context": "update-context",
			"title":   "Edit Article",
		},
		"defaultRedirect": "/home",
	}
}

func TestLoad_RequiredKeys(t *testing.T) {
	cases := []struct {
		name    string
		tree    map[string]any
		wantKey string
	}{
		{name: "nil tree", tree: nil, wantKey: "modelClass"},
		{name: "missing modelClass", tree: map[string]any{"form": "x"}, wantKey: "modelClass"},
		{name: "missing form", tree: map[string]any{"modelClass": "Article"}, wantKey: "form"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(tc.tree)
			var missing *MissingKeyError
			if !errors.As(err, &missing) {
				t.Fatalf("expected MissingKeyError, got %v", err)
			}
			if missing.Key != tc.wantKey {
				t.Fatalf("missing key = %q, want %q", missing.Key, tc.wantKey)
			}
		})
	}

	if _, err := Load(baseTree()); err != nil {
		t.Fatalf("load valid tree: %v", err)
	}
}

func TestConfig_Resolve(t *testing.T) {
	cfg, err := Load(baseTree())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := cfg.Resolve("permissions.modelDelete", nil); got != "articles.delete" {
		t.Fatalf("resolve permission = %v", got)
	}
	if got := cfg.Resolve("permissions.modelCreate", "fallback"); got != "fallback" {
		t.Fatalf("absent path should yield caller default, got %v", got)
	}
	if got := cfg.String("defaultRedirect", ""); got != "/home" {
		t.Fatalf("defaultRedirect = %q", got)
	}
}

func TestSnapshot_ContextPrecedence(t *testing.T) {
	cfg, err := Load(baseTree())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	update := cfg.ForContext("update")
	if got := update.Form(); got != "update-form.yaml" {
		t.Fatalf("context form override = %v, want update-form.yaml", got)
	}
	if got := update.String("context", ""); got != "update-context" {
		t.Fatalf("context override = %q", got)
	}
	if got := update.Title("fallback"); got != "Edit Article" {
		t.Fatalf("title = %q", got)
	}

	// Contexts without overrides fall through to the base values.
	create := cfg.ForContext("create")
	if got := create.Form(); got != "form.yaml" {
		t.Fatalf("base form fallback = %v", got)
	}
	if got := create.String("context", ""); got != "base-context" {
		t.Fatalf("base context fallback = %q", got)
	}
	if got := create.Title("Create Record"); got != "Create Record" {
		t.Fatalf("title default = %q", got)
	}
}

func TestSnapshot_Permission(t *testing.T) {
	cfg, err := Load(baseTree())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	snap := cfg.ForContext("update")
	key, ok := snap.Permission("modelDelete")
	if !ok || key != "articles.delete" {
		t.Fatalf("permission = %q, %v", key, ok)
	}
	if _, ok := snap.Permission("modelCreate"); ok {
		t.Fatalf("unconfigured permission should report absent")
	}
}

func TestParse_Formats(t *testing.T) {
	jsonDoc := []byte(`{"modelClass": "Article", "form": {"fields": ["title"]}}`)
	yamlDoc := []byte("modelClass: Article\nform:\n  fields:\n    - title\n")

	jsonCfg, err := Parse(jsonDoc)
	if err != nil {
		t.Fatalf("parse json: %v", err)
	}
	yamlCfg, err := Parse(yamlDoc)
	if err != nil {
		t.Fatalf("parse yaml: %v", err)
	}

	if diff := cmp.Diff(jsonCfg.ModelClass(), yamlCfg.ModelClass()); diff != "" {
		t.Fatalf("model class mismatch (-json +yaml):\n%s", diff)
	}

	if _, err := Parse([]byte("   ")); err == nil {
		t.Fatalf("empty document should fail")
	}
	if _, err := Parse([]byte(`{"form": "x"}`)); err == nil {
		t.Fatalf("document missing modelClass should fail validation")
	}
}
