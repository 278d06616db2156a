package messages

import (
	"testing"

	"github.com/goliatone/go-formctrl/pkg/config"
)

func mustConfig(t *testing.T, tree map[string]any) *config.Config {
	t.Helper()
	tree["modelClass"] = "Article"
	if _, ok := tree["form"]; !ok {
		tree["form"] = "form.yaml"
	}
	cfg, err := config.Load(tree)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

func TestResolve_PrecedenceChain(t *testing.T) {
	cfg := mustConfig(t, map[string]any{
		"name": "Article",
		"update": map[string]any{
			"customMessages": map[string]any{
				"flashUpdate": "context custom",
			},
			"flashDelete": "deprecated context local",
		},
		"customMessages": map[string]any{
			"flashUpdate": "global custom",
			"flashDelete": "global custom delete",
			"greeting":    "hello {{ name }}",
		},
	})
	r := New(cfg)

	cases := []struct {
		name    string
		context string
		message string
		def     string
		want    string
	}{
		{name: "context custom wins", context: "update", message: FlashUpdate, want: "context custom"},
		{name: "deprecated context local beats global", context: "update", message: FlashDelete, want: "deprecated context local"},
		{name: "global custom without context", context: "create", message: FlashUpdate, want: "global custom"},
		{name: "host defined key", context: "", message: "greeting", want: "hello Article"},
		{name: "caller default", context: "", message: "missing", def: "fallback", want: "fallback"},
		{name: "builtin default", context: "", message: FlashCreate, want: "Article created"},
		{name: "literal placeholder", context: "", message: "noSuchMessage", want: "noSuchMessage"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := r.Resolve(tc.context, tc.message, tc.def, nil)
			if got != tc.want {
				t.Fatalf("resolve = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestResolve_FlashSaveAlias(t *testing.T) {
	cfg := mustConfig(t, map[string]any{
		"name": "Article",
		"customMessages": map[string]any{
			"flashSave": "{{ name }} saved",
		},
	})
	r := New(cfg)

	for _, name := range []string{FlashCreate, FlashUpdate} {
		if got := r.Resolve("create", name, "", nil); got != "Article saved" {
			t.Fatalf("%s should fall back to flashSave, got %q", name, got)
		}
	}

	// flashDelete never aliases to flashSave.
	if got := r.Resolve("update", FlashDelete, "", nil); got != "Article deleted" {
		t.Fatalf("flashDelete = %q, want builtin default", got)
	}
}

func TestResolve_AliasPrefersDirectConfiguration(t *testing.T) {
	cfg := mustConfig(t, map[string]any{
		"name": "Article",
		"customMessages": map[string]any{
			"flashSave":   "saved",
			"flashCreate": "created directly",
		},
	})
	r := New(cfg)

	if got := r.Resolve("create", FlashCreate, "", nil); got != "created directly" {
		t.Fatalf("direct configuration should win over alias, got %q", got)
	}
}

func TestResolve_Interpolation(t *testing.T) {
	cfg := mustConfig(t, map[string]any{"name": "Article"})
	r := New(cfg)

	got := r.Resolve("update", NotFound, "", map[string]any{"id": 5})
	want := "Article with an ID of 5 could not be found"
	if got != want {
		t.Fatalf("notFound = %q, want %q", got, want)
	}
}

func TestResolve_SanitisesStringVars(t *testing.T) {
	cfg := mustConfig(t, map[string]any{})
	r := New(cfg, WithDisplayName("Article"))

	got := r.Resolve("", "custom", "deleted {{ title }}", map[string]any{
		"title": `<script>alert(1)</script>Hello`,
	})
	if got != "deleted Hello" {
		t.Fatalf("sanitised interpolation = %q", got)
	}
}

func TestDisplayNameFallbacks(t *testing.T) {
	withName := New(mustConfig(t, map[string]any{"name": "Post"}))
	if got := withName.Resolve("", FlashCreate, "", nil); got != "Post created" {
		t.Fatalf("configured name = %q", got)
	}

	// Without a name label the model class stands in.
	classOnly := New(mustConfig(t, map[string]any{}))
	if got := classOnly.Resolve("", FlashCreate, "", nil); got != "Article created" {
		t.Fatalf("model class fallback = %q", got)
	}

	bare := New(nil)
	if got := bare.Resolve("", FlashCreate, "", nil); got != "record created" {
		t.Fatalf("bare fallback = %q", got)
	}
}
