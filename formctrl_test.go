package formctrl_test

import (
	"context"
	"testing"

	formctrl "github.com/goliatone/go-formctrl"
	"github.com/goliatone/go-formctrl/pkg/testsupport"
)

const articleConfig = `
modelClass: Article
name: Article
form: article-form.yaml
defaultRedirect: /articles
update:
  redirect: /articles/update/:id
`

func TestFacadeLifecycle(t *testing.T) {
	cfg, err := formctrl.ParseConfig([]byte(articleConfig))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}

	store := testsupport.NewMemoryStore()
	widget := testsupport.NewStubWidget("title")
	ctrl, err := formctrl.New(cfg, &testsupport.Host{},
		formctrl.WithStore(store),
		formctrl.WithWidgetFactory(testsupport.NewFactory(widget)),
	)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	ctx := context.Background()
	widget.Data = map[string]any{"title": "Hello"}

	created, err := ctrl.CreateSave(ctx, formctrl.Request{})
	if err != nil {
		t.Fatalf("create save: %v", err)
	}
	if created.Flash != "Article created" {
		t.Fatalf("flash = %q", created.Flash)
	}

	id := created.Record.Identifier()
	updated, err := ctrl.UpdateSave(ctx, formctrl.Request{RecordID: id})
	if err != nil {
		t.Fatalf("update save: %v", err)
	}
	if want := "/articles/update/" + id; updated.Redirect.URL != want {
		t.Fatalf("redirect = %q, want %q", updated.Redirect.URL, want)
	}
}
