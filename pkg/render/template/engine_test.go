package template_test

import (
	"embed"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/goliatone/go-buildergen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-buildergen/pkg/testsupport"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

var registerShout sync.Once

func TestEngineRendersFromFS(t *testing.T) {
	engine := newEngine(t)
	assertGolden(t, "hello.golden", func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})
}

func TestEngineGlobals(t *testing.T) {
	engine := newEngine(t, gotemplate.WithGlobals(map[string]any{"runtime": "github.com/acme/option"}))
	assertGolden(t, "use-global.golden", func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-global.tpl", nil, w)
	})
}

func TestEngineGoFilters(t *testing.T) {
	registerShout.Do(func() {
		if err := gotemplate.RegisterFilter("shout", func(in string) string {
			return strings.ToUpper(in) + "!"
		}); err != nil {
			t.Fatalf("register filter: %v", err)
		}
	})
	if err := gotemplate.RegisterFilter("shout", strings.ToUpper); err == nil {
		t.Fatalf("expected duplicate filter to be rejected")
	}

	engine := newEngine(t)
	assertGolden(t, "use-filter.golden", func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-filter", map[string]any{
			"doc":   "Counts rows.\n\nSafe for reuse.\n",
			"name":  "URLPath",
			"table": "user_ids",
		}, w)
	})
}

func TestEngineLeavesGoSourceUnescaped(t *testing.T) {
	engine := newEngine(t)
	type view struct {
		Msg  string `json:"msg"`
		Kind string `json:"kind"`
	}
	assertGolden(t, "go-source.golden", func(w io.Writer) (string, error) {
		return engine.RenderTemplate("go-source", view{Msg: `say "hi"`, Kind: "chan<- int"}, w)
	})
}

func TestEngineErrors(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without a template source")
	}
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected error for a missing template")
	}
	if _, err := engine.RenderTemplate("hello", []string{"not", "an", "object"}); err == nil {
		t.Fatalf("expected error for non-object data")
	}
	if err := gotemplate.RegisterFilter("", strings.ToUpper); err == nil {
		t.Fatalf("expected error for an unnamed filter")
	}
}

func newEngine(t *testing.T, opts ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(templatesFS)}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func assertGolden(t *testing.T, golden string, render func(io.Writer) (string, error)) {
	t.Helper()

	result, written := testsupport.CaptureTemplateOutput(t, render)
	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", golden))
	if result != want {
		t.Fatalf("render mismatch\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("writer mismatch\nwant: %q\n got: %q", want, written)
	}
}
