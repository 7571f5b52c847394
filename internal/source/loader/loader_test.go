package loader_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-buildergen/internal/source/loader"
	"github.com/goliatone/go-buildergen/pkg/record"
)

const userSource = "package models\n\ntype User struct{ Name string }\n"

func TestLoaderReadsFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "user.go")
	if err := os.WriteFile(path, []byte(userSource), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := loader.New(record.NewLoaderOptions()).Load(context.Background(), record.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != userSource {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
	if doc.Ext() != ".go" {
		t.Fatalf("unexpected extension %q", doc.Ext())
	}
}

func TestLoaderReadsFS(t *testing.T) {
	files := fstest.MapFS{"records/user.yaml": {Data: []byte("package: models\n")}}
	l := loader.New(record.NewLoaderOptions(record.WithFileSystem(files)))

	doc, err := l.Load(context.Background(), record.SourceFromFS("records/user.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Location() != "records/user.yaml" {
		t.Fatalf("unexpected location %q", doc.Location())
	}
}

func TestLoaderFSRequiresFileSystem(t *testing.T) {
	_, err := loader.New(record.NewLoaderOptions()).Load(context.Background(), record.SourceFromFS("user.yaml"))
	if err == nil || !strings.Contains(err.Error(), "filesystem is not configured") {
		t.Fatalf("expected filesystem error, got %v", err)
	}
}

func TestLoaderHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.yaml" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("openapi: 3.0.3\n"))
	}))
	defer server.Close()

	disabled := loader.New(record.NewLoaderOptions())
	if _, err := disabled.Load(context.Background(), record.SourceFromURL(server.URL+"/api.yaml")); err == nil {
		t.Fatalf("expected http to be disabled by default")
	}

	l := loader.New(record.NewLoaderOptions(record.WithHTTPClient(server.Client())))
	doc, err := l.Load(context.Background(), record.SourceFromURL(server.URL+"/api.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Ext() != ".yaml" {
		t.Fatalf("unexpected extension %q", doc.Ext())
	}

	if _, err := l.Load(context.Background(), record.SourceFromURL(server.URL+"/missing.yaml")); err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestLoaderHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files := fstest.MapFS{"user.go": {Data: []byte(userSource)}}
	l := loader.New(record.NewLoaderOptions(record.WithFileSystem(files)))
	if _, err := l.Load(ctx, record.SourceFromFS("user.go")); err == nil {
		t.Fatalf("expected cancellation error")
	}
}
