package buildergen

import (
	"io/fs"
	"strings"
	"testing"
)

func TestRuntimeFSContainsOptionPackage(t *testing.T) {
	fsys := RuntimeFS()
	data, err := fs.ReadFile(fsys, "option.go")
	if err != nil {
		t.Fatalf("expected runtime source to be readable: %v", err)
	}
	if !strings.Contains(string(data), "func (o *Option[T]) Take() Option[T]") {
		t.Fatalf("expected runtime source to define Take")
	}
}

func TestRuntimeFSExcludesTests(t *testing.T) {
	entries, err := fs.ReadDir(RuntimeFS(), ".")
	if err != nil {
		t.Fatalf("read runtime dir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), "_test.go") {
			t.Fatalf("unexpected test file %s", entry.Name())
		}
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 runtime files, got %d", len(entries))
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	for _, name := range []string{"file.tpl", "builder.tpl"} {
		if _, err := fs.ReadFile(EmbeddedTemplates(), name); err != nil {
			t.Fatalf("template %s: %v", name, err)
		}
	}
}
