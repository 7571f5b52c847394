package descriptor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-buildergen/pkg/descriptor"
	"github.com/goliatone/go-buildergen/pkg/record"
	"github.com/goliatone/go-buildergen/pkg/testsupport"
)

var ignoreExpr = cmpopts.IgnoreFields(record.TypeRef{}, "Expr")

func TestRecordsFromFixture(t *testing.T) {
	doc := testsupport.LoadDocument(t, "testdata/models.yaml")

	got, err := descriptor.NewAdapter().Records(context.Background(), doc, record.Selection{})
	if err != nil {
		t.Fatalf("records: %v", err)
	}

	imports := []record.Import{
		{Path: "time"},
		{Name: "opt", Path: "github.com/goliatone/go-buildergen/pkg/option"},
	}
	want := []record.Descriptor{
		{
			Name:    "User",
			Package: "models",
			Fields: []record.RawField{
				{Name: "name", Type: record.MustParseTypeRef("string")},
				{Name: "age", Type: record.MustParseTypeRef("opt.Option[uint8]")},
				{Name: "tags", Type: record.MustParseTypeRef("[]string")},
				{Name: "seen", Type: record.MustParseTypeRef("time.Time"), Tag: `json:"seen"`, Doc: "Seen is the last login."},
			},
			Imports:  imports,
			Declare:  true,
			Position: "testdata/models.yaml:6:3",
		},
		{
			Name:    "Pair",
			Package: "models",
			Doc:     "Pair couples a key with an optional value.\n",
			TypeParams: []record.TypeParam{
				{Name: "K", Constraint: record.MustParseTypeRef("comparable")},
				{Name: "V", Constraint: record.MustParseTypeRef("any")},
			},
			Fields: []record.RawField{
				{Name: "key", Type: record.MustParseTypeRef("K")},
				{Name: "value", Type: record.MustParseTypeRef("opt.Option[V]")},
			},
			Imports:  imports,
			Declare:  true,
			Position: "testdata/models.yaml:15:3",
		},
		{
			Name:     "Empty",
			Package:  "models",
			Imports:  imports,
			Declare:  true,
			Position: "testdata/models.yaml:18:3",
		},
	}
	if diff := cmp.Diff(want, got, ignoreExpr); diff != "" {
		t.Fatalf("descriptors mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordsSelection(t *testing.T) {
	doc := testsupport.LoadDocument(t, "testdata/models.yaml")
	a := descriptor.NewAdapter()

	got, err := a.Records(context.Background(), doc, record.Selection{TypeNames: []string{"Pair"}})
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Pair" {
		t.Fatalf("expected only Pair, got %+v", got)
	}

	_, err = a.Records(context.Background(), doc, record.Selection{TypeNames: []string{"Order"}})
	if !errors.Is(err, record.ErrTypeNotFound) {
		t.Fatalf("expected ErrTypeNotFound, got %v", err)
	}
}

func TestRecordsRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{
			name: "tuple style",
			src:  "package: models\nrecords:\n  Point:\n    - int\n    - int\n",
			want: record.ErrNotRecord,
		},
		{
			name: "scalar record",
			src:  "package: models\nrecords:\n  Color: int\n",
			want: record.ErrNotRecord,
		},
		{
			name: "unnamed field",
			src:  "package: models\nrecords:\n  User:\n    \"\": string\n",
			want: record.ErrUnnamedField,
		},
		{
			name: "case collision",
			src:  "package: models\nrecords:\n  User:\n    name: string\n    Name: string\n",
			want: record.ErrReservedName,
		},
		{
			name: "invalid type",
			src:  "package: models\nrecords:\n  User:\n    name: \"map[string\"\n",
			want: record.ErrInvalidType,
		},
		{
			name: "reserved setter",
			src:  "package: models\nrecords:\n  Job:\n    build: string\n",
			want: record.ErrReservedName,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := testsupport.InlineDocument(t, "models.yaml", tc.src)
			_, err := descriptor.NewAdapter().Records(context.Background(), doc, record.Selection{})
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRecordsRequiresPackage(t *testing.T) {
	doc := testsupport.InlineDocument(t, "models.yaml", "records:\n  User:\n    name: string\n")
	if _, err := descriptor.NewAdapter().Records(context.Background(), doc, record.Selection{}); err == nil {
		t.Fatalf("expected missing package error")
	}
}

func TestDetect(t *testing.T) {
	a := descriptor.NewAdapter()
	if !a.Detect(nil, []byte("package: models\nrecords:\n  User: {}\n")) {
		t.Fatalf("expected descriptor to be detected")
	}
	if a.Detect(nil, []byte("openapi: 3.0.3\nrecords:\n")) {
		t.Fatalf("openapi documents must not be detected")
	}
	if a.Detect(nil, []byte("package models\n")) {
		t.Fatalf("go source must not be detected")
	}
}
