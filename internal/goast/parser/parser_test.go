package parser_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-buildergen/internal/goast/parser"
	"github.com/goliatone/go-buildergen/pkg/goast"
	"github.com/goliatone/go-buildergen/pkg/record"
	"github.com/goliatone/go-buildergen/pkg/testsupport"
)

var ignoreExpr = cmpopts.IgnoreFields(record.TypeRef{}, "Expr")

const modelsSource = `package models

import (
	"time"

	opt "github.com/goliatone/go-buildergen/pkg/option"
)

// User is a person.
//
//buildergen:builder
type User struct {
	// Name is required.
	Name  string ` + "`json:\"name\"`" + `
	Age   opt.Option[uint8] // optional age
	First, Last string
	Seen  time.Time
}

type Skipped struct {
	ID int
}

type (
	//buildergen:builder
	Pair[K comparable, V any] struct {
		Key   K
		Value opt.Option[V]
	}

	Other struct{ X int }
)
`

func records(t *testing.T, src string, sel record.Selection, opts ...goast.ParserOption) ([]record.Descriptor, error) {
	t.Helper()
	doc := testsupport.InlineDocument(t, "models/user.go", src)
	return parser.New(goast.NewParserOptions(opts...)).Records(context.Background(), doc, sel)
}

func TestRecordsSelectsDirective(t *testing.T) {
	got, err := records(t, modelsSource, record.Selection{})
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
			Doc:     "User is a person.\n",
			Fields: []record.RawField{
				{Name: "Name", Type: record.MustParseTypeRef("string"), Tag: `json:"name"`, Doc: "Name is required.\n"},
				{Name: "Age", Type: record.MustParseTypeRef("opt.Option[uint8]"), Doc: "optional age\n"},
				{Name: "First", Type: record.MustParseTypeRef("string")},
				{Name: "Last", Type: record.MustParseTypeRef("string")},
				{Name: "Seen", Type: record.MustParseTypeRef("time.Time")},
			},
			Imports:  imports,
			Position: "models/user.go:12:6",
		},
		{
			Name:    "Pair",
			Package: "models",
			TypeParams: []record.TypeParam{
				{Name: "K", Constraint: record.MustParseTypeRef("comparable")},
				{Name: "V", Constraint: record.MustParseTypeRef("any")},
			},
			Fields: []record.RawField{
				{Name: "Key", Type: record.MustParseTypeRef("K")},
				{Name: "Value", Type: record.MustParseTypeRef("opt.Option[V]")},
			},
			Imports:  imports,
			Position: "models/user.go:26:2",
		},
	}
	if diff := cmp.Diff(want, got, ignoreExpr); diff != "" {
		t.Fatalf("descriptors mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordsExplicitSelection(t *testing.T) {
	got, err := records(t, modelsSource, record.Selection{TypeNames: []string{"Skipped"}}, goast.WithoutDocs())
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Skipped" {
		t.Fatalf("expected only Skipped, got %+v", got)
	}

	_, err = records(t, modelsSource, record.Selection{TypeNames: []string{"Missing"}})
	if !errors.Is(err, record.ErrTypeNotFound) {
		t.Fatalf("expected ErrTypeNotFound, got %v", err)
	}
}

func TestRecordsCustomDirective(t *testing.T) {
	src := "package models\n\n//gen:builder\ntype A struct{ X int }\n\n//buildergen:builder\ntype B struct{ Y int }\n"
	got, err := records(t, src, record.Selection{}, goast.WithDirective("gen:builder"))
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(got) != 1 || got[0].Name != "A" {
		t.Fatalf("expected only A, got %+v", got)
	}
}

func TestRecordsRejectsNonRecords(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{
			name: "named basic type",
			src:  "package models\n\n//buildergen:builder\ntype Color int\n",
			want: record.ErrNotRecord,
		},
		{
			name: "interface",
			src:  "package models\n\n//buildergen:builder\ntype Shape interface{ Area() float64 }\n",
			want: record.ErrNotRecord,
		},
		{
			name: "alias",
			src:  "package models\n\n//buildergen:builder\ntype Alias = struct{ X int }\n",
			want: record.ErrNotRecord,
		},
		{
			name: "embedded field",
			src:  "package models\n\ntype Base struct{}\n\n//buildergen:builder\ntype Derived struct {\n\tBase\n\tX int\n}\n",
			want: record.ErrUnnamedField,
		},
		{
			name: "blank field",
			src:  "package models\n\n//buildergen:builder\ntype Padded struct {\n\t_ [4]byte\n\tX int\n}\n",
			want: record.ErrUnnamedField,
		},
		{
			name: "build collides",
			src:  "package models\n\n//buildergen:builder\ntype Job struct {\n\tBuild string\n}\n",
			want: record.ErrReservedName,
		},
		{
			name: "setter case collision",
			src:  "package models\n\n//buildergen:builder\ntype Job struct {\n\tname string\n\tName string\n}\n",
			want: record.ErrReservedName,
		},
		{
			name: "setter shares slot name",
			src:  "package models\n\n//buildergen:builder\ntype Rec struct {\n\t_a int\n}\n",
			want: record.ErrReservedName,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := records(t, tc.src, record.Selection{})
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			var inputErr *record.InputError
			if !errors.As(err, &inputErr) || inputErr.Position == "" {
				t.Fatalf("expected positioned InputError, got %#v", err)
			}
		})
	}
}

func TestRecordsEmptyStruct(t *testing.T) {
	got, err := records(t, "package models\n\n//buildergen:builder\ntype Empty struct{}\n", record.Selection{})
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(got) != 1 || len(got[0].Fields) != 0 {
		t.Fatalf("expected one empty record, got %+v", got)
	}
}

func TestRecordsSyntaxError(t *testing.T) {
	if _, err := records(t, "package models\n\ntype Broken struct {\n", record.Selection{}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestRecordsHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	doc := testsupport.InlineDocument(t, "user.go", modelsSource)
	if _, err := parser.New(goast.ParserOptions{}).Records(ctx, doc, record.Selection{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCandidatesListsStructs(t *testing.T) {
	doc := testsupport.InlineDocument(t, "models/user.go", modelsSource+"\ntype Color int\n\ntype Alias = User\n")
	got, err := parser.New(goast.NewParserOptions()).Candidates(context.Background(), doc)
	if err != nil {
		t.Fatalf("candidates: %v", err)
	}
	if diff := cmp.Diff([]string{"User", "Skipped", "Pair", "Other"}, got); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}
}
