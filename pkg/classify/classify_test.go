package classify_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-buildergen/pkg/classify"
	"github.com/goliatone/go-buildergen/pkg/record"
)

func TestClassifierField(t *testing.T) {
	c := classify.New("")

	cases := []struct {
		declared string
		optional bool
		inner    string
	}{
		{declared: "string", inner: "string"},
		{declared: "option.Option[uint8]", optional: true, inner: "uint8"},
		{declared: "option.Option[option.Option[uint8]]", optional: true, inner: "option.Option[uint8]"},
		{declared: "option.Option[[]map[string]int]", optional: true, inner: "[]map[string]int"},
		{declared: "(option.Option[int])", optional: true, inner: "int"},
		{declared: "option.Option", inner: "option.Option"},
		{declared: "option.Option[K, V]", inner: "option.Option[K, V]"},
		{declared: "Option[int]", inner: "Option[int]"},
		{declared: "opt.Option[int]", inner: "opt.Option[int]"},
		{declared: "option.Maybe[int]", inner: "option.Maybe[int]"},
		{declared: "*option.Option[int]", inner: "*option.Option[int]"},
		{declared: "[]option.Option[int]", inner: "[]option.Option[int]"},
		{declared: "MaybeInt", inner: "MaybeInt"},
	}

	for _, tc := range cases {
		t.Run(tc.declared, func(t *testing.T) {
			raw := record.RawField{Name: "f", Type: record.MustParseTypeRef(tc.declared)}
			got := c.Field(raw)
			if got.Optional != tc.optional {
				t.Fatalf("optional = %v, want %v", got.Optional, tc.optional)
			}
			if got.InnerType.Text != tc.inner {
				t.Fatalf("inner = %q, want %q", got.InnerType.Text, tc.inner)
			}
			if got.DeclaredType.Text != raw.Type.Text {
				t.Fatalf("declared type rewritten to %q", got.DeclaredType.Text)
			}
		})
	}
}

func TestClassifierBareWrapper(t *testing.T) {
	c := classify.New("Option")
	if c.Wrapper() != "Option" {
		t.Fatalf("wrapper = %q", c.Wrapper())
	}

	optional := c.Field(record.RawField{Name: "a", Type: record.MustParseTypeRef("Option[int]")})
	if !optional.Optional || optional.InnerType.Text != "int" {
		t.Fatalf("bare wrapper not recognised: %+v", optional)
	}

	qualified := c.Field(record.RawField{Name: "b", Type: record.MustParseTypeRef("option.Option[int]")})
	if qualified.Optional {
		t.Fatalf("qualified spelling must not match a bare wrapper")
	}
}

func TestClassifierFieldsKeepOrder(t *testing.T) {
	desc := record.Descriptor{
		Name: "User",
		Fields: []record.RawField{
			{Name: "name", Type: record.MustParseTypeRef("string"), Tag: `json:"name"`},
			{Name: "age", Type: record.MustParseTypeRef("option.Option[uint8]"), Doc: "Age in years."},
		},
	}

	got := classify.New(classify.DefaultWrapper).Fields(desc)

	type summary struct {
		Name     string
		Optional bool
		Inner    string
		Tag      string
		Doc      string
	}
	var gotSummary []summary
	for _, f := range got {
		gotSummary = append(gotSummary, summary{f.Name, f.Optional, f.InnerType.Text, f.Tag, f.Doc})
	}
	want := []summary{
		{Name: "name", Inner: "string", Tag: `json:"name"`},
		{Name: "age", Optional: true, Inner: "uint8", Doc: "Age in years."},
	}
	if diff := cmp.Diff(want, gotSummary); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}
