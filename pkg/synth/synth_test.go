package synth_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-buildergen/pkg/classify"
	"github.com/goliatone/go-buildergen/pkg/record"
	"github.com/goliatone/go-buildergen/pkg/synth"
)

func descriptor(name string, fields ...[2]string) record.Descriptor {
	desc := record.Descriptor{Name: name, Package: "models"}
	for _, f := range fields {
		desc.Fields = append(desc.Fields, record.RawField{Name: f[0], Type: record.MustParseTypeRef(f[1])})
	}
	return desc
}

func TestBuilderShape(t *testing.T) {
	desc := descriptor("User",
		[2]string{"name", "string"},
		[2]string{"age", "option.Option[uint8]"},
		[2]string{"ID", "int64"},
	)
	fields := classify.New("").Fields(desc)

	got := synth.New(synth.Options{}).Builder(desc, fields)

	want := record.BuilderDescriptor{
		Name:        "UserBuilder",
		Constructor: "NewUserBuilder",
		RecordName:  "User",
		Fields: []record.BuilderField{
			{Name: "name", Storage: "name", Setter: "Name", InnerType: record.TypeRef{Text: "string"}, SlotType: record.TypeRef{Text: "option.Option[string]"}},
			{Name: "age", Storage: "age", Setter: "Age", Optional: true, InnerType: record.TypeRef{Text: "uint8"}, SlotType: record.TypeRef{Text: "option.Option[uint8]"}},
			{Name: "ID", Storage: "id", Setter: "ID", InnerType: record.TypeRef{Text: "int64"}, SlotType: record.TypeRef{Text: "option.Option[int64]"}},
		},
	}
	ignoreExpr := cmpopts.IgnoreFields(record.TypeRef{}, "Expr")
	if diff := cmp.Diff(want, got, ignoreExpr); diff != "" {
		t.Fatalf("builder mismatch (-want +got):\n%s", diff)
	}
	if mandatory := got.Mandatory(); len(mandatory) != 2 || mandatory[0].Name != "name" || mandatory[1].Name != "ID" {
		t.Fatalf("mandatory fields = %+v", mandatory)
	}
}

func TestBuilderNeverDoubleWraps(t *testing.T) {
	desc := descriptor("Nested", [2]string{"value", "option.Option[option.Option[uint8]]"})
	got := synth.New(synth.Options{}).Builder(desc, classify.New("").Fields(desc))

	slot := got.Fields[0]
	if !slot.Optional {
		t.Fatalf("expected outer optional to be detected")
	}
	if slot.InnerType.Text != "option.Option[uint8]" {
		t.Fatalf("inner = %q", slot.InnerType.Text)
	}
	if slot.SlotType.Text != "option.Option[option.Option[uint8]]" {
		t.Fatalf("slot = %q", slot.SlotType.Text)
	}
}

func TestBuilderCustomNames(t *testing.T) {
	desc := descriptor("user", [2]string{"Type", "string"})
	desc.TypeParams = []record.TypeParam{{Name: "T", Constraint: record.MustParseTypeRef("any")}}

	got := synth.New(synth.Options{Suffix: "Draft", ConstructorPrefix: "make", RuntimeName: "opt"}).
		Builder(desc, classify.New("").Fields(desc))

	if got.Name != "userDraft" || got.Constructor != "makeUserDraft" {
		t.Fatalf("names = %q / %q", got.Name, got.Constructor)
	}
	if got.TypeParams != "[T any]" || got.TypeArgs != "[T]" {
		t.Fatalf("type params = %q / %q", got.TypeParams, got.TypeArgs)
	}
	field := got.Fields[0]
	if field.Storage != "typeValue" || field.Setter != "Type" {
		t.Fatalf("field names = %q / %q", field.Storage, field.Setter)
	}
	if field.SlotType.Text != "opt.Option[string]" {
		t.Fatalf("slot = %q", field.SlotType.Text)
	}
}

func TestBuilderEmptyRecord(t *testing.T) {
	got := synth.New(synth.Options{}).Builder(descriptor("Empty"), nil)
	if len(got.Fields) != 0 {
		t.Fatalf("expected no fields, got %d", len(got.Fields))
	}
	if got.Constructor != "NewEmptyBuilder" {
		t.Fatalf("constructor = %q", got.Constructor)
	}
}
