package emit

import (
	"strings"

	"github.com/goliatone/go-buildergen/pkg/record"
)

// The view types are the template context. The engine round-trips them
// through JSON, so the tags are the names templates refer to.

type fileView struct {
	Header  []string     `json:"header"`
	Package string       `json:"package"`
	Imports []importView `json:"imports"`
	Bodies  []string     `json:"bodies"`
}

type importView struct {
	Name string `json:"name,omitempty"`
	Path string `json:"path"`
}

type recordView struct {
	Record  declaredView `json:"record"`
	Builder builderView  `json:"builder"`
	Setters []setterView `json:"setters"`
	Build   buildView    `json:"build"`
	Runtime string       `json:"runtime"`
}

type declaredView struct {
	Name    string              `json:"name"`
	Declare bool                `json:"declare"`
	Doc     []string            `json:"doc"`
	Fields  []declaredFieldView `json:"fields"`
}

type declaredFieldView struct {
	Name string   `json:"name"`
	Type string   `json:"type"`
	Tag  string   `json:"tag,omitempty"`
	Doc  []string `json:"doc"`
}

type builderView struct {
	Name        string             `json:"name"`
	Constructor string             `json:"constructor"`
	TypeParams  string             `json:"type_params"`
	TypeArgs    string             `json:"type_args"`
	Fields      []builderFieldView `json:"fields"`
}

type builderFieldView struct {
	Storage   string `json:"storage"`
	SlotType  string `json:"slot_type"`
	InnerType string `json:"inner_type"`
}

type setterView struct {
	Method    string `json:"method"`
	Field     string `json:"field"`
	Storage   string `json:"storage"`
	ParamType string `json:"param_type"`
}

type buildView struct {
	Method   string          `json:"method"`
	Receiver string          `json:"receiver"`
	Local    string          `json:"local"`
	Value    string          `json:"value"`
	OK       string          `json:"ok"`
	Steps    []buildStepView `json:"steps"`
}

type buildStepView struct {
	Field    string `json:"field"`
	Storage  string `json:"storage"`
	Optional bool   `json:"optional"`
}

func newRecordView(unit Unit, procs record.Procedures, runtime string) recordView {
	view := recordView{
		Record: declaredView{
			Name:    unit.Record.Name,
			Declare: unit.Record.Declare,
			Doc:     commentLines(unit.Record.Doc),
			Fields:  make([]declaredFieldView, 0, len(unit.Fields)),
		},
		Builder: builderView{
			Name:        unit.Builder.Name,
			Constructor: unit.Builder.Constructor,
			TypeParams:  unit.Builder.TypeParams,
			TypeArgs:    unit.Builder.TypeArgs,
			Fields:      make([]builderFieldView, 0, len(unit.Builder.Fields)),
		},
		Setters: make([]setterView, 0, len(procs.Setters)),
		Build: buildView{
			Method:   procs.Build.Method,
			Receiver: procs.Build.Receiver,
			Local:    procs.Build.Local,
			Value:    procs.Build.Value,
			OK:       procs.Build.OK,
			Steps:    make([]buildStepView, 0, len(procs.Build.Steps)),
		},
		Runtime: runtime,
	}
	for _, field := range unit.Fields {
		view.Record.Fields = append(view.Record.Fields, declaredFieldView{
			Name: field.Name,
			Type: field.DeclaredType.Text,
			Tag:  field.Tag,
			Doc:  commentLines(field.Doc),
		})
	}
	for _, field := range unit.Builder.Fields {
		view.Builder.Fields = append(view.Builder.Fields, builderFieldView{
			Storage:   field.Storage,
			SlotType:  field.SlotType.Text,
			InnerType: field.InnerType.Text,
		})
	}
	for _, setter := range procs.Setters {
		view.Setters = append(view.Setters, setterView{
			Method:    setter.Method,
			Field:     setter.Field,
			Storage:   setter.Storage,
			ParamType: setter.ParamType.Text,
		})
	}
	for _, step := range procs.Build.Steps {
		view.Build.Steps = append(view.Build.Steps, buildStepView{
			Field:    step.Field,
			Storage:  step.Storage,
			Optional: step.Optional,
		})
	}
	return view
}

// commentLines splits text into trimmed lines suitable for "// " prefixes,
// dropping leading and trailing blank lines.
func commentLines(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, strings.TrimRight(line, " \t"))
	}
	for len(out) > 0 && strings.TrimSpace(out[0]) == "" {
		out = out[1:]
	}
	for len(out) > 0 && strings.TrimSpace(out[len(out)-1]) == "" {
		out = out[:len(out)-1]
	}
	return out
}

func nonNil(lines []string) []string {
	if lines == nil {
		return []string{}
	}
	return lines
}
