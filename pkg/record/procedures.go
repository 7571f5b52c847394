package record

// Setter describes one emitted fluent setter.
type Setter struct {
	Method    string  `json:"method" yaml:"method"`
	Field     string  `json:"field" yaml:"field"`
	Storage   string  `json:"storage" yaml:"storage"`
	ParamType TypeRef `json:"paramType" yaml:"paramType"`
}

// BuildStep is one field read by the build procedure, in declaration order.
// Mandatory steps abort the build when their slot is absent.
type BuildStep struct {
	Field    string `json:"field" yaml:"field"`
	Storage  string `json:"storage" yaml:"storage"`
	Optional bool   `json:"optional" yaml:"optional"`
	Message  string `json:"message,omitempty" yaml:"message,omitempty"`
}

// BuildProcedure describes the emitted Build method. Receiver, Local, Value,
// and OK name the identifiers used in the generated body.
type BuildProcedure struct {
	Method   string      `json:"method" yaml:"method"`
	Receiver string      `json:"receiver" yaml:"receiver"`
	Local    string      `json:"local" yaml:"local"`
	Value    string      `json:"value" yaml:"value"`
	OK       string      `json:"ok" yaml:"ok"`
	Steps    []BuildStep `json:"steps" yaml:"steps"`
}

// Procedures groups everything the emitter attaches to a builder type.
type Procedures struct {
	Setters []Setter       `json:"setters" yaml:"setters"`
	Build   BuildProcedure `json:"build" yaml:"build"`
}
