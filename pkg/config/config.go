// Package config loads and validates the generator configuration kept in
// .buildergen.yaml files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-buildergen/pkg/option"
	"github.com/goliatone/go-buildergen/pkg/record"
)

// FileName is the configuration file looked up from the working directory
// upwards.
const FileName = ".buildergen.yaml"

// Config is the complete generator configuration.
type Config struct {
	// Wrapper is the spelling that marks a field optional. It must be
	// <runtime.name>.Option, the type builder slots are declared with.
	Wrapper   string  `yaml:"wrapper" validate:"required,qualident"`
	Directive string  `yaml:"directive" validate:"required"`
	Adapter   string  `yaml:"adapter,omitempty" validate:"omitempty,oneof=go descriptor openapi jsonschema"`
	Runtime   Runtime `yaml:"runtime"`
	Builder   Builder `yaml:"builder"`
	Output    Output  `yaml:"output"`
	OpenAPI   OpenAPI `yaml:"openapi"`
	Log       Log     `yaml:"log"`
}

// Runtime locates the package generated code imports Option from.
type Runtime struct {
	Name   string `yaml:"name" validate:"required,goident"`
	Import string `yaml:"import" validate:"required"`
}

// Builder controls generated identifiers.
type Builder struct {
	Suffix            string `yaml:"suffix" validate:"required,goident"`
	ConstructorPrefix string `yaml:"constructorPrefix" validate:"required,goident"`
}

// Output controls generated files.
type Output struct {
	Suffix string   `yaml:"suffix" validate:"required,endswith=.go"`
	Header []string `yaml:"header,omitempty"`
}

// OpenAPI configures the OpenAPI adapter.
type OpenAPI struct {
	Package  string `yaml:"package" validate:"required,goident"`
	Validate bool   `yaml:"validate"`
}

// Log configures the CLI logger.
type Log struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `yaml:"json"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Wrapper:   "option.Option",
		Directive: record.DefaultDirective,
		Runtime: Runtime{
			Name:   "option",
			Import: option.ImportPath,
		},
		Builder: Builder{
			Suffix:            "Builder",
			ConstructorPrefix: "New",
		},
		Output: Output{
			Suffix: "_builder.go",
			Header: []string{"Code generated by buildergen. DO NOT EDIT."},
		},
		OpenAPI: OpenAPI{
			Package:  "models",
			Validate: true,
		},
		Log: Log{Level: "info"},
	}
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("config: decode: %w", err)
		}
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads and parses the file at path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Load reads the file at path when given, otherwise the nearest FileName
// found by Find from dir. Without any file the defaults apply.
func Load(path, dir string) (Config, string, error) {
	if path != "" {
		cfg, err := LoadFile(path)
		return cfg, path, err
	}
	found, err := Find(dir)
	if err != nil {
		return Config{}, "", err
	}
	if found == "" {
		return Default(), "", nil
	}
	cfg, err := LoadFile(found)
	return cfg, found, err
}

// Find walks from dir towards the filesystem root looking for FileName. The
// walk stops at the first directory holding a go.mod, so one module never
// picks up the configuration of an enclosing one.
func Find(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("config: resolve %s: %w", dir, err)
	}
	for {
		candidate := filepath.Join(current, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		if _, err := os.Stat(filepath.Join(current, "go.mod")); err == nil {
			return "", nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", nil
		}
		current = parent
	}
}
