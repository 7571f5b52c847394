package config

import (
	"errors"
	"fmt"
	"go/token"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
	validateErr  error
)

func validatorInstance() (*validator.Validate, error) {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			return yamlName(field.Tag.Get("yaml"), field.Name)
		})
		validateErr = RegisterCustomValidators(v)
		v.RegisterStructValidation(validateWrapperRuntime, Config{})
		validate = v
	})
	return validate, validateErr
}

// RegisterCustomValidators registers the Go-specific rules: goident for a
// plain identifier and qualident for an optionally package-qualified one.
func RegisterCustomValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("goident", validateGoIdent); err != nil {
		return err
	}
	return v.RegisterValidation("qualident", validateQualIdent)
}

func validateGoIdent(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	return token.IsIdentifier(name) && name != "_"
}

func validateQualIdent(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	qualifier, name, qualified := strings.Cut(value, ".")
	if !qualified {
		return token.IsIdentifier(value)
	}
	return token.IsIdentifier(qualifier) && token.IsIdentifier(name)
}

// validateWrapperRuntime requires the wrapper to be the runtime's Option:
// generated Build methods assign the runtime slot type to optional fields,
// so any other spelling yields code that does not compile.
func validateWrapperRuntime(sl validator.StructLevel) {
	cfg, ok := sl.Current().Interface().(Config)
	if !ok || cfg.Wrapper == "" || cfg.Runtime.Name == "" {
		return
	}
	if want := RuntimeWrapper(cfg.Runtime.Name); cfg.Wrapper != want {
		sl.ReportError(cfg.Wrapper, "wrapper", "Wrapper", "runtimewrapper", want)
	}
}

// RuntimeWrapper is the wrapper spelling matching a runtime package name.
func RuntimeWrapper(runtimeName string) string {
	return runtimeName + ".Option"
}

// Validate checks cfg against its struct tags.
func Validate(cfg Config) error {
	v, err := validatorInstance()
	if err != nil {
		return fmt.Errorf("config: validator: %w", err)
	}
	if err := v.Struct(cfg); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			return fmt.Errorf("config: %w", validationError(invalid))
		}
		return fmt.Errorf("config: validation failed: %w", err)
	}
	return nil
}

// validationError flattens validator output into one readable error naming
// the YAML paths that failed.
func validationError(errs validator.ValidationErrors) error {
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		path := fe.Namespace()
		if i := strings.Index(path, "."); i >= 0 {
			path = path[i+1:]
		}
		msg := fmt.Sprintf("%s fails %q", path, fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("%s fails %q (%s)", path, fe.Tag(), fe.Param())
		}
		msgs = append(msgs, msg)
	}
	return errors.New(strings.Join(msgs, "; "))
}

func yamlName(tag, fallback string) string {
	name, _, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		return fallback
	}
	return name
}
