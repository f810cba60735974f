package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with the tags configuration uses.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the custom tags registered:
//
//	parentdir  the directory that would hold the file must exist
func NewValidator() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("parentdir", validateParentDir)

	return &Validator{validate: v}
}

// Validate checks i against its struct tags.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return describe(err)
	}

	return nil
}

func validateParentDir(fl validator.FieldLevel) bool {
	info, err := os.Stat(filepath.Dir(fl.Field().String()))

	return err == nil && info.IsDir()
}

// describe lists every failed field on its own line.
func describe(err error) error {
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return err
	}
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		switch f.Tag() {
		case "parentdir":
			lines = append(lines, fmt.Sprintf("%s: directory of %q does not exist", f.Namespace(), f.Value()))
		default:
			lines = append(lines, fmt.Sprintf("%s: failed %s (value %v)", f.Namespace(), f.Tag(), f.Value()))
		}
	}

	return fmt.Errorf("validation failed:\n  %s", strings.Join(lines, "\n  "))
}

// ValidateConfig validates the entire configuration.
func ValidateConfig(cfg *Config) error {
	return NewValidator().Validate(cfg)
}
