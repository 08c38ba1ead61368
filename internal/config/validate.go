package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/codalotl/retransdiff/internal/segmenter"
)

var validate = NewValidator()

// NewValidator returns a validator that reports fields by their yaml or json name and knows the "langcode" rule (a supported language code).
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"yaml", "json"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return ""
	})
	_ = v.RegisterValidation("langcode", func(fl validator.FieldLevel) bool {
		_, ok := segmenter.LanguageName(fl.Field().String())
		return ok
	})
	return v
}

// Validate checks every field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("config: validation error: %w", err)
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msg := fmt.Sprintf("%s: rule %q", e.Field(), e.Tag())
		if e.Param() != "" {
			msg += fmt.Sprintf(" (expected: %s)", e.Param())
		}
		if s, ok := e.Value().(string); ok && s != "" {
			msg += fmt.Sprintf(", got %q", s)
		}
		if p := c.Provenance(e.Field()); p.Source != "" {
			msg += " from " + p.String()
		}
		msgs = append(msgs, msg)
	}
	return fmt.Errorf("config: invalid configuration:\n  %s", strings.Join(msgs, "\n  "))
}

// ValidateSetting checks a single settings-table value without loading a full config.
func ValidateSetting(key, value string) error {
	if !IsSettingKey(key) {
		return fmt.Errorf("config: %q is not a setting (want one of %s)", key, strings.Join(SettingKeys, ", "))
	}
	c := Default()
	c.set(key, value, Provenance{Source: SourceDB})
	return c.Validate()
}
