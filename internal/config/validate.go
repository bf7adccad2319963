package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// ConfigError reports an invalid option. It is raised before any input is read.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Run is the fully resolved set of options for one inspection.
type Run struct {
	Config   `mapstructure:",squash"`
	CSVPath  string `mapstructure:"csv_path" validate:"required"`
	Sep      string `mapstructure:"sep" validate:"separator"`
	Limit    int    `mapstructure:"limit" validate:"gte=-1"`
	HTML     bool   `mapstructure:"html"`
	XLSX     bool   `mapstructure:"xlsx"`
	Markdown bool   `mapstructure:"markdown"`
}

// Separator returns the field separator rune; "tab" and `\t` mean a tab.
func (r *Run) Separator() rune {
	s := normalizeSep(r.Sep)
	c, _ := utf8.DecodeRuneInString(s)
	return c
}

func normalizeSep(s string) string {
	switch strings.ToLower(s) {
	case "tab", `\t`:
		return "\t"
	}
	return s
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("separator", isSeparator)
	// report mapstructure key names rather than Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// isSeparator accepts exactly one character that is usable as a CSV delimiter.
func isSeparator(fl validator.FieldLevel) bool {
	s := normalizeSep(fl.Field().String())
	if utf8.RuneCountInString(s) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && r != '"' && r != '\r' && r != '\n'
}

// Validate checks v's struct tags and returns the first violation as a ConfigError.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ConfigError{Field: "options", Reason: err.Error()}
	}
	fe := verrs[0]
	return &ConfigError{Field: fe.Field(), Reason: describe(fe)}
}

func describe(fe validator.FieldError) string {
	param := fe.Param()
	switch fe.Tag() {
	case "required":
		return "value is required"
	case "oneof":
		return fmt.Sprintf("%q is not one of: %s", fmt.Sprint(fe.Value()), strings.ReplaceAll(param, " ", ", "))
	case "gte":
		return fmt.Sprintf("%v must be greater than or equal to %s", fe.Value(), param)
	case "lte":
		return fmt.Sprintf("%v must be less than or equal to %s", fe.Value(), param)
	case "gt":
		return fmt.Sprintf("%v must be greater than %s", fe.Value(), param)
	case "separator":
		return fmt.Sprintf("%q must be a single character", fmt.Sprint(fe.Value()))
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}
