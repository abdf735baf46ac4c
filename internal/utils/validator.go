package utils

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/study-planner-api/internal/constants"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags on gin's validator engine.
// It is safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("gin binding validator is not go-playground/validator")
		}
		if err := v.RegisterValidation("isodate", validateISODate); err != nil {
			panic(fmt.Sprintf("register isodate validation: %v", err))
		}
	})
}

// validateISODate accepts YYYY-MM-DD. Empty strings are left to required/omitempty.
func validateISODate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.Parse(constants.DateLayout, value)
	return err == nil
}

// ValidationMessage turns binding errors into a readable sentence.
func ValidationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Invalid request body"
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := toSnakeCase(e.Field())
		switch e.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", field))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s", field, e.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s", field, e.Param()))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email address", field))
		case "isodate":
			messages = append(messages, fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field))
		default:
			messages = append(messages, fmt.Sprintf("%s failed %s validation", field, e.Tag()))
		}
	}
	return strings.Join(messages, "; ")
}

func toSnakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

var standalone = validator.New()

// IsEmail reports whether value is a syntactically valid email address.
func IsEmail(value string) bool {
	return standalone.Var(value, "required,email") == nil
}
