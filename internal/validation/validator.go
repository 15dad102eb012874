// Package validation wraps go-playground/validator with the service's custom tags.
//
// Besides the built-in tags it registers:
//   - category: value is one of model.Categories
//   - feature: value is one of model.Features
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/gcbaptista/matjibmap/model"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// GetValidator returns the shared validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// Registration only fails on an empty tag or nil func.
		_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
			return model.Category(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("feature", func(fl validator.FieldLevel) bool {
			return model.Feature(fl.Field().String()).Valid()
		})
		validate = v
	})
	return validate
}

// FieldError is a single failed constraint.
type FieldError struct {
	Namespace string
	Tag       string
	Param     string
	Value     interface{}
}

func (e FieldError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s failed '%s=%s' (value %v)", e.Namespace, e.Tag, e.Param, e.Value)
	}
	return fmt.Sprintf("%s failed '%s' (value %v)", e.Namespace, e.Tag, e.Value)
}

// StructError collects every failed constraint of one struct.
type StructError struct {
	Fields []FieldError
}

func (e *StructError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return strings.Join(msgs, "; ")
}

// ValidateStruct validates s and returns a *StructError on constraint failures.
func ValidateStruct(s interface{}) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &StructError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Namespace: fe.Namespace(),
			Tag:       fe.Tag(),
			Param:     fe.Param(),
			Value:     fe.Value(),
		})
	}
	return out
}
