package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var setupOnce sync.Once

// setupValidator makes the gin validator report json/form names instead of Go field names.
func setupValidator() {
	setupOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(fieldName)
		}
	})
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

func ValidateStruct(obj interface{}) error {
	setupValidator()
	if err := binding.Validator.ValidateStruct(obj); err != nil {
		return TranslateValidationError(err)
	}
	return nil
}

func BindJSON(c *gin.Context, obj interface{}) *ValidationError {
	setupValidator()
	if err := c.ShouldBindJSON(obj); err != nil {
		return TranslateValidationError(err)
	}
	return nil
}

func BindQuery(c *gin.Context, obj interface{}) *ValidationError {
	setupValidator()
	if err := c.ShouldBindQuery(obj); err != nil {
		return TranslateValidationError(err)
	}
	return nil
}

func TranslateValidationError(err error) *ValidationError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: fieldPath(fe), Message: describe(fe)})
		}
		return NewValidationError(fields...)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return NewValidationError(FieldError{Field: field, Message: "must be of type " + typeErr.Type.String()})
	}

	if errors.Is(err, io.EOF) {
		return NewValidationError(FieldError{Field: "body", Message: "request body is empty"})
	}

	return NewValidationError(FieldError{Field: "body", Message: "malformed request: " + err.Error()})
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min", "max":
		bound := "at least"
		if fe.Tag() == "max" {
			bound = "at most"
		}
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("must be %s %s characters", bound, fe.Param())
		case reflect.Slice, reflect.Array:
			return fmt.Sprintf("must contain %s %s entries", bound, fe.Param())
		}
		return fmt.Sprintf("must be %s %s", bound, fe.Param())
	}
	return "failed " + fe.Tag() + " validation"
}
