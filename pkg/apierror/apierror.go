// Package apierror renders the error body shared by every service:
// a message, the HTTP status, a timestamp and, for validation failures,
// one entry per rejected field.
package apierror

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Response struct {
	Error     string            `json:"error"`
	Status    int               `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Fields    map[string]string `json:"fields,omitempty"`
}

func New(status int, message string) Response {
	return Response{
		Error:     message,
		Status:    status,
		Timestamp: time.Now().UTC(),
	}
}

// Respond writes the body and aborts the gin chain.
func Respond(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, New(status, message))
}

// RespondValidation writes a 400 listing every failing field. Errors that are
// not validator errors (bad JSON, wrong types) get a generic message.
func RespondValidation(c *gin.Context, err error) {
	resp := New(400, "Validation failed")
	resp.Fields = ValidationFields(err)
	if len(resp.Fields) == 0 {
		resp.Error = "Invalid request body"
	}
	c.AbortWithStatusJSON(400, resp)
}

// RespondFields writes a 400 for checks done outside the validator.
func RespondFields(c *gin.Context, fields map[string]string) {
	resp := New(400, "Validation failed")
	resp.Fields = fields
	c.AbortWithStatusJSON(400, resp)
}

// NewValidator returns a validator reporting fields by their json names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

func ValidationFields(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		fields[fe.Field()] = describe(fe)
	}
	return fields
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be greater than or equal to " + fe.Param()
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be less than or equal to " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "email":
		return "must be a valid email"
	case "uuid":
		return "must be a valid UUID"
	case "e164":
		return "must be a phone number in E.164 format"
	default:
		return "is " + fe.Tag()
	}
}
