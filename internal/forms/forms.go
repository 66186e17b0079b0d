// Package forms checks operator input before any mutation reaches the API.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"cpmsdash/internal/models"
)

var hexColour = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// ValidationErrors maps a JSON field name to a message for the operator.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	must(v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}))
	must(v.RegisterValidation("brandcolour", func(fl validator.FieldLevel) bool {
		return hexColour.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("iso8601", func(fl validator.FieldLevel) bool {
		return isISO8601(fl.Field().String())
	}))
	must(v.RegisterValidation("connectorstatus", oneOf(models.ConnectorStatuses)))
	must(v.RegisterValidation("connectorerror", oneOf(models.ConnectorErrorCodes)))
	must(v.RegisterValidation("stopreason", oneOf(models.StopReasons)))
	must(v.RegisterValidation("paymentstatus", oneOf(models.PaymentStatuses)))

	return &Validator{v: v}
}

// Struct validates s and returns ValidationErrors keyed by JSON field name.
func (fv *Validator) Struct(s any) error {
	err := fv.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(ValidationErrors, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = message(fe)
		}
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be " + fe.Param() + " or more"
	case "lte":
		return "must be " + fe.Param() + " or less"
	case "url":
		return "must be a valid URL"
	case "email":
		return "must be a valid email address"
	case "brandcolour":
		return "must be a hex colour such as #1A2B3C"
	case "numeric":
		return "must be a decimal number"
	case "datetime":
		return "must be a time of day as HH:MM:SS"
	case "iso8601":
		return "must be an ISO-8601 date and time"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "connectorstatus":
		return "must be one of " + strings.Join(models.ConnectorStatuses, ", ")
	case "connectorerror":
		return "must be a known OCPP error code"
	case "stopreason":
		return "must be one of " + strings.Join(models.StopReasons, ", ")
	case "paymentstatus":
		return "must be one of " + strings.Join(models.PaymentStatuses, ", ")
	}
	return "is invalid"
}

func oneOf(values []string) validator.Func {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return func(fl validator.FieldLevel) bool {
		_, ok := set[fl.Field().String()]
		return ok
	}
}

func isISO8601(s string) bool {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04:05.999999"} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
