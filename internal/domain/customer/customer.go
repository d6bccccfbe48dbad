package customer

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	// Report field names as the wire names them, so a missing FullName
	// surfaces as "full_name".
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Customer is the delivery recipient. Records come back from the backend on
// a mobile-number lookup or are typed in fresh when the lookup misses; the
// client never mutates a stored record, it only reads and submits one.
type Customer struct {
	FullName             string `json:"full_name" validate:"required"`
	MobileNumber         string `json:"mobile_number" validate:"required"`
	Email                string `json:"email" validate:"required"`
	AptNumber            string `json:"apt_number" validate:"required"`
	Community            string `json:"community" validate:"required"`
	DeliveryInstructions string `json:"delivery_instructions,omitempty"`
}

// ValidationError reports the required customer fields that were left
// empty, named as they appear on the wire.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// Validate checks that every required field is present. It returns a
// *ValidationError listing the missing fields, or nil.
func (c Customer) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validate customer: %w", err)
	}

	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, fe.Field())
	}
	return &ValidationError{Missing: missing}
}
