package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError marks a request that failed struct validation; the error
// middleware maps it to a 400.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s", strings.Join(e.Fields, ", "))
}

func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fields []string
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, ve := range verrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", ve.Field(), ve.Tag()))
		}
		return &ValidationError{Fields: fields}
	}
	return err
}
