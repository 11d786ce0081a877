package data

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// single validator instance; struct tag parsing is cached internally
var validate = validator.New(validator.WithRequiredStructEnabled())

func validateStruct(item any) error {
	err := validate.Struct(item)
	if err == nil {
		return nil
	}
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return NewError(ErrorKindValidation, "invalid request payload")
	}
	var messages []string
	for _, e := range validationErrs {
		switch e.ActualTag() {
		case "required":
			messages = append(messages,
				fmt.Sprintf("field %s is required", jsonFieldName(e.Field())))
		case "min", "gte":
			messages = append(messages,
				fmt.Sprintf("field %s must be at least %s", jsonFieldName(e.Field()), e.Param()))
		default:
			messages = append(messages,
				fmt.Sprintf("field %s is invalid", jsonFieldName(e.Field())))
		}
	}
	return NewError(ErrorKindValidation, strings.Join(messages, ", "))
}

// validator reports Go field names; the api speaks the frontend's
// camelCase, so translate before the message leaves the boundary
func jsonFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
