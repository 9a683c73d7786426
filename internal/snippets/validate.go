package snippets

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/snipstash/snipstash/internal/api"
	"github.com/snipstash/snipstash/internal/apperrors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return false
		}
		return strings.TrimSpace(field.String()) != ""
	})
}

// validateInput checks a create/update payload before any request is
// built. Failures surface as KindValidation with a user-facing message.
func validateInput(in api.SnippetInput) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrs) == 0 {
		return apperrors.Wrap(apperrors.KindValidation, "invalid snippet input", err)
	}
	return apperrors.New(apperrors.KindValidation, messageFor(fieldErrs[0]))
}

func messageFor(fe validator.FieldError) string {
	switch fe.StructField() {
	case "Title":
		return "title is required"
	case "Visibility":
		return "visibility must be public or private"
	case "Files":
		return "at least one file is required"
	case "Filename":
		return "every file needs a filename"
	}
	return "invalid snippet input"
}
