package dto

import (
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError agrupa los mensajes de todos los campos inválidos de un
// payload, concatenados con coma en el orden de declaración del schema.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validate aplica las reglas `validate:` del struct y devuelve un
// *ValidationError con el mensaje combinado, o nil si todo es válido.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return &ValidationError{Message: strings.Join(msgs, ", ")}
}

// fieldMessage traduce una falla de validación a un mensaje legible.
func fieldMessage(fe validator.FieldError) string {
	label := humanize(fe.Field())
	switch fe.Tag() {
	case "required", "min":
		return label + " is required"
	case "email":
		return "Invalid email format"
	case "gt":
		return label + " must be a positive number"
	case "oneof":
		return "Invalid " + strings.ToLower(label)
	case "max":
		return label + " is too long"
	default:
		return label + " is invalid"
	}
}

// humanize convierte un nombre de campo CamelCase en texto: "FullName" -> "Full name".
func humanize(field string) string {
	var b strings.Builder
	for i, r := range field {
		if i == 0 {
			b.WriteRune(r)
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
