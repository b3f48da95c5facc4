package services

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"portalempleos/internal/errcodes"
)

const msgInvalidData = "Los datos ingresados no son válidos"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("weburl", isWebURL); err != nil {
		panic(err)
	}
	return v
}

// isWebURL accepts absolute http and https URLs only
func isWebURL(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

type fieldLabel struct {
	subject  string
	required string
}

var fieldLabels = map[string]fieldLabel{
	"name":       {"El nombre", "El nombre es obligatorio"},
	"last_name":  {"El apellido", "El apellido es obligatorio"},
	"email":      {"El correo electrónico", "El correo electrónico es obligatorio"},
	"password":   {"La contraseña", "La contraseña es obligatoria"},
	"resume_url": {"La URL del currículum", "La URL del currículum es obligatoria"},
}

func validationMessage(fe validator.FieldError) string {
	label, known := fieldLabels[fe.Field()]

	switch fe.Tag() {
	case "required":
		if known {
			return label.required
		}
	case "max":
		if known {
			return fmt.Sprintf("%s no puede exceder %s caracteres", label.subject, fe.Param())
		}
	case "email":
		return "Ingresá un correo electrónico válido"
	case "weburl":
		return "La URL del currículum debe comenzar con http:// o https://"
	case "eqfield":
		return "Las contraseñas no coinciden"
	case "min":
		if fe.Field() == "skill_list" {
			return "Seleccioná al menos una habilidad"
		}
	case "gt":
		if fe.Field() == "company_id" {
			return "Seleccioná una empresa"
		}
	}
	return msgInvalidData
}

// validateInput checks v's struct tags and reports the first violation
func validateInput(endpoint errcodes.Endpoint, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &Error{
			Kind:     KindValidation,
			Endpoint: endpoint,
			Field:    fieldErrs[0].Field(),
			Message:  validationMessage(fieldErrs[0]),
			Err:      err,
		}
	}
	return &Error{Kind: KindValidation, Endpoint: endpoint, Message: msgInvalidData, Err: err}
}
