package httpx

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// FieldError is one failed rule on one request field. The list of these is
// what validation failures return in the 400 body.
type FieldError struct {
	Campo   string `json:"campo"`
	Regla   string `json:"regla"`
	Mensaje string `json:"mensaje"`
}

// Validator wraps go-playground/validator with the custom rules the request
// models use. Field names in errors come from the json tags.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds the shared validator. The publication-year upper bound
// is the calendar year at the time of the call; it does not move while the
// process runs.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	maxYear := int64(time.Now().Year())
	_ = v.RegisterValidation("pubyear", func(fl validator.FieldLevel) bool {
		year := fl.Field().Int()
		return year > 1450 && year <= maxYear
	})

	// Deliberately loose: the address needs an "@" and a "." somewhere in
	// the domain part, nothing more.
	_ = v.RegisterValidation("correo", func(fl validator.FieldLevel) bool {
		addr := fl.Field().String()
		at := strings.Index(addr, "@")
		if at < 0 {
			return false
		}
		return strings.Contains(addr[at+1:], ".")
	})

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Check validates v and returns one FieldError per failed rule, or nil when
// the value passes.
func (vd *Validator) Check(v any) []FieldError {
	err := vd.validate.Struct(v)
	if err == nil {
		return nil
	}

	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return []FieldError{{Regla: "struct", Mensaje: err.Error()}}
	}

	out := make([]FieldError, 0, len(invalid))
	for _, fe := range invalid {
		out = append(out, FieldError{
			Campo:   fe.Field(),
			Regla:   fe.Tag(),
			Mensaje: mensajeFor(fe),
		})
	}
	return out
}

func mensajeFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "min":
		return "es demasiado corto (mínimo " + fe.Param() + ")"
	case "max":
		return "es demasiado largo (máximo " + fe.Param() + ")"
	case "gt":
		return "debe ser mayor que " + fe.Param()
	case "gte":
		return "debe ser al menos " + fe.Param()
	case "lte":
		return "debe ser como máximo " + fe.Param()
	case "oneof":
		return "valor no permitido"
	case "pubyear":
		return "año de publicación fuera de rango"
	case "correo":
		return "correo electrónico no válido"
	default:
		return "no es válido"
	}
}

// WriteFieldErrors reports a schema failure as 400 {"detail": [...]}.
func WriteFieldErrors(w http.ResponseWriter, errs []FieldError) {
	WriteJSON(w, http.StatusBadRequest, map[string]any{"detail": errs})
}
