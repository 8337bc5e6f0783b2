package httpx_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblioteca/internal/httpx"
)

type ficha struct {
	ID     int    `json:"id" validate:"required,gt=0"`
	Nombre string `json:"nombre" validate:"required,min=3,max=50"`
	Anio   int    `json:"año" validate:"omitempty,pubyear"`
	Email  string `json:"email" validate:"omitempty,correo"`
}

func Test_Check_Passes(t *testing.T) {
	v := httpx.NewValidator()

	errs := v.Check(ficha{ID: 1, Nombre: "Ana María", Anio: 2000, Email: "ana@mail.com"})

	assert.Nil(t, errs)
}

func Test_Check_ReportsJSONFieldNames(t *testing.T) {
	v := httpx.NewValidator()

	errs := v.Check(ficha{ID: 0, Nombre: "ab"})

	require.Len(t, errs, 2)
	assert.Equal(t, "id", errs[0].Campo)
	assert.Equal(t, "required", errs[0].Regla)
	assert.Equal(t, "nombre", errs[1].Campo)
	assert.Equal(t, "min", errs[1].Regla)
	assert.NotEmpty(t, errs[1].Mensaje)
}

func Test_Check_PublicationYearBounds(t *testing.T) {
	v := httpx.NewValidator()
	currentYear := time.Now().Year()

	tests := []struct {
		name string
		year int
		ok   bool
	}{
		{name: "before_printing_press", year: 1450, ok: false},
		{name: "first_valid_year", year: 1451, ok: true},
		{name: "current_year", year: currentYear, ok: true},
		{name: "next_year", year: currentYear + 1, ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			errs := v.Check(ficha{ID: 1, Nombre: "válida", Anio: tc.year})
			if tc.ok {
				assert.Nil(t, errs)
			} else {
				require.Len(t, errs, 1)
				assert.Equal(t, "año", errs[0].Campo)
				assert.Equal(t, "pubyear", errs[0].Regla)
			}
		})
	}
}

func Test_Check_Correo(t *testing.T) {
	v := httpx.NewValidator()

	tests := []struct {
		name  string
		email string
		ok    bool
	}{
		{name: "plain_address", email: "juan@gmail.com", ok: true},
		{name: "missing_at", email: "juan.gmail.com", ok: false},
		{name: "missing_dot_in_domain", email: "juan@gmailcom", ok: false},
		{name: "dot_only_in_local_part", email: "juan.perez@gmailcom", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			errs := v.Check(ficha{ID: 1, Nombre: "válida", Email: tc.email})
			if tc.ok {
				assert.Nil(t, errs)
			} else {
				require.Len(t, errs, 1)
				assert.Equal(t, "correo", errs[0].Regla)
			}
		})
	}
}
