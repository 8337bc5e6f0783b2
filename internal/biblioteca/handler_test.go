package biblioteca_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblioteca/internal/biblioteca"
	"biblioteca/internal/httpx"
)

func newRouter(store *biblioteca.Store) *mux.Router {
	router := mux.NewRouter()
	biblioteca.NewHandler(store, httpx.NewValidator()).Register(router)
	return router
}

func do(t *testing.T, router *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// Full lifecycle: register a book, loan it, conflict on a second loan,
// return it, delete the registry, conflict on the second delete.
func Test_LoanLifecycle(t *testing.T) {
	store := biblioteca.NewStore()
	store.Seed(nil, []biblioteca.Usuario{{ID: 1, Nombre: "Juan", Email: "juan@gmail.com"}}, nil)
	router := newRouter(store)

	rec := do(t, router, http.MethodPost, "/v1/libros/", `{"id":10,"titulo":"Test","autor":"An","año":2000,"paginas":100}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	datos := decode(t, rec)["datos"].(map[string]any)
	assert.Equal(t, "disponible", datos["estado"], "estado defaults to disponible")

	prestamo := `{"id":5,"libro_id":10,"usuario_id":1,"fecha_prestamo":"2026-02-01","fecha_devolucion":"2026-02-15"}`
	rec = do(t, router, http.MethodPost, "/v1/prestamos/", prestamo)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Préstamo registrado", decode(t, rec)["mensaje"])
	assert.Equal(t, "prestado", estadoDeLibro(t, router, 10))

	segundo := `{"id":6,"libro_id":10,"usuario_id":1,"fecha_prestamo":"2026-02-02","fecha_devolucion":"2026-02-16"}`
	rec = do(t, router, http.MethodPost, "/v1/prestamos/", segundo)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "El libro ya está prestado", decode(t, rec)["detail"])

	rec = do(t, router, http.MethodPut, "/v1/prestamos/5/devolver", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Libro devuelto correctamente", decode(t, rec)["mensaje"])
	assert.Equal(t, "disponible", estadoDeLibro(t, router, 10))

	rec = do(t, router, http.MethodPut, "/v1/prestamos/5/devolver", "")
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "El préstamo ya fue devuelto", decode(t, rec)["detail"])

	rec = do(t, router, http.MethodDelete, "/v1/prestamos/5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Préstamo eliminado", decode(t, rec)["mensaje"])

	rec = do(t, router, http.MethodDelete, "/v1/prestamos/5", "")
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "El registro de préstamo no existe", decode(t, rec)["detail"])
}

func estadoDeLibro(t *testing.T, router *mux.Router, id int) string {
	t.Helper()
	rec := do(t, router, http.MethodGet, "/v1/libros/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	for _, raw := range decode(t, rec)["libros"].([]any) {
		l := raw.(map[string]any)
		if l["id"] == float64(id) {
			return l["estado"].(string)
		}
	}
	t.Fatalf("libro %d not listed", id)
	return ""
}

func Test_CrearLibro_Validation(t *testing.T) {
	router := newRouter(biblioteca.NewStore())

	tests := []struct {
		name string
		body string
	}{
		{name: "year_too_early", body: `{"id":1,"titulo":"Incunable","autor":"Anónimo","año":1440,"paginas":100}`},
		{name: "year_in_future", body: `{"id":1,"titulo":"Futuro","autor":"Nadie","año":3000,"paginas":100}`},
		{name: "single_page", body: `{"id":1,"titulo":"Folleto","autor":"Breve","año":2000,"paginas":1}`},
		{name: "short_title", body: `{"id":1,"titulo":"x","autor":"Autor","año":2000,"paginas":100}`},
		{name: "short_author", body: `{"id":1,"titulo":"Libro","autor":"A","año":2000,"paginas":100}`},
		{name: "bad_estado", body: `{"id":1,"titulo":"Libro","autor":"Autor","año":2000,"paginas":100,"estado":"perdido"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/v1/libros/", tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			_, ok := decode(t, rec)["detail"].([]any)
			assert.True(t, ok, "detail should be a list of field errors")
		})
	}
}

func Test_CrearLibro_DuplicateID(t *testing.T) {
	router := newRouter(biblioteca.NewStore())
	libro := `{"id":10,"titulo":"Test","autor":"An","año":2000,"paginas":100}`

	rec := do(t, router, http.MethodPost, "/v1/libros/", libro)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, router, http.MethodPost, "/v1/libros/", libro)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "El id de libro ya existe", decode(t, rec)["detail"])
}

func Test_ListarLibros_DisponiblesOnly(t *testing.T) {
	store := biblioteca.NewStore()
	store.Seed(
		[]biblioteca.Libro{
			{ID: 1, Titulo: "Libre", Autor: "A", Anio: 2000, Paginas: 100, Estado: biblioteca.EstadoDisponible},
			{ID: 2, Titulo: "Prestado", Autor: "B", Anio: 2001, Paginas: 100, Estado: biblioteca.EstadoPrestado},
		},
		nil, nil,
	)
	router := newRouter(store)

	rec := do(t, router, http.MethodGet, "/v1/libros/", "")
	assert.Equal(t, float64(2), decode(t, rec)["total"])

	rec = do(t, router, http.MethodGet, "/v1/libros/?disponibles_only=true", "")
	body := decode(t, rec)
	require.Equal(t, float64(1), body["total"])
	libros := body["libros"].([]any)
	assert.Equal(t, "Libre", libros[0].(map[string]any)["titulo"])
}

func Test_BuscarLibros(t *testing.T) {
	store := biblioteca.NewStore()
	store.Seed(
		[]biblioteca.Libro{
			{ID: 1, Titulo: "El principito", Autor: "Saint-Exupéry", Anio: 1943, Paginas: 96, Estado: biblioteca.EstadoDisponible},
			{ID: 2, Titulo: "1984", Autor: "Orwell", Anio: 1949, Paginas: 328, Estado: biblioteca.EstadoDisponible},
		},
		nil, nil,
	)
	router := newRouter(store)

	rec := do(t, router, http.MethodGet, "/v1/libros/buscar?nombre=PRINCIP", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["total"])

	rec = do(t, router, http.MethodGet, "/v1/libros/buscar?nombre=quijote", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decode(t, rec)["total"])

	rec = do(t, router, http.MethodGet, "/v1/libros/buscar", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_CrearPrestamo_ErrorMapping(t *testing.T) {
	store := biblioteca.NewStore()
	store.Seed(
		[]biblioteca.Libro{{ID: 10, Titulo: "Test", Autor: "A", Anio: 2000, Paginas: 100, Estado: biblioteca.EstadoDisponible}},
		[]biblioteca.Usuario{{ID: 1, Nombre: "Juan", Email: "juan@gmail.com"}},
		[]biblioteca.Prestamo{{ID: 5, LibroID: 10, UsuarioID: 1, FechaPrestamo: "2026-01-01", FechaDevolucion: "2026-01-15", Activo: false}},
	)
	router := newRouter(store)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantDetail string
	}{
		{
			name:       "book_not_found",
			body:       `{"id":8,"libro_id":99,"usuario_id":1,"fecha_prestamo":"2026-02-01","fecha_devolucion":"2026-02-15"}`,
			wantStatus: http.StatusBadRequest,
			wantDetail: "Libro no encontrado",
		},
		{
			name:       "duplicate_loan_id",
			body:       `{"id":5,"libro_id":10,"usuario_id":1,"fecha_prestamo":"2026-02-01","fecha_devolucion":"2026-02-15"}`,
			wantStatus: http.StatusBadRequest,
			wantDetail: "El id de préstamo ya existe",
		},
		{
			name:       "user_not_found",
			body:       `{"id":8,"libro_id":10,"usuario_id":99,"fecha_prestamo":"2026-02-01","fecha_devolucion":"2026-02-15"}`,
			wantStatus: http.StatusBadRequest,
			wantDetail: "Usuario no encontrado",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/v1/prestamos/", tc.body)
			require.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantDetail, decode(t, rec)["detail"])
		})
	}
}

// brokenRepo fails every loan mutation with an error the handler has no
// mapping for.
type brokenRepo struct {
	*biblioteca.Store
}

var errStorage = errors.New("storage offline")

func (brokenRepo) CrearPrestamo(biblioteca.Prestamo) (biblioteca.Prestamo, error) {
	return biblioteca.Prestamo{}, errStorage
}

func (brokenRepo) DevolverPrestamo(int) (biblioteca.Prestamo, error) {
	return biblioteca.Prestamo{}, errStorage
}

func (brokenRepo) EliminarPrestamo(int) (biblioteca.Prestamo, error) {
	return biblioteca.Prestamo{}, errStorage
}

func Test_UnrecognizedStoreErrorIsNotSuccess(t *testing.T) {
	router := mux.NewRouter()
	biblioteca.NewHandler(brokenRepo{Store: biblioteca.NewStore()}, httpx.NewValidator()).Register(router)

	prestamo := `{"id":5,"libro_id":10,"usuario_id":1,"fecha_prestamo":"2026-02-01","fecha_devolucion":"2026-02-15"}`
	rec := do(t, router, http.MethodPost, "/v1/prestamos/", prestamo)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = do(t, router, http.MethodPut, "/v1/prestamos/5/devolver", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = do(t, router, http.MethodDelete, "/v1/prestamos/5", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func Test_LibraryUsers(t *testing.T) {
	router := newRouter(biblioteca.NewStore())

	rec := do(t, router, http.MethodPost, "/v1/usuarios/", `{"id":1,"nombre":"Juan","email":"juan@gmail.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Usuario creado", decode(t, rec)["mensaje"])

	rec = do(t, router, http.MethodPost, "/v1/usuarios/", `{"id":1,"nombre":"Otro","email":"otro@gmail.com"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "El id de usuario ya existe", decode(t, rec)["detail"])

	rec = do(t, router, http.MethodPost, "/v1/usuarios/", `{"id":2,"nombre":"Mal","email":"sin-arroba.com"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/v1/usuarios/", "")
	assert.Equal(t, float64(1), decode(t, rec)["total"])
}

func Test_ListarPrestamos(t *testing.T) {
	store := biblioteca.NewStore()
	var prestamos []biblioteca.Prestamo
	for i := 1; i <= 3; i++ {
		prestamos = append(prestamos, biblioteca.Prestamo{
			ID: i, LibroID: i, UsuarioID: i,
			FechaPrestamo:   fmt.Sprintf("2026-01-0%d", i),
			FechaDevolucion: fmt.Sprintf("2026-01-0%d", i+4),
			Activo:          i%2 == 1,
		})
	}
	store.Seed(nil, nil, prestamos)
	router := newRouter(store)

	rec := do(t, router, http.MethodGet, "/v1/prestamos/", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(3), body["total"])
	assert.Len(t, body["prestamos"].([]any), 3)
}
