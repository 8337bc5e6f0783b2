package biblioteca

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"biblioteca/internal/httpx"
)

// Handler exposes books, members and loans under /v1/.
type Handler struct {
	repo     Repository
	validate *httpx.Validator
}

func NewHandler(repo Repository, v *httpx.Validator) *Handler {
	return &Handler{repo: repo, validate: v}
}

// Register mounts the routes on router.
func (h *Handler) Register(router *mux.Router) {
	router.HandleFunc("/v1/libros/", h.crearLibro).Methods(http.MethodPost)
	router.HandleFunc("/v1/libros/", h.listarLibros).Methods(http.MethodGet)
	router.HandleFunc("/v1/libros/buscar", h.buscarLibros).Methods(http.MethodGet)

	router.HandleFunc("/v1/usuarios/", h.listarUsuarios).Methods(http.MethodGet)
	router.HandleFunc("/v1/usuarios/", h.crearUsuario).Methods(http.MethodPost)

	router.HandleFunc("/v1/prestamos/", h.listarPrestamos).Methods(http.MethodGet)
	router.HandleFunc("/v1/prestamos/", h.crearPrestamo).Methods(http.MethodPost)
	router.HandleFunc("/v1/prestamos/{id:[0-9]+}/devolver", h.devolverPrestamo).Methods(http.MethodPut)
	router.HandleFunc("/v1/prestamos/{id:[0-9]+}", h.eliminarPrestamo).Methods(http.MethodDelete)
}

func (h *Handler) crearLibro(w http.ResponseWriter, r *http.Request) {
	var body CrearLibro
	if err := httpx.ReadJSON(r, &body); err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "Cuerpo JSON no válido")
		return
	}
	if errs := h.validate.Check(body); errs != nil {
		httpx.WriteFieldErrors(w, errs)
		return
	}
	if body.Estado == "" {
		body.Estado = EstadoDisponible
	}

	nuevo := Libro{ID: body.ID, Titulo: body.Titulo, Autor: body.Autor, Anio: body.Anio, Paginas: body.Paginas, Estado: body.Estado}
	if err := h.repo.AddLibro(nuevo); err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "El id de libro ya existe")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{"mensaje": "Libro creado", "datos": nuevo})
}

func (h *Handler) listarLibros(w http.ResponseWriter, r *http.Request) {
	disponibles, _ := strconv.ParseBool(r.URL.Query().Get("disponibles_only"))
	libros := h.repo.Libros(disponibles)
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"total": len(libros), "libros": libros})
}

func (h *Handler) buscarLibros(w http.ResponseWriter, r *http.Request) {
	nombre := r.URL.Query().Get("nombre")
	if nombre == "" {
		httpx.WriteFieldErrors(w, []httpx.FieldError{{Campo: "nombre", Regla: "min", Mensaje: "es demasiado corto (mínimo 1)"}})
		return
	}
	libros := h.repo.BuscarLibros(nombre)
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"total": len(libros), "libros": libros})
}

func (h *Handler) listarUsuarios(w http.ResponseWriter, _ *http.Request) {
	usuarios := h.repo.Usuarios()
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"total": len(usuarios), "usuarios": usuarios})
}

func (h *Handler) crearUsuario(w http.ResponseWriter, r *http.Request) {
	var body CrearUsuario
	if err := httpx.ReadJSON(r, &body); err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "Cuerpo JSON no válido")
		return
	}
	if errs := h.validate.Check(body); errs != nil {
		httpx.WriteFieldErrors(w, errs)
		return
	}

	nuevo := Usuario{ID: body.ID, Nombre: body.Nombre, Email: body.Email}
	if err := h.repo.AddUsuario(nuevo); err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "El id de usuario ya existe")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{"mensaje": "Usuario creado", "datos": nuevo})
}

func (h *Handler) listarPrestamos(w http.ResponseWriter, _ *http.Request) {
	prestamos := h.repo.Prestamos()
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"total": len(prestamos), "prestamos": prestamos})
}

func (h *Handler) crearPrestamo(w http.ResponseWriter, r *http.Request) {
	var body CrearPrestamo
	if err := httpx.ReadJSON(r, &body); err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "Cuerpo JSON no válido")
		return
	}
	if errs := h.validate.Check(body); errs != nil {
		httpx.WriteFieldErrors(w, errs)
		return
	}

	nuevo, err := h.repo.CrearPrestamo(Prestamo{
		ID:              body.ID,
		LibroID:         body.LibroID,
		UsuarioID:       body.UsuarioID,
		FechaPrestamo:   body.FechaPrestamo,
		FechaDevolucion: body.FechaDevolucion,
	})
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusCreated, map[string]any{"mensaje": "Préstamo registrado", "datos": nuevo})
	case errors.Is(err, ErrBookNotFound):
		httpx.WriteDetail(w, http.StatusBadRequest, "Libro no encontrado")
	case errors.Is(err, ErrBookLoaned):
		httpx.WriteDetail(w, http.StatusConflict, "El libro ya está prestado")
	case errors.Is(err, ErrDuplicateID):
		httpx.WriteDetail(w, http.StatusBadRequest, "El id de préstamo ya existe")
	case errors.Is(err, ErrUserNotFound):
		httpx.WriteDetail(w, http.StatusBadRequest, "Usuario no encontrado")
	default:
		httpx.WriteDetail(w, http.StatusInternalServerError, "Error interno del servidor")
	}
}

func (h *Handler) devolverPrestamo(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	_, err := h.repo.DevolverPrestamo(id)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"mensaje": "Libro devuelto correctamente", "prestamo_id": id})
	case errors.Is(err, ErrLoanNotFound):
		httpx.WriteDetail(w, http.StatusConflict, "El registro de préstamo no existe")
	case errors.Is(err, ErrLoanReturned):
		httpx.WriteDetail(w, http.StatusConflict, "El préstamo ya fue devuelto")
	default:
		httpx.WriteDetail(w, http.StatusInternalServerError, "Error interno del servidor")
	}
}

func (h *Handler) eliminarPrestamo(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	_, err := h.repo.EliminarPrestamo(id)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"mensaje": "Préstamo eliminado", "prestamo_id": id})
	case errors.Is(err, ErrLoanNotFound):
		httpx.WriteDetail(w, http.StatusConflict, "El registro de préstamo no existe")
	default:
		httpx.WriteDetail(w, http.StatusInternalServerError, "Error interno del servidor")
	}
}

func pathID(r *http.Request) int {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return id
}
