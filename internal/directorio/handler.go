package directorio

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"biblioteca/internal/httpx"
)

// Handler exposes the directory CRUD endpoints under /v1/usuarios/.
type Handler struct {
	repo     Repository
	validate *httpx.Validator
}

func NewHandler(repo Repository, v *httpx.Validator) *Handler {
	return &Handler{repo: repo, validate: v}
}

// Register mounts the routes on router.
func (h *Handler) Register(router *mux.Router) {
	router.HandleFunc("/v1/usuarios/", h.list).Methods(http.MethodGet)
	router.HandleFunc("/v1/usuarios/", h.create).Methods(http.MethodPost)
	router.HandleFunc("/v1/usuarios/{id:[0-9]+}", h.replace).Methods(http.MethodPut)
	router.HandleFunc("/v1/usuarios/{id:[0-9]+}", h.patch).Methods(http.MethodPatch)
	router.HandleFunc("/v1/usuarios/{id:[0-9]+}", h.delete).Methods(http.MethodDelete)
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	usuarios := h.repo.List()
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"total": len(usuarios), "usuarios": usuarios})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var body CrearUsuario
	if err := httpx.ReadJSON(r, &body); err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "Cuerpo JSON no válido")
		return
	}
	if errs := h.validate.Check(body); errs != nil {
		httpx.WriteFieldErrors(w, errs)
		return
	}

	nuevo := Usuario{ID: body.ID, Nombre: body.Nombre, Edad: body.Edad}
	if err := h.repo.Create(nuevo); err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "El id ya existe")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{"mensaje": "Usuario Creado", "datos": nuevo})
}

func (h *Handler) replace(w http.ResponseWriter, r *http.Request) {
	var body CrearUsuario
	if err := httpx.ReadJSON(r, &body); err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "Cuerpo JSON no válido")
		return
	}
	if errs := h.validate.Check(body); errs != nil {
		httpx.WriteFieldErrors(w, errs)
		return
	}

	updated, err := h.repo.Replace(pathID(r), Usuario{Nombre: body.Nombre, Edad: body.Edad})
	if errors.Is(err, ErrNotFound) {
		httpx.WriteDetail(w, http.StatusNotFound, "Usuario no encontrado")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"mensaje": "Usuario actualizado", "datos": updated})
}

func (h *Handler) patch(w http.ResponseWriter, r *http.Request) {
	var body PatchUsuario
	if err := httpx.ReadJSON(r, &body); err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "Cuerpo JSON no válido")
		return
	}
	if errs := h.validate.Check(body); errs != nil {
		httpx.WriteFieldErrors(w, errs)
		return
	}

	updated, err := h.repo.Patch(pathID(r), body)
	if errors.Is(err, ErrNotFound) {
		httpx.WriteDetail(w, http.StatusNotFound, "Usuario no encontrado")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"mensaje": "Usuario actualizado parcialmente", "usuario": updated})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	removed, err := h.repo.Delete(pathID(r))
	if errors.Is(err, ErrNotFound) {
		httpx.WriteDetail(w, http.StatusNotFound, "Usuario no encontrado")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"mensaje": "Usuario eliminado", "usuario": removed})
}

// pathID reads the {id} route variable; the route pattern guarantees digits.
func pathID(r *http.Request) int {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return id
}
