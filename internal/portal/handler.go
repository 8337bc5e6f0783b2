package portal

import (
	"embed"
	"html/template"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templatesFS embed.FS

type renderer struct {
	templates *template.Template
}

func (r *renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// App assembles the echo application around the directory client.
func App(client *Client) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Renderer = &renderer{
		templates: template.Must(template.ParseFS(templatesFS, "templates/*.html")),
	}

	h := &handler{client: client}
	e.GET("/", h.inicio)
	e.POST("/crear", h.crear)
	e.POST("/actualizar/:id", h.actualizar)
	e.POST("/parcial/:id", h.parcial)
	e.POST("/eliminar/:id", h.eliminar)
	return e
}

type handler struct {
	client *Client
}

func (h *handler) inicio(c echo.Context) error {
	data := map[string]any{}
	usuarios, err := h.client.Listar()
	if err != nil {
		data["Error"] = "No se pudo consultar el directorio de usuarios"
	} else if c.QueryParam("error") != "" {
		data["Error"] = "La última operación falló en el directorio"
	}
	data["Usuarios"] = usuarios
	return c.Render(http.StatusOK, "index.html", data)
}

func (h *handler) crear(c echo.Context) error {
	id, _ := strconv.Atoi(c.FormValue("id"))
	edad, _ := strconv.Atoi(c.FormValue("edad"))
	err := h.client.Crear(Usuario{ID: id, Nombre: c.FormValue("nombre"), Edad: edad})
	return redirect(c, err)
}

func (h *handler) actualizar(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	edad, _ := strconv.Atoi(c.FormValue("edad"))
	err := h.client.Actualizar(id, Usuario{ID: id, Nombre: c.FormValue("nombre"), Edad: edad})
	return redirect(c, err)
}

// parcial includes a field only when its form input is non-empty; omitting
// unset fields here is what makes the backend's PATCH a true partial update.
func (h *handler) parcial(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))

	campos := map[string]any{}
	if nombre := c.FormValue("nombre"); nombre != "" {
		campos["nombre"] = nombre
	}
	if edad := c.FormValue("edad"); edad != "" {
		if n, err := strconv.Atoi(edad); err == nil {
			campos["edad"] = n
		}
	}

	return redirect(c, h.client.ActualizarParcial(id, campos))
}

func (h *handler) eliminar(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	return redirect(c, h.client.Eliminar(id))
}

// redirect sends the browser back to the listing. A failed backend call
// flags the redirect so the page can show a banner instead of pretending
// the call worked.
func redirect(c echo.Context, err error) error {
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/?error=1")
	}
	return c.Redirect(http.StatusSeeOther, "/")
}
