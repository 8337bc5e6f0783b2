// Package biblioteca implements the library service: books, members and
// loans, with book availability driven by the loan lifecycle.
package biblioteca

// Book circulation states. Estado is maintained by the store alongside loan
// mutations, never set freely by clients after creation.
const (
	EstadoDisponible = "disponible"
	EstadoPrestado   = "prestado"
)

// Libro is one catalogue record.
type Libro struct {
	ID      int    `json:"id"`
	Titulo  string `json:"titulo"`
	Autor   string `json:"autor"`
	Anio    int    `json:"año"`
	Paginas int    `json:"paginas"`
	Estado  string `json:"estado"`
}

// Usuario is a library member. Unrelated to the directory service's record.
type Usuario struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
}

// Prestamo links a book to the member holding it. Activo false means the
// book came back; the record stays around.
type Prestamo struct {
	ID              int    `json:"id"`
	LibroID         int    `json:"libro_id"`
	UsuarioID       int    `json:"usuario_id"`
	FechaPrestamo   string `json:"fecha_prestamo"`
	FechaDevolucion string `json:"fecha_devolucion"`
	Activo          bool   `json:"activo"`
}

// CrearLibro is the body for registering a book. Estado defaults to
// disponible when absent.
type CrearLibro struct {
	ID      int    `json:"id" validate:"required,gt=0"`
	Titulo  string `json:"titulo" validate:"required,min=2,max=100"`
	Autor   string `json:"autor" validate:"required,min=2,max=100"`
	Anio    int    `json:"año" validate:"required,pubyear"`
	Paginas int    `json:"paginas" validate:"required,gt=1"`
	Estado  string `json:"estado" validate:"omitempty,oneof=disponible prestado"`
}

// CrearUsuario is the body for registering a member.
type CrearUsuario struct {
	ID     int    `json:"id" validate:"required,gt=0"`
	Nombre string `json:"nombre" validate:"required,min=2,max=100"`
	Email  string `json:"email" validate:"required,min=5,max=100,correo"`
}

// CrearPrestamo is the body for registering a loan. Dates travel as
// YYYY-MM-DD strings.
type CrearPrestamo struct {
	ID              int    `json:"id" validate:"required,gt=0"`
	LibroID         int    `json:"libro_id" validate:"required,gt=0"`
	UsuarioID       int    `json:"usuario_id" validate:"required,gt=0"`
	FechaPrestamo   string `json:"fecha_prestamo" validate:"required"`
	FechaDevolucion string `json:"fecha_devolucion" validate:"required"`
}
