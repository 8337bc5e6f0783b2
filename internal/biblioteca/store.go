package biblioteca

import (
	"errors"
	"strings"
	"sync"

	"biblioteca/internal/memlist"
)

var (
	// ErrDuplicateID reports a create whose id is already taken.
	ErrDuplicateID = errors.New("id already exists")
	// ErrBookNotFound reports a loan on a book that is not in the catalogue.
	ErrBookNotFound = errors.New("book not found")
	// ErrBookLoaned reports a loan on a book that is already out.
	ErrBookLoaned = errors.New("book already loaned")
	// ErrUserNotFound reports a loan for a member that does not exist.
	ErrUserNotFound = errors.New("library user not found")
	// ErrLoanNotFound reports a return or delete on a missing loan registry.
	ErrLoanNotFound = errors.New("loan registry does not exist")
	// ErrLoanReturned reports a second return of the same loan.
	ErrLoanReturned = errors.New("loan already returned")
	// ErrUserHasLoans blocks deleting a member with active loans.
	ErrUserHasLoans = errors.New("user has active loans")
)

// Repository is the storage surface the handlers and the overdue sweep
// depend on.
type Repository interface {
	Libros(disponiblesOnly bool) []Libro
	BuscarLibros(nombre string) []Libro
	AddLibro(l Libro) error
	Usuarios() []Usuario
	AddUsuario(u Usuario) error
	DeleteUsuario(id int) error
	Prestamos() []Prestamo
	CrearPrestamo(p Prestamo) (Prestamo, error)
	DevolverPrestamo(id int) (Prestamo, error)
	EliminarPrestamo(id int) (Prestamo, error)
}

// Store keeps the three lists in process memory. Loan mutations and the
// matching book state flips happen under the same lock so the two cannot
// drift apart.
type Store struct {
	mu        sync.RWMutex
	libros    []Libro
	usuarios  []Usuario
	prestamos []Prestamo
}

func NewStore() *Store {
	return &Store{}
}

// Seed replaces the current contents with the given fixture rows.
func (s *Store) Seed(libros []Libro, usuarios []Usuario, prestamos []Prestamo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.libros = append([]Libro(nil), libros...)
	s.usuarios = append([]Usuario(nil), usuarios...)
	s.prestamos = append([]Prestamo(nil), prestamos...)
}

// Libros returns the catalogue, optionally only the available books.
func (s *Store) Libros(disponiblesOnly bool) []Libro {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Libro, 0, len(s.libros))
	for _, l := range s.libros {
		if disponiblesOnly && l.Estado != EstadoDisponible {
			continue
		}
		out = append(out, l)
	}
	return out
}

// BuscarLibros returns the books whose title contains nombre,
// case-insensitively.
func (s *Store) BuscarLibros(nombre string) []Libro {
	needle := strings.ToLower(strings.TrimSpace(nombre))
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Libro, 0)
	for _, l := range s.libros {
		if strings.Contains(strings.ToLower(l.Titulo), needle) {
			out = append(out, l)
		}
	}
	return out
}

// AddLibro appends l, failing with ErrDuplicateID if the id is taken.
func (s *Store) AddLibro(l Libro) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if memlist.IndexOf(s.libros, l.ID, libroID) >= 0 {
		return ErrDuplicateID
	}
	s.libros = append(s.libros, l)
	return nil
}

// Usuarios returns a copy of the member list.
func (s *Store) Usuarios() []Usuario {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Usuario, len(s.usuarios))
	copy(out, s.usuarios)
	return out
}

// AddUsuario appends u, failing with ErrDuplicateID if the id is taken.
func (s *Store) AddUsuario(u Usuario) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if memlist.IndexOf(s.usuarios, u.ID, usuarioID) >= 0 {
		return ErrDuplicateID
	}
	s.usuarios = append(s.usuarios, u)
	return nil
}

// DeleteUsuario removes a member, refusing while an active loan still
// references them. Not routed over HTTP today.
func (s *Store) DeleteUsuario(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := memlist.IndexOf(s.usuarios, id, usuarioID)
	if i < 0 {
		return ErrUserNotFound
	}
	for _, p := range s.prestamos {
		if p.Activo && p.UsuarioID == id {
			return ErrUserHasLoans
		}
	}
	s.usuarios = memlist.RemoveAt(s.usuarios, i)
	return nil
}

// Prestamos returns a copy of all loan records.
func (s *Store) Prestamos() []Prestamo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Prestamo, len(s.prestamos))
	copy(out, s.prestamos)
	return out
}

// CrearPrestamo registers a loan and flips the book to prestado. The
// precondition order matters: a missing book makes the later checks
// meaningless.
func (s *Store) CrearPrestamo(p Prestamo) (Prestamo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	li := memlist.IndexOf(s.libros, p.LibroID, libroID)
	if li < 0 {
		return Prestamo{}, ErrBookNotFound
	}
	if s.libros[li].Estado == EstadoPrestado {
		return Prestamo{}, ErrBookLoaned
	}
	if memlist.IndexOf(s.prestamos, p.ID, prestamoID) >= 0 {
		return Prestamo{}, ErrDuplicateID
	}
	if memlist.IndexOf(s.usuarios, p.UsuarioID, usuarioID) < 0 {
		return Prestamo{}, ErrUserNotFound
	}

	p.Activo = true
	s.prestamos = append(s.prestamos, p)
	s.libros[li].Estado = EstadoPrestado
	return p, nil
}

// DevolverPrestamo marks a loan returned and flips the book back to
// disponible.
func (s *Store) DevolverPrestamo(id int) (Prestamo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := memlist.IndexOf(s.prestamos, id, prestamoID)
	if i < 0 {
		return Prestamo{}, ErrLoanNotFound
	}
	if !s.prestamos[i].Activo {
		return Prestamo{}, ErrLoanReturned
	}

	s.prestamos[i].Activo = false
	if li := memlist.IndexOf(s.libros, s.prestamos[i].LibroID, libroID); li >= 0 {
		s.libros[li].Estado = EstadoDisponible
	}
	return s.prestamos[i], nil
}

// EliminarPrestamo removes a loan record outright. An active loan frees its
// book; an already-returned one leaves the book alone.
func (s *Store) EliminarPrestamo(id int) (Prestamo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := memlist.IndexOf(s.prestamos, id, prestamoID)
	if i < 0 {
		return Prestamo{}, ErrLoanNotFound
	}

	removed := s.prestamos[i]
	s.prestamos = memlist.RemoveAt(s.prestamos, i)
	if removed.Activo {
		if li := memlist.IndexOf(s.libros, removed.LibroID, libroID); li >= 0 {
			s.libros[li].Estado = EstadoDisponible
		}
	}
	return removed, nil
}

func libroID(l Libro) int       { return l.ID }
func usuarioID(u Usuario) int   { return u.ID }
func prestamoID(p Prestamo) int { return p.ID }
