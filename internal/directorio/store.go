package directorio

import (
	"errors"
	"sync"

	"biblioteca/internal/memlist"
)

var (
	// ErrDuplicateID reports a create with an id already in the list.
	ErrDuplicateID = errors.New("id already exists")
	// ErrNotFound reports an update or delete on an id that is not there.
	ErrNotFound = errors.New("user not found")
)

// Repository is the storage surface the handlers depend on. A persistent
// implementation can replace Store without touching the handlers.
type Repository interface {
	List() []Usuario
	Create(u Usuario) error
	Replace(id int, u Usuario) (Usuario, error)
	Patch(id int, p PatchUsuario) (Usuario, error)
	Delete(id int) (Usuario, error)
}

// Store keeps the records in process memory. The mutex guards the slice;
// Go serves requests concurrently even though cross-request semantics stay
// last-write-wins.
type Store struct {
	mu       sync.RWMutex
	usuarios []Usuario
}

// NewStore returns a store holding the given seed records.
func NewStore(seed ...Usuario) *Store {
	return &Store{usuarios: append([]Usuario(nil), seed...)}
}

// List returns a copy of all records in insertion order.
func (s *Store) List() []Usuario {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Usuario, len(s.usuarios))
	copy(out, s.usuarios)
	return out
}

// Create appends u, failing with ErrDuplicateID if the id is taken.
func (s *Store) Create(u Usuario) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if memlist.IndexOf(s.usuarios, u.ID, usuarioID) >= 0 {
		return ErrDuplicateID
	}
	s.usuarios = append(s.usuarios, u)
	return nil
}

// Replace overwrites every field of the record with the given id. The id
// itself is forced to the argument, whatever u carries.
func (s *Store) Replace(id int, u Usuario) (Usuario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := memlist.IndexOf(s.usuarios, id, usuarioID)
	if i < 0 {
		return Usuario{}, ErrNotFound
	}
	u.ID = id
	s.usuarios[i] = u
	return u, nil
}

// Patch merges the non-nil fields of p into the record with the given id.
func (s *Store) Patch(id int, p PatchUsuario) (Usuario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := memlist.IndexOf(s.usuarios, id, usuarioID)
	if i < 0 {
		return Usuario{}, ErrNotFound
	}
	if p.Nombre != nil {
		s.usuarios[i].Nombre = *p.Nombre
	}
	if p.Edad != nil {
		s.usuarios[i].Edad = *p.Edad
	}
	return s.usuarios[i], nil
}

// Delete removes and returns the record with the given id.
func (s *Store) Delete(id int) (Usuario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := memlist.IndexOf(s.usuarios, id, usuarioID)
	if i < 0 {
		return Usuario{}, ErrNotFound
	}
	removed := s.usuarios[i]
	s.usuarios = memlist.RemoveAt(s.usuarios, i)
	return removed, nil
}

func usuarioID(u Usuario) int { return u.ID }
