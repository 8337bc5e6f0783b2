// The biblioteca binary serves the library API: books, members and loans.
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"biblioteca/internal/biblioteca"
	"biblioteca/internal/httpx"
)

func main() {
	addr := getEnv("LISTEN_ADDR", ":8001")

	store := biblioteca.NewStore()
	seed(store)

	sweep := biblioteca.StartOverdueSweep(store)
	defer sweep.Stop()

	router := mux.NewRouter()
	router.HandleFunc("/health", health).Methods(http.MethodGet)
	biblioteca.NewHandler(store, httpx.NewValidator()).Register(router)

	log.Printf("Library service listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, httpx.CORS(httpx.AccessLog(router))))
}

// seed loads the demo catalogue. Books 1 and 3 start out loaned because the
// seeded loans 1 and 3 are still active.
func seed(store *biblioteca.Store) {
	store.Seed(
		[]biblioteca.Libro{
			{ID: 1, Titulo: "El principito", Autor: "Antoine de Saint-Exupéry", Anio: 1943, Paginas: 96, Estado: biblioteca.EstadoPrestado},
			{ID: 2, Titulo: "1984", Autor: "George Orwell", Anio: 1949, Paginas: 328, Estado: biblioteca.EstadoDisponible},
			{ID: 3, Titulo: "El alquimista", Autor: "Paulo Coelho", Anio: 1988, Paginas: 208, Estado: biblioteca.EstadoPrestado},
		},
		[]biblioteca.Usuario{
			{ID: 1, Nombre: "Juan", Email: "juan@gmail.com"},
			{ID: 2, Nombre: "Maria", Email: "maria@gmail.com"},
			{ID: 3, Nombre: "Pedro", Email: "pedro@gmail.com"},
		},
		[]biblioteca.Prestamo{
			{ID: 1, LibroID: 1, UsuarioID: 1, FechaPrestamo: "2026-01-01", FechaDevolucion: "2026-01-05", Activo: true},
			{ID: 2, LibroID: 2, UsuarioID: 2, FechaPrestamo: "2026-01-02", FechaDevolucion: "2026-01-06", Activo: false},
			{ID: 3, LibroID: 3, UsuarioID: 3, FechaPrestamo: "2026-01-03", FechaDevolucion: "2026-01-07", Activo: true},
		},
	)
}

func health(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
