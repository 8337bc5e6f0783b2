// The directorio binary serves the user directory API.
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"biblioteca/internal/directorio"
	"biblioteca/internal/httpx"
)

func main() {
	addr := getEnv("LISTEN_ADDR", ":8000")

	store := directorio.NewStore(
		directorio.Usuario{ID: 1, Nombre: "Fany", Edad: 21},
		directorio.Usuario{ID: 2, Nombre: "Ali", Edad: 21},
		directorio.Usuario{ID: 3, Nombre: "Dulce", Edad: 21},
	)

	router := mux.NewRouter()
	router.HandleFunc("/health", health).Methods(http.MethodGet)
	directorio.NewHandler(store, httpx.NewValidator()).Register(router)

	log.Printf("User directory service listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, httpx.CORS(httpx.AccessLog(router))))
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
