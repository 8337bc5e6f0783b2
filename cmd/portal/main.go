// The portal binary serves the HTML front-end that relays form submissions
// to the user directory API.
package main

import (
	"os"

	"biblioteca/internal/portal"
)

func main() {
	addr := getEnv("LISTEN_ADDR", ":5001")
	base := getEnv("DIRECTORIO_URL", "http://127.0.0.1:8000/v1/usuarios/")

	app := portal.App(portal.NewClient(base))
	app.Logger.Fatal(app.Start(addr))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
