// Package portal is the server-rendered front-end. It holds no data of its
// own; every form submission becomes a call to the user directory API.
package portal

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Usuario mirrors the directory service's record.
type Usuario struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
	Edad   int    `json:"edad"`
}

// Client talks to the directory API. Outbound calls carry a bounded timeout
// so a stuck backend cannot hang the page forever.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient takes the collection URL, e.g. http://127.0.0.1:8000/v1/usuarios/.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/") + "/",
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Listar fetches all directory users.
func (c *Client) Listar() ([]Usuario, error) {
	resp, err := c.http.Get(c.baseURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directorio respondió %d", resp.StatusCode)
	}

	var body struct {
		Total    int       `json:"total"`
		Usuarios []Usuario `json:"usuarios"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body.Usuarios, nil
}

// Crear registers a new user.
func (c *Client) Crear(u Usuario) error {
	return c.send(http.MethodPost, c.baseURL, u, http.StatusCreated)
}

// Actualizar replaces every field of the user with the given id.
func (c *Client) Actualizar(id int, u Usuario) error {
	return c.send(http.MethodPut, c.recordURL(id), u, http.StatusOK)
}

// ActualizarParcial patches only the fields present in campos.
func (c *Client) ActualizarParcial(id int, campos map[string]any) error {
	return c.send(http.MethodPatch, c.recordURL(id), campos, http.StatusOK)
}

// Eliminar removes the user with the given id.
func (c *Client) Eliminar(id int) error {
	return c.send(http.MethodDelete, c.recordURL(id), nil, http.StatusOK)
}

func (c *Client) recordURL(id int) string {
	return fmt.Sprintf("%s%d", c.baseURL, id)
}

func (c *Client) send(method, url string, body any, want int) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != want {
		return fmt.Errorf("directorio respondió %d", resp.StatusCode)
	}
	return nil
}
