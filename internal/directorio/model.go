// Package directorio implements the user directory service: CRUD over a
// single in-memory list of user records.
package directorio

// Usuario is one directory record.
type Usuario struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
	Edad   int    `json:"edad"`
}

// CrearUsuario is the request body for POST and PUT. On PUT the path id wins
// over the body id.
type CrearUsuario struct {
	ID     int    `json:"id" validate:"required,gt=0"`
	Nombre string `json:"nombre" validate:"required,min=3,max=50"`
	Edad   int    `json:"edad" validate:"required,gte=1,lte=123"`
}

// PatchUsuario carries only the fields the caller wants to change; nil
// means leave the current value alone.
type PatchUsuario struct {
	Nombre *string `json:"nombre" validate:"omitnil,min=3,max=50"`
	Edad   *int    `json:"edad" validate:"omitnil,gte=1,lte=123"`
}
