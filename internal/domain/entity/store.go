package entity

// Store es un punto de venta asignable a usuarios de campo.
// El catálogo completo de tiendas forma el "universo" de una sesión de
// asignación (ver transfer.Session).
type Store struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Code   string `json:"code"`
	Region string `json:"region"`
	Active bool   `json:"isActive"`
}
