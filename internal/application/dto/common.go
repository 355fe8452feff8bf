package dto

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain"
)

// PageInfo metadatos de página que el backend adjunta a cada listado.
type PageInfo struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Envelope sobre estándar de toda respuesta del backend. Data queda cruda
// para que cada llamada la decodifique a su tipo.
type Envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message,omitempty"`
	Code       string          `json:"code,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	Pagination *PageInfo       `json:"pagination,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate valida un request contra sus tags y envuelve el fallo en
// ErrValidacion para que la capa de arriba lo distinga de errores de red.
func Validate(req any) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidacion, err)
	}
	return nil
}
