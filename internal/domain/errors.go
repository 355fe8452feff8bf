package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// Taxonomía: fallo de transporte (se envuelve con %w en apiclient, estado previo
// intacto), sesión inválida (401, fatal para la sesión), validación local (no se
// emite petición) y fallo parcial de operaciones masivas (se reporta agregado en
// dto.BulkResult, nunca con rollback automático). Operar sobre un estado ya
// consistente jamás es error: es un no-op silencioso.
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrUserNotFound   = errors.New("usuario no encontrado")
	ErrStoreNotFound  = errors.New("tienda no encontrada")
	ErrSesionExpirada = errors.New("sesión expirada o token inválido")
	ErrCredenciales   = errors.New("credenciales inválidas")
	ErrValidacion     = errors.New("entrada inválida")
	ErrDuplicate      = errors.New("recurso duplicado")
	ErrBulkParcial    = errors.New("la operación masiva terminó con fallos parciales")
	ErrBackend        = errors.New("el backend respondió con error")
)
