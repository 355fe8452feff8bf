package repository

import (
	"context"

	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/entity"
)

// StoreRepository define el puerto de acceso al universo de tiendas (DIP).
// La sesión de asignación carga el universo una vez por apertura.
type StoreRepository interface {
	// List devuelve hasta limit tiendas; con limit 0 decide el backend.
	List(ctx context.Context, limit int) ([]entity.Store, error)
}
