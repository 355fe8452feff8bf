package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/entity"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/repository"
)

// Verificar en tiempo de compilación que StoreRepository implementa el puerto.
var _ repository.StoreRepository = (*StoreRepository)(nil)

// StoreRepository implementa repository.StoreRepository contra la API REST.
type StoreRepository struct {
	c *Client
}

// NewStoreRepository monta el adaptador de tiendas sobre el cliente base.
func NewStoreRepository(c *Client) *StoreRepository {
	return &StoreRepository{c: c}
}

// List consulta GET /stores; con limit 0 el backend aplica su tope.
func (r *StoreRepository) List(ctx context.Context, limit int) ([]entity.Store, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var stores []entity.Store
	if _, err := r.c.do(ctx, http.MethodGet, "/stores", query, nil, &stores, true); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, err
	}
	return stores, nil
}
