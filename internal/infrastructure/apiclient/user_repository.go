package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/application/dto"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/entity"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/repository"
)

// Verificar en tiempo de compilación que UserRepository implementa el puerto.
var _ repository.UserRepository = (*UserRepository)(nil)

// listAllLimit es el tope al traer el padrón completo para la resolución de
// jerarquía. La plataforma no expone un endpoint sin paginar.
const listAllLimit = 10000

// UserRepository implementa repository.UserRepository contra la API REST.
type UserRepository struct {
	c *Client
}

// NewUserRepository monta el adaptador de usuarios sobre el cliente base.
func NewUserRepository(c *Client) *UserRepository {
	return &UserRepository{c: c}
}

// List consulta GET /users con los criterios como query string.
func (r *UserRepository) List(ctx context.Context, q repository.UserQuery) ([]entity.User, repository.PageMeta, error) {
	query := url.Values{}
	if q.Page > 0 {
		query.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Role != "" {
		query.Set("role", q.Role)
	}
	if q.Active != nil {
		query.Set("isActive", strconv.FormatBool(*q.Active))
	}
	if q.Leader != "" {
		query.Set("leader", q.Leader)
	}
	if q.Search != "" {
		query.Set("search", q.Search)
	}

	var users []entity.User
	env, err := r.c.do(ctx, http.MethodGet, "/users", query, nil, &users, true)
	if err != nil {
		return nil, repository.PageMeta{}, err
	}

	meta := repository.PageMeta{Page: q.Page, Limit: q.Limit, Total: len(users), TotalPages: 1}
	if env.Pagination != nil {
		meta = repository.PageMeta{
			Page:       env.Pagination.Page,
			Limit:      env.Pagination.Limit,
			Total:      env.Pagination.Total,
			TotalPages: env.Pagination.TotalPages,
		}
	}
	return users, meta, nil
}

// ListAll trae el pool completo en una sola página grande.
func (r *UserRepository) ListAll(ctx context.Context) ([]entity.User, error) {
	users, _, err := r.List(ctx, repository.UserQuery{Page: 1, Limit: listAllLimit})
	return users, err
}

// Stats consulta GET /users/stats.
func (r *UserRepository) Stats(ctx context.Context) (entity.UserStats, []entity.RoleCount, error) {
	var payload dto.StatsPayload
	if _, err := r.c.do(ctx, http.MethodGet, "/users/stats", nil, nil, &payload, true); err != nil {
		return entity.UserStats{}, nil, err
	}
	return payload.Overview, payload.RoleDistribution, nil
}

// Get consulta GET /users/:id.
func (r *UserRepository) Get(ctx context.Context, id string) (entity.User, error) {
	var u entity.User
	if _, err := r.c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, nil, &u, true); err != nil {
		return entity.User{}, userErr(err)
	}
	return u, nil
}

// Create da de alta con POST /users.
func (r *UserRepository) Create(ctx context.Context, u entity.User, password string) (entity.User, error) {
	req := dto.CreateUserRequest{
		UserCode:    u.UserCode,
		LoginID:     u.LoginID,
		DisplayName: u.DisplayName,
		Password:    password,
		Role:        u.Role,
		Leader:      u.LeaderName,
		Active:      &u.Active,
		StoreIDs:    u.StoreIDs,
	}

	var created entity.User
	if _, err := r.c.do(ctx, http.MethodPost, "/users", nil, req, &created, true); err != nil {
		return entity.User{}, err
	}
	return created, nil
}

// Update aplica un PUT parcial a /users/:id.
func (r *UserRepository) Update(ctx context.Context, id string, upd repository.UserUpdate) (entity.User, error) {
	var updated entity.User
	req := dto.UpdateFrom(upd)
	if _, err := r.c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), nil, req, &updated, true); err != nil {
		return entity.User{}, userErr(err)
	}
	return updated, nil
}

// Delete elimina con DELETE /users/:id.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil, nil, true); err != nil {
		return userErr(err)
	}
	return nil
}

// BulkDelete elimina un lote con DELETE /users/bulk.
func (r *UserRepository) BulkDelete(ctx context.Context, ids []string) (int, error) {
	req := dto.BulkDeleteRequest{UserIDs: ids}
	if err := dto.Validate(req); err != nil {
		return 0, err
	}

	var payload dto.BulkDeletePayload
	if _, err := r.c.do(ctx, http.MethodDelete, "/users/bulk", nil, req, &payload, true); err != nil {
		return 0, err
	}
	return payload.DeletedCount, nil
}

// Export descarga GET /users/export como archivo opaco.
func (r *UserRepository) Export(ctx context.Context) ([]byte, error) {
	return r.c.doRaw(ctx, "/users/export")
}

// Import sube el archivo a POST /users/import y devuelve el resumen.
func (r *UserRepository) Import(ctx context.Context, payload []byte, filename string) (repository.ImportSummary, error) {
	var res dto.ImportResult
	if _, err := r.c.doUpload(ctx, "/users/import", "file", filename, payload, &res); err != nil {
		return repository.ImportSummary{}, err
	}
	return res.ToSummary(), nil
}

// userErr especializa el 404 genérico del transporte al sentinel de usuario.
func userErr(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrUserNotFound
	}
	return err
}
