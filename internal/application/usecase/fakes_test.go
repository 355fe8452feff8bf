package usecase_test

import (
	"context"

	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/entity"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/repository"
)

// fakeUserRepo implementa repository.UserRepository con funciones
// intercambiables; los métodos sin función devuelven ceros.
type fakeUserRepo struct {
	listFn    func(ctx context.Context, q repository.UserQuery) ([]entity.User, repository.PageMeta, error)
	listAllFn func(ctx context.Context) ([]entity.User, error)
	statsFn   func(ctx context.Context) (entity.UserStats, []entity.RoleCount, error)
	getFn     func(ctx context.Context, id string) (entity.User, error)
	createFn  func(ctx context.Context, u entity.User, password string) (entity.User, error)
	updateFn  func(ctx context.Context, id string, upd repository.UserUpdate) (entity.User, error)
	deleteFn  func(ctx context.Context, id string) error
	bulkFn    func(ctx context.Context, ids []string) (int, error)
	exportFn  func(ctx context.Context) ([]byte, error)
	importFn  func(ctx context.Context, payload []byte, filename string) (repository.ImportSummary, error)
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func (f *fakeUserRepo) List(ctx context.Context, q repository.UserQuery) ([]entity.User, repository.PageMeta, error) {
	if f.listFn == nil {
		return nil, repository.PageMeta{Page: 1, Limit: q.Limit, TotalPages: 1}, nil
	}
	return f.listFn(ctx, q)
}

func (f *fakeUserRepo) ListAll(ctx context.Context) ([]entity.User, error) {
	if f.listAllFn == nil {
		return nil, nil
	}
	return f.listAllFn(ctx)
}

func (f *fakeUserRepo) Stats(ctx context.Context) (entity.UserStats, []entity.RoleCount, error) {
	if f.statsFn == nil {
		return entity.UserStats{}, nil, nil
	}
	return f.statsFn(ctx)
}

func (f *fakeUserRepo) Get(ctx context.Context, id string) (entity.User, error) {
	if f.getFn == nil {
		return entity.User{ID: id}, nil
	}
	return f.getFn(ctx, id)
}

func (f *fakeUserRepo) Create(ctx context.Context, u entity.User, password string) (entity.User, error) {
	if f.createFn == nil {
		return u, nil
	}
	return f.createFn(ctx, u, password)
}

func (f *fakeUserRepo) Update(ctx context.Context, id string, upd repository.UserUpdate) (entity.User, error) {
	if f.updateFn == nil {
		return entity.User{ID: id}, nil
	}
	return f.updateFn(ctx, id, upd)
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, id)
}

func (f *fakeUserRepo) BulkDelete(ctx context.Context, ids []string) (int, error) {
	if f.bulkFn == nil {
		return len(ids), nil
	}
	return f.bulkFn(ctx, ids)
}

func (f *fakeUserRepo) Export(ctx context.Context) ([]byte, error) {
	if f.exportFn == nil {
		return nil, nil
	}
	return f.exportFn(ctx)
}

func (f *fakeUserRepo) Import(ctx context.Context, payload []byte, filename string) (repository.ImportSummary, error) {
	if f.importFn == nil {
		return repository.ImportSummary{}, nil
	}
	return f.importFn(ctx, payload, filename)
}

// fakeStoreRepo implementa repository.StoreRepository.
type fakeStoreRepo struct {
	listFn func(ctx context.Context, limit int) ([]entity.Store, error)
}

var _ repository.StoreRepository = (*fakeStoreRepo)(nil)

func (f *fakeStoreRepo) List(ctx context.Context, limit int) ([]entity.Store, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx, limit)
}

func user(id, login, role string, active bool) entity.User {
	return entity.User{
		ID:          id,
		UserCode:    "UC-" + id,
		LoginID:     login,
		DisplayName: login,
		Role:        role,
		Active:      active,
	}
}

func store(id, name string) entity.Store {
	return entity.Store{ID: id, Name: name, Code: "ST-" + id, Active: true}
}
