package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/application/dto"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/repository"
)

// BulkUseCase operaciones masivas sobre la selección de la lista.
type BulkUseCase struct {
	users repository.UserRepository
}

// NewBulkUseCase construye el caso de uso.
func NewBulkUseCase(users repository.UserRepository) *BulkUseCase {
	return &BulkUseCase{users: users}
}

// SetActive activa o desactiva cada ID con su propio request, todos EN
// PARALELO, y espera a que el lote entero se asiente. Los que pasaron no se
// revierten aunque otros fallen: el resultado agrega éxitos y fallos y el
// error final marca el lote como parcial.
func (uc *BulkUseCase) SetActive(ctx context.Context, ids []string, active bool) (dto.BulkResult, error) {
	if len(ids) == 0 {
		return dto.BulkResult{}, nil
	}

	type itemResult struct {
		id  string
		err error
	}
	ch := make(chan itemResult, len(ids))

	for _, id := range ids {
		go func(id string) {
			_, err := uc.users.Update(ctx, id, repository.UserUpdate{Active: &active})
			ch <- itemResult{id: id, err: err}
		}(id)
	}

	res := dto.BulkResult{Requested: len(ids)}
	for range ids {
		it := <-ch
		if it.err != nil {
			res.Failed++
			res.Errors = append(res.Errors, dto.BulkError{ID: it.id, Message: it.err.Error()})
			continue
		}
		res.Succeeded++
	}

	// Orden estable para render y logs; las goroutines llegan como quieren.
	sort.Slice(res.Errors, func(i, j int) bool { return res.Errors[i].ID < res.Errors[j].ID })

	return res, res.AsError()
}

// Delete elimina el lote entero con el endpoint de borrado masivo del
// backend: un solo request, el backend reporta cuántos borró.
func (uc *BulkUseCase) Delete(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	n, err := uc.users.BulkDelete(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("borrado masivo: %w", err)
	}
	return n, nil
}
