package usecase

import (
	"context"
	"fmt"

	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/application/dto"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/entity"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/filter"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/hierarchy"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/repository"
)

// LeaderPickerUseCase arma el selector de líder del formulario de usuario:
// trae el pool completo y delega en el resolutor de jerarquía.
type LeaderPickerUseCase struct {
	users    repository.UserRepository
	resolver *hierarchy.Resolver
}

// NewLeaderPickerUseCase construye el caso de uso con el resolutor dado.
func NewLeaderPickerUseCase(users repository.UserRepository, resolver *hierarchy.Resolver) *LeaderPickerUseCase {
	return &LeaderPickerUseCase{users: users, resolver: resolver}
}

// OptionsFor devuelve las opciones de líder para un usuario del rol dado,
// con currentLeader preservado según las reglas del resolutor. search
// recorta las opciones EN MEMORIA (la opción vigente nunca se recorta); no
// hay segundo viaje al backend.
func (uc *LeaderPickerUseCase) OptionsFor(ctx context.Context, subjectRole, currentLeader, search string) (dto.LeaderPickerView, error) {
	pool, err := uc.users.ListAll(ctx)
	if err != nil {
		return dto.LeaderPickerView{}, fmt.Errorf("pool de líderes: %w", err)
	}

	view := dto.LeaderPickerView{
		Roles:    uc.resolver.LeaderRoles(pool, subjectRole),
		Options:  uc.resolver.Candidates(pool, subjectRole, currentLeader),
		Required: uc.resolver.RequiresLeader(pool, subjectRole),
	}

	if search != "" {
		m := filter.Matchers[hierarchy.Option]{
			Search: func(o hierarchy.Option, q string) bool {
				return o.Current ||
					filter.ContainsFold(o.Name, q) ||
					filter.ContainsFold(o.Label, q)
			},
		}
		view.Options = filter.Apply(view.Options, filter.Criteria{Search: search}, m)
	}
	return view, nil
}

// Hierarchy devuelve los líderes mencionados en el pool con su rol resuelto,
// para el resumen de organigrama de la consola.
func (uc *LeaderPickerUseCase) Hierarchy(ctx context.Context) ([]entity.LeaderProfile, error) {
	pool, err := uc.users.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("pool de líderes: %w", err)
	}
	return uc.resolver.Profiles(pool), nil
}
