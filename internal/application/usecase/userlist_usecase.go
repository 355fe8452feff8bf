// Package usecase contiene los casos de uso de la pantalla de administración
// de usuarios: la sesión de lista, las altas y bajas, las operaciones
// masivas, la sesión de asignación de tiendas y el selector de líderes.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/application/dto"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/entity"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/filter"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/pager"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/repository"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/selection"
)

// UserListUseCase es la sesión de la vista de lista: criterios de filtrado,
// paginación, selección y la última instantánea cargada, todo bajo un mismo
// candado. Las recargas disparadas por el debounce corren en goroutines
// propias, por eso el estado no puede ser de una sola hebra.
//
// Las respuestas se aplican en orden de llegada: la última escritura gana.
type UserListUseCase struct {
	users repository.UserRepository

	// OnViewChanged recibe cada instantánea aplicada; la capa de render se
	// engancha acá. Se invoca fuera del candado y no debe bloquear.
	OnViewChanged func(dto.UserListView)
	// OnError recibe los fallos de recargas agendadas (debounce), que no
	// tienen un llamador esperando el error.
	OnError func(error)

	mu       sync.Mutex
	criteria filter.Criteria
	pg       *pager.Paginator
	sel      *selection.Set
	view     dto.UserListView
	dirty    bool

	deb *debouncer
}

// NewUserListUseCase construye la sesión de lista. debounce es la espera
// tras la última tecla de búsqueda antes de consultar al backend.
func NewUserListUseCase(users repository.UserRepository, pageSize int, debounce time.Duration) *UserListUseCase {
	uc := &UserListUseCase{
		users: users,
		pg:    pager.New(pageSize),
		sel:   selection.New(),
		deb:   newDebouncer(debounce),
	}
	// Siempre se dispara bajo uc.mu: el paginador solo se toca con el
	// candado tomado.
	uc.pg.OnChange = func(page, size int) { uc.dirty = true }
	return uc
}

// Load consulta la página actual y el resumen EN PARALELO y aplica lo que
// haya llegado bien: si una de las dos patas falla, la otra igual actualiza
// la vista y el error se reporta junto.
func (uc *UserListUseCase) Load(ctx context.Context) error {
	uc.mu.Lock()
	q := uc.queryLocked()
	uc.mu.Unlock()

	type listResult struct {
		users []entity.User
		meta  repository.PageMeta
		err   error
	}
	type statsResult struct {
		overview entity.UserStats
		dist     []entity.RoleCount
		err      error
	}

	listCh := make(chan listResult, 1)
	statsCh := make(chan statsResult, 1)

	go func() {
		us, meta, err := uc.users.List(ctx, q)
		listCh <- listResult{us, meta, err}
	}()
	go func() {
		ov, dist, err := uc.users.Stats(ctx)
		statsCh <- statsResult{ov, dist, err}
	}()

	list := <-listCh
	stats := <-statsCh

	uc.mu.Lock()
	if list.err == nil {
		uc.view.Users = list.users
		uc.view.Page = dto.PageInfo{
			Page:       list.meta.Page,
			Limit:      list.meta.Limit,
			Total:      list.meta.Total,
			TotalPages: list.meta.TotalPages,
		}
		uc.pg.SetTotal(list.meta.Total)

		// La selección se interseca contra las filas recién renderizadas:
		// lo que ya no está a la vista deja de estar marcado.
		visible := make(map[string]struct{}, len(list.users))
		for _, u := range list.users {
			visible[u.ID] = struct{}{}
		}
		uc.sel.RetainIn(visible)
	}
	if stats.err == nil {
		uc.view.Stats = stats.overview
		uc.view.RoleDistribution = stats.dist
	}
	uc.dirty = false
	snap := uc.view
	uc.mu.Unlock()

	if list.err == nil || stats.err == nil {
		uc.notify(snap)
	}

	var errList, errStats error
	if list.err != nil {
		errList = fmt.Errorf("lista de usuarios: %w", list.err)
	}
	if stats.err != nil {
		errStats = fmt.Errorf("resumen de usuarios: %w", stats.err)
	}
	return errors.Join(errList, errStats)
}

// Snapshot devuelve la última instantánea aplicada.
func (uc *UserListUseCase) Snapshot() dto.UserListView {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.view
}

// Stop descarta cualquier recarga agendada pendiente. Las que ya están en
// vuelo terminan solas.
func (uc *UserListUseCase) Stop() {
	uc.deb.Stop()
}

// ── Búsqueda y filtros ────────────────────────────────────────────────────────

// SetSearch registra el texto tecleado, vuelve a la página 1, invalida la
// selección y agenda la recarga con debounce: de una ráfaga de teclas solo la
// última consulta.
func (uc *UserListUseCase) SetSearch(q string) {
	uc.mu.Lock()
	uc.criteria.Search = q
	uc.pg.Reset()
	uc.sel.Clear()
	uc.mu.Unlock()

	uc.deb.Call(func() {
		if err := uc.Load(context.Background()); err != nil && uc.OnError != nil {
			uc.OnError(err)
		}
	})
}

// SetRole filtra por rol ("" = todos) y recarga de inmediato.
func (uc *UserListUseCase) SetRole(ctx context.Context, role string) error {
	return uc.setTerm(ctx, "role", role)
}

// SetStatus filtra por estado: "active", "inactive" o "" para todos.
func (uc *UserListUseCase) SetStatus(ctx context.Context, status string) error {
	return uc.setTerm(ctx, "status", status)
}

// SetLeader filtra por líder asignado ("" = todos) y recarga de inmediato.
func (uc *UserListUseCase) SetLeader(ctx context.Context, leader string) error {
	return uc.setTerm(ctx, "leader", leader)
}

// ClearFilters borra búsqueda y facetas y recarga.
func (uc *UserListUseCase) ClearFilters(ctx context.Context) error {
	uc.mu.Lock()
	uc.criteria = filter.Criteria{}
	uc.pg.Reset()
	uc.sel.Clear()
	uc.mu.Unlock()
	return uc.Load(ctx)
}

// Criteria devuelve los criterios vigentes de la vista.
func (uc *UserListUseCase) Criteria() filter.Criteria {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.criteria
}

// Un cambio de faceta cambia la forma de la vista: la selección previa deja
// de tener sentido y se limpia, no se interseca.
func (uc *UserListUseCase) setTerm(ctx context.Context, name, value string) error {
	uc.mu.Lock()
	uc.criteria = uc.criteria.WithTerm(name, value)
	uc.pg.Reset()
	uc.sel.Clear()
	uc.mu.Unlock()
	return uc.Load(ctx)
}

// ── Paginación ────────────────────────────────────────────────────────────────

// GoToPage navega a la página n (acotada) y recarga solo si cambió algo.
func (uc *UserListUseCase) GoToPage(ctx context.Context, n int) error {
	return uc.paginate(ctx, func() { uc.pg.GoTo(n) })
}

// NextPage avanza una página.
func (uc *UserListUseCase) NextPage(ctx context.Context) error {
	return uc.paginate(ctx, func() { uc.pg.Next() })
}

// PrevPage retrocede una página.
func (uc *UserListUseCase) PrevPage(ctx context.Context) error {
	return uc.paginate(ctx, func() { uc.pg.Prev() })
}

// SetPageSize cambia el tamaño de página (vuelve a la 1) y recarga.
func (uc *UserListUseCase) SetPageSize(ctx context.Context, size int) error {
	return uc.paginate(ctx, func() { uc.pg.SetPageSize(size) })
}

// PageWindow devuelve la botonera de paginación centrada en la página actual.
func (uc *UserListUseCase) PageWindow(max int) []int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.pg.Window(max)
}

func (uc *UserListUseCase) paginate(ctx context.Context, nav func()) error {
	uc.mu.Lock()
	nav()
	dirty := uc.dirty
	if dirty {
		// La página cambió de verdad: las marcas pertenecían a la anterior.
		uc.sel.Clear()
	}
	uc.mu.Unlock()

	if !dirty {
		return nil
	}
	return uc.Load(ctx)
}

// ── Selección ─────────────────────────────────────────────────────────────────

// ToggleSelect alterna la marca de una fila visible. IDs fuera de la página
// actual se ignoran.
func (uc *UserListUseCase) ToggleSelect(id string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for _, u := range uc.view.Users {
		if u.ID == id {
			uc.sel.Toggle(id)
			return
		}
	}
}

// SelectPage marca todas las filas de la página visible (aditivo).
func (uc *UserListUseCase) SelectPage() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	ids := make([]string, len(uc.view.Users))
	for i, u := range uc.view.Users {
		ids[i] = u.ID
	}
	uc.sel.SelectAll(ids)
}

// ClearSelection desmarca todo.
func (uc *UserListUseCase) ClearSelection() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.sel.Clear()
}

// SelectedIDs devuelve los IDs marcados, ordenados.
func (uc *UserListUseCase) SelectedIDs() []string {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.sel.IDs()
}

// IsSelected informa si la fila está marcada.
func (uc *UserListUseCase) IsSelected(id string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.sel.Contains(id)
}

// ── Internos ──────────────────────────────────────────────────────────────────

func (uc *UserListUseCase) queryLocked() repository.UserQuery {
	q := repository.UserQuery{
		Page:   uc.pg.Page(),
		Limit:  uc.pg.PageSize(),
		Role:   uc.criteria.Terms["role"],
		Leader: uc.criteria.Terms["leader"],
		Search: strings.TrimSpace(uc.criteria.Search),
	}
	switch uc.criteria.Terms["status"] {
	case "active":
		t := true
		q.Active = &t
	case "inactive":
		f := false
		q.Active = &f
	}
	return q
}

func (uc *UserListUseCase) notify(snap dto.UserListView) {
	if uc.OnViewChanged != nil {
		uc.OnViewChanged(snap)
	}
}
