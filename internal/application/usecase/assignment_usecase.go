package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/application/dto"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/entity"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/repository"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/transfer"
)

// AssignmentUseCase es la sesión de asignación de tiendas de UN usuario:
// abre cargando universo y usuario en paralelo, edita en memoria sobre
// transfer.Session y recién persiste al guardar.
type AssignmentUseCase struct {
	users       repository.UserRepository
	stores      repository.StoreRepository
	storesLimit int

	mu       sync.Mutex
	session  *transfer.Session
	universe []entity.Store
	userID   string
	user     entity.User
}

// NewAssignmentUseCase construye el caso de uso. storesLimit acota el
// universo de tiendas pedido al abrir.
func NewAssignmentUseCase(users repository.UserRepository, stores repository.StoreRepository, storesLimit int) *AssignmentUseCase {
	return &AssignmentUseCase{
		users:       users,
		stores:      stores,
		storesLimit: storesLimit,
		session:     transfer.New(),
	}
}

// Open carga EN PARALELO el universo de tiendas y el usuario a editar, y
// solo cuando ambos llegaron inicializa la sesión. Si cualquiera falla no
// queda sesión a medio armar: la anterior sigue vigente. Con id vacío es un
// alta: no hay usuario que traer y la cartera arranca vacía.
func (uc *AssignmentUseCase) Open(ctx context.Context, userID string) error {
	type storesResult struct {
		stores []entity.Store
		err    error
	}
	type userResult struct {
		user entity.User
		err  error
	}

	storesCh := make(chan storesResult, 1)
	userCh := make(chan userResult, 1)

	go func() {
		st, err := uc.stores.List(ctx, uc.storesLimit)
		storesCh <- storesResult{st, err}
	}()
	if userID == "" {
		userCh <- userResult{}
	} else {
		go func() {
			u, err := uc.users.Get(ctx, userID)
			userCh <- userResult{u, err}
		}()
	}

	st := <-storesCh
	usr := <-userCh

	if st.err != nil {
		return fmt.Errorf("universo de tiendas: %w", st.err)
	}
	if usr.err != nil {
		return fmt.Errorf("usuario a editar: %w", usr.err)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.universe = st.stores
	uc.userID = userID
	uc.user = usr.user
	uc.session.Init(st.stores, usr.user.StoreIDs)
	return nil
}

// User devuelve el usuario en edición (instantánea al abrir).
func (uc *AssignmentUseCase) User() entity.User {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.user
}

// View devuelve los dos paneles como los vería el operador, botones
// incluidos.
func (uc *AssignmentUseCase) View() dto.TransferView {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	av := uc.session.Available()
	as := uc.session.Assigned()
	selAv := uc.session.SelectedAvailableIDs()
	selAs := uc.session.SelectedAssignedIDs()
	return dto.TransferView{
		Available:         av,
		Assigned:          as,
		SelectedAvailable: selAv,
		SelectedAssigned:  selAs,
		CanAssign:         len(selAv) > 0,
		CanAssignAll:      len(av) > 0,
		CanUnassign:       len(selAs) > 0,
		CanUnassignAll:    len(as) > 0,
		HasChanges:        uc.session.HasChanges(),
	}
}

// SetStoreSearch filtra el panel de disponibles al instante: el universo ya
// está en memoria, acá no hay debounce ni backend.
func (uc *AssignmentUseCase) SetStoreSearch(q string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.session.SetSearch(q)
}

// ToggleAvailable alterna la marca de una tienda disponible.
func (uc *AssignmentUseCase) ToggleAvailable(id string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.session.ToggleAvailable(id)
}

// ToggleAssigned alterna la marca de una tienda de la cartera.
func (uc *AssignmentUseCase) ToggleAssigned(id string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.session.ToggleAssigned(id)
}

// SelectAllAvailable marca todo lo visible del panel izquierdo.
func (uc *AssignmentUseCase) SelectAllAvailable() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.session.SelectAllAvailable()
}

// AssignSelected mueve las marcas del panel izquierdo a la cartera.
func (uc *AssignmentUseCase) AssignSelected() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.session.AssignSelected()
}

// UnassignSelected saca de la cartera las marcas del panel derecho.
func (uc *AssignmentUseCase) UnassignSelected() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.session.UnassignSelected()
}

// AssignAllVisible mueve a la cartera todo lo visible del panel izquierdo.
func (uc *AssignmentUseCase) AssignAllVisible() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.session.AssignAllVisible()
}

// UnassignAll vacía la cartera.
func (uc *AssignmentUseCase) UnassignAll() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.session.UnassignAll()
}

// RemoveStore saca una sola tienda de la cartera (el chip «×» del panel
// derecho).
func (uc *AssignmentUseCase) RemoveStore(id string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.session.RemoveSingle(id)
}

// Session expone la sesión de transferencia para render fino (marcas por
// fila). Los llamadores deben tratarla como de solo lectura.
func (uc *AssignmentUseCase) Session() *transfer.Session {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.session
}

// Cancel descarta la edición en curso: la sesión vuelve a la última línea
// base conocida (lo guardado, o la cartera con la que se abrió), con filtro
// y marcas en limpio.
func (uc *AssignmentUseCase) Cancel() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.session.Init(uc.universe, uc.user.StoreIDs)
}

// Save persiste la cartera actual como actualización parcial del usuario.
// Sin cambios pendientes es un no-op sin HTTP. Tras guardar con éxito, lo
// guardado pasa a ser la nueva línea base de la sesión.
func (uc *AssignmentUseCase) Save(ctx context.Context) (entity.User, error) {
	uc.mu.Lock()
	if !uc.session.HasChanges() {
		u := uc.user
		uc.mu.Unlock()
		return u, nil
	}
	id := uc.userID
	ids := uc.session.AssignedIDs()
	uc.mu.Unlock()

	updated, err := uc.users.Update(ctx, id, repository.UserUpdate{StoreIDs: &ids})
	if err != nil {
		return entity.User{}, fmt.Errorf("guardar cartera: %w", err)
	}

	uc.mu.Lock()
	uc.user = updated
	uc.session.Commit()
	uc.mu.Unlock()
	return updated, nil
}
