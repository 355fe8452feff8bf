package dto

import (
	"fmt"

	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/entity"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/hierarchy"
)

// UserListView instantánea de la vista de lista para render: filas de la
// página actual, paginación y tarjetas de resumen.
type UserListView struct {
	Users            []entity.User
	Page             PageInfo
	Stats            entity.UserStats
	RoleDistribution []entity.RoleCount
}

// TransferView instantánea de los dos paneles de asignación, con el estado
// de los botones ya decidido: un botón se deshabilita cuando su selección o
// su panel fuente está vacío. El render no aplica lógica propia.
type TransferView struct {
	Available         []entity.Store
	Assigned          []entity.Store
	SelectedAvailable []string
	SelectedAssigned  []string
	CanAssign         bool
	CanAssignAll      bool
	CanUnassign       bool
	CanUnassignAll    bool
	HasChanges        bool
}

// LeaderPickerView opciones del selector de líder más los roles elegibles
// que las produjeron. Required indica si el formulario debe exigir el campo
// para el rol del usuario editado.
type LeaderPickerView struct {
	Roles    []string
	Options  []hierarchy.Option
	Required bool
}

// BulkError fallo individual dentro de una operación masiva.
type BulkError struct {
	ID      string
	Message string
}

// BulkResult agregado de una operación masiva por entidad: cuántas pedidas,
// cuántas lograron y el detalle de las que no.
type BulkResult struct {
	Requested int
	Succeeded int
	Failed    int
	Errors    []BulkError
}

// AsError devuelve nil si todo el lote pasó; si hubo fallos, un error que
// envuelve ErrBulkParcial con el conteo.
func (r BulkResult) AsError() error {
	if r.Failed == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d de %d fallaron", domain.ErrBulkParcial, r.Failed, r.Requested)
}
