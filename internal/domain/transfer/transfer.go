// Package transfer implementa la sesión de asignación de tiendas: el par de
// paneles "disponibles" / "asignadas" con el que el administrador arma la
// cartera de un usuario de campo.
//
// Invariante de partición: cada tienda del universo vive en EXACTAMENTE uno
// de los dos paneles. El filtro solo recorta lo que el panel izquierdo
// muestra, nunca la membresía; el panel de asignadas jamás se filtra, para
// que el operador siempre vea la cartera completa que está por guardar.
package transfer

import (
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/entity"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/filter"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/selection"
)

// Session es una sesión de edición de cartera. Se crea con New, se carga con
// Init y a partir de ahí todas las operaciones son locales; nada toca al
// backend hasta que el dueño lea AssignedIDs y lo persista.
//
// No es segura para uso concurrente: la posee la goroutine de la vista.
type Session struct {
	universe []entity.Store
	index    map[string]int
	assigned map[string]struct{}
	initial  map[string]struct{}

	criteria filter.Criteria
	availSel selection.Set
	asigSel  selection.Set

	ready bool
}

// New crea una sesión vacía. Usarla antes de Init es un error de
// programación y las operaciones entran en pánico.
func New() *Session {
	return &Session{}
}

// Init carga el universo de tiendas y la cartera actual del usuario, y
// reinicia filtro y selecciones. IDs asignados que no existen en el universo
// se descartan en silencio: son residuos de tiendas dadas de baja y no deben
// revivir al guardar. Duplicados en el universo se colapsan a la primera
// aparición.
func (s *Session) Init(universe []entity.Store, assignedIDs []string) {
	s.universe = make([]entity.Store, 0, len(universe))
	s.index = make(map[string]int, len(universe))
	for _, st := range universe {
		if _, dup := s.index[st.ID]; dup {
			continue
		}
		s.index[st.ID] = len(s.universe)
		s.universe = append(s.universe, st)
	}

	s.assigned = make(map[string]struct{}, len(assignedIDs))
	for _, id := range assignedIDs {
		if _, ok := s.index[id]; ok {
			s.assigned[id] = struct{}{}
		}
	}
	s.initial = make(map[string]struct{}, len(s.assigned))
	for id := range s.assigned {
		s.initial[id] = struct{}{}
	}

	s.criteria = filter.Criteria{}
	s.availSel.Clear()
	s.asigSel.Clear()
	s.ready = true
}

func (s *Session) ensure() {
	if !s.ready {
		panic("transfer: sesión usada antes de Init")
	}
}

// ─── Paneles ───

// Available devuelve el panel izquierdo: tiendas del universo aún no
// asignadas, en orden de universo, recortadas por el filtro vigente.
func (s *Session) Available() []entity.Store {
	s.ensure()
	unassigned := make([]entity.Store, 0, len(s.universe)-len(s.assigned))
	for _, st := range s.universe {
		if _, ok := s.assigned[st.ID]; !ok {
			unassigned = append(unassigned, st)
		}
	}
	return filter.Apply(unassigned, s.criteria, storeMatchers())
}

// Assigned devuelve el panel derecho: la cartera actual en orden de
// universo. Nunca se filtra.
func (s *Session) Assigned() []entity.Store {
	s.ensure()
	out := make([]entity.Store, 0, len(s.assigned))
	for _, st := range s.universe {
		if _, ok := s.assigned[st.ID]; ok {
			out = append(out, st)
		}
	}
	return out
}

// AssignedIDs devuelve los IDs de la cartera actual en orden de universo.
// Es el payload que se persiste al guardar.
func (s *Session) AssignedIDs() []string {
	s.ensure()
	out := make([]string, 0, len(s.assigned))
	for _, st := range s.universe {
		if _, ok := s.assigned[st.ID]; ok {
			out = append(out, st.ID)
		}
	}
	return out
}

// AssignedCount devuelve el tamaño de la cartera actual.
func (s *Session) AssignedCount() int {
	s.ensure()
	return len(s.assigned)
}

// ─── Filtro del panel izquierdo ───

// SetFilter reemplaza el filtro del panel de disponibles y limpia la
// selección de ese panel: las marcas pertenecían a una lista que ya no
// existe. El panel de asignadas y su selección no se tocan.
func (s *Session) SetFilter(c filter.Criteria) {
	s.ensure()
	s.criteria = c
	s.availSel.Clear()
}

// SetSearch es el atajo para filtrar solo por texto libre.
func (s *Session) SetSearch(q string) {
	s.SetFilter(filter.Criteria{Search: q, Terms: s.criteria.Terms})
}

// Criteria devuelve el filtro vigente del panel de disponibles.
func (s *Session) Criteria() filter.Criteria {
	s.ensure()
	return s.criteria
}

// ─── Selección por panel ───

// ToggleAvailable alterna la marca de una tienda del panel izquierdo.
// IDs desconocidos o ya asignados se ignoran.
func (s *Session) ToggleAvailable(id string) {
	s.ensure()
	if !s.isAvailable(id) {
		return
	}
	s.availSel.Toggle(id)
}

// ToggleAssigned alterna la marca de una tienda del panel derecho.
func (s *Session) ToggleAssigned(id string) {
	s.ensure()
	if _, ok := s.assigned[id]; !ok {
		return
	}
	s.asigSel.Toggle(id)
}

// SelectAllAvailable marca todas las tiendas VISIBLES del panel izquierdo
// (las que el filtro deja ver). Aditivo sobre marcas previas.
func (s *Session) SelectAllAvailable() {
	s.ensure()
	visible := s.Available()
	ids := make([]string, len(visible))
	for i, st := range visible {
		ids[i] = st.ID
	}
	s.availSel.SelectAll(ids)
}

// SelectAllAssigned marca toda la cartera.
func (s *Session) SelectAllAssigned() {
	s.ensure()
	s.asigSel.SelectAll(s.AssignedIDs())
}

// IsAvailableSelected informa si la tienda está marcada en el panel izquierdo.
func (s *Session) IsAvailableSelected(id string) bool {
	return s.availSel.Contains(id)
}

// IsAssignedSelected informa si la tienda está marcada en el panel derecho.
func (s *Session) IsAssignedSelected(id string) bool {
	return s.asigSel.Contains(id)
}

// SelectedAvailableIDs devuelve las marcas del panel izquierdo, ordenadas.
func (s *Session) SelectedAvailableIDs() []string {
	return s.availSel.IDs()
}

// SelectedAssignedIDs devuelve las marcas del panel derecho, ordenadas.
func (s *Session) SelectedAssignedIDs() []string {
	return s.asigSel.IDs()
}

// ─── Movimientos ───

// Assign mueve a la cartera cada ID que esté disponible; los que no lo
// están se ignoran: la lista del llamador puede ser una instantánea vieja y
// mover una tienda ya asignada es un no-op. Limpia la selección izquierda
// completa y devuelve cuántas se movieron.
func (s *Session) Assign(ids []string) int {
	s.ensure()
	moved := 0
	for _, id := range ids {
		if s.isAvailable(id) {
			s.assigned[id] = struct{}{}
			moved++
		}
	}
	s.availSel.Clear()
	return moved
}

// AssignSelected mueve las tiendas marcadas del panel izquierdo a la cartera.
func (s *Session) AssignSelected() int {
	s.ensure()
	return s.Assign(s.availSel.IDs())
}

// Unassign saca de la cartera cada ID presente en ella; los demás se
// ignoran. Limpia la selección derecha completa y devuelve cuántas salieron.
func (s *Session) Unassign(ids []string) int {
	s.ensure()
	moved := 0
	for _, id := range ids {
		if _, ok := s.assigned[id]; ok {
			delete(s.assigned, id)
			moved++
		}
	}
	s.asigSel.Clear()
	return moved
}

// UnassignSelected saca de la cartera las tiendas marcadas del panel derecho.
func (s *Session) UnassignSelected() int {
	s.ensure()
	return s.Unassign(s.asigSel.IDs())
}

// RemoveSingle es el atajo del chip «×» del panel derecho: saca esa única
// tienda de la cartera, con la misma semántica que Unassign de un solo ID.
func (s *Session) RemoveSingle(id string) bool {
	s.ensure()
	return s.Unassign([]string{id}) == 1
}

// AssignAllVisible mueve a la cartera todo lo que el panel izquierdo
// muestra bajo el filtro vigente. Con el panel vacío es un no-op.
func (s *Session) AssignAllVisible() int {
	s.ensure()
	visible := s.Available()
	for _, st := range visible {
		s.assigned[st.ID] = struct{}{}
	}
	s.availSel.Clear()
	return len(visible)
}

// UnassignAll vacía la cartera entera.
func (s *Session) UnassignAll() int {
	s.ensure()
	n := len(s.assigned)
	s.assigned = make(map[string]struct{})
	s.asigSel.Clear()
	return n
}

// ─── Cambios pendientes ───

// Commit fija la cartera actual como nueva línea base. El dueño lo llama
// después de persistir con éxito: lo recién guardado deja de contar como
// cambio pendiente.
func (s *Session) Commit() {
	s.ensure()
	s.initial = make(map[string]struct{}, len(s.assigned))
	for id := range s.assigned {
		s.initial[id] = struct{}{}
	}
}

// HasChanges informa si la cartera actual difiere de la cargada en Init.
func (s *Session) HasChanges() bool {
	s.ensure()
	if len(s.assigned) != len(s.initial) {
		return true
	}
	for id := range s.assigned {
		if _, ok := s.initial[id]; !ok {
			return true
		}
	}
	return false
}

// Changes devuelve qué entró y qué salió de la cartera desde Init, ambos en
// orden de universo. Para el resumen de guardado y el log.
func (s *Session) Changes() (added, removed []string) {
	s.ensure()
	for _, st := range s.universe {
		_, now := s.assigned[st.ID]
		_, before := s.initial[st.ID]
		switch {
		case now && !before:
			added = append(added, st.ID)
		case before && !now:
			removed = append(removed, st.ID)
		}
	}
	return added, removed
}

func (s *Session) isAvailable(id string) bool {
	if _, known := s.index[id]; !known {
		return false
	}
	_, asig := s.assigned[id]
	return !asig
}

// storeMatchers son los predicados del panel de disponibles: texto libre
// sobre nombre y código, más región exacta.
func storeMatchers() filter.Matchers[entity.Store] {
	return filter.Matchers[entity.Store]{
		Search: func(st entity.Store, query string) bool {
			return filter.ContainsFold(st.Name, query) || filter.ContainsFold(st.Code, query)
		},
		Terms: map[string]func(entity.Store, string) bool{
			"region": func(st entity.Store, v string) bool {
				return filter.Fold(st.Region) == filter.Fold(v)
			},
		},
	}
}
