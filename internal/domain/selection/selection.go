// Package selection implementa el conjunto de selección de una vista: los IDs
// que el operador marcó sobre la lista renderizada actual.
//
// Contrato de vida: un Set pertenece a UNA vista renderizada. Cuando la vista
// cambia de forma (filtro aplicado, cambio de página, partición mutada) el
// dueño DEBE limpiarlo o intersecarlo contra la membresía nueva; el Set no lo
// hace solo. Una selección que sobrevive a ese cambio es un defecto, no una
// función.
package selection

import "sort"

// Set es un conjunto mutable de IDs de entidad. El valor cero está listo para
// usarse. No es seguro para uso concurrente: lo posee la goroutine de la vista.
type Set struct {
	ids map[string]struct{}
}

// New crea un Set vacío.
func New() *Set {
	return &Set{ids: make(map[string]struct{})}
}

func (s *Set) init() {
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
}

// Toggle alterna la pertenencia de id: lo agrega si no está, lo quita si está.
func (s *Set) Toggle(id string) {
	s.init()
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// SelectAll agrega todos los ids dados. Es ADITIVO: no limpia lo ya marcado,
// para que "seleccionar todo lo visible" se apile sobre marcas previas.
func (s *Set) SelectAll(ids []string) {
	s.init()
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

// Clear vacía la selección.
func (s *Set) Clear() {
	s.ids = nil
}

// Contains informa si id está seleccionado.
func (s *Set) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Size devuelve cuántos IDs hay seleccionados.
func (s *Set) Size() int {
	return len(s.ids)
}

// IDs devuelve los seleccionados ordenados (salida estable para render y tests).
func (s *Set) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Retain conserva solo los ids para los que keep devuelve true. Es la
// herramienta del dueño para intersecar la selección contra la membresía
// posterior a una mutación.
func (s *Set) Retain(keep func(id string) bool) {
	for id := range s.ids {
		if !keep(id) {
			delete(s.ids, id)
		}
	}
}

// RetainIn conserva solo los ids presentes en allowed.
func (s *Set) RetainIn(allowed map[string]struct{}) {
	s.Retain(func(id string) bool {
		_, ok := allowed[id]
		return ok
	})
}
