// Package filter implementa el motor de filtrado en memoria de las vistas:
// búsqueda de texto libre más facetas exactas (rol, estado, líder), combinadas
// con AND. El motor es genérico sobre el tipo de fila; cada vista aporta sus
// predicados vía Matchers.
//
// La comparación de texto es insensible a mayúsculas Y a diacríticos: los
// nombres del personal de campo vienen con tildes vietnamitas/españolas y el
// operador rara vez las escribe ("nguyen" debe encontrar a "Nguyễn").
package filter

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Criteria describe qué pidió el operador: texto libre y facetas por nombre.
// El valor cero no restringe nada. Un criterio vacío (cadena vacía o solo
// espacios) tampoco restringe.
type Criteria struct {
	Search string
	Terms  map[string]string
}

// IsZero informa si ningún criterio está activo.
func (c Criteria) IsZero() bool {
	if strings.TrimSpace(c.Search) != "" {
		return false
	}
	for _, v := range c.Terms {
		if v != "" {
			return false
		}
	}
	return true
}

// WithTerm devuelve una copia de c con la faceta name fijada en value.
// No muta el receptor: Criteria viaja por valor entre vista y motor.
func (c Criteria) WithTerm(name, value string) Criteria {
	terms := make(map[string]string, len(c.Terms)+1)
	for k, v := range c.Terms {
		terms[k] = v
	}
	terms[name] = value
	c.Terms = terms
	return c
}

// Matchers son los predicados de una vista. Search recibe la consulta ya
// plegada (ver Fold); los predicados de Terms reciben el valor crudo de la
// faceta. Una faceta activa SIN predicado registrado no coincide con nada:
// un criterio que el motor no sabe evaluar debe vaciar la lista, no
// ignorarse en silencio.
type Matchers[T any] struct {
	Search func(item T, query string) bool
	Terms  map[string]func(item T, value string) bool
}

// Apply devuelve las filas de items que satisfacen TODOS los criterios
// activos de c. Es una función pura: no muta items y conserva el orden de
// entrada. Un solo recorrido.
func Apply[T any](items []T, c Criteria, m Matchers[T]) []T {
	query := Fold(strings.TrimSpace(c.Search))

	out := make([]T, 0, len(items))
	for _, it := range items {
		if matches(it, query, c, m) {
			out = append(out, it)
		}
	}
	return out
}

func matches[T any](it T, query string, c Criteria, m Matchers[T]) bool {
	if query != "" {
		if m.Search == nil || !m.Search(it, query) {
			return false
		}
	}
	for name, value := range c.Terms {
		if value == "" {
			continue
		}
		pred, ok := m.Terms[name]
		if !ok || pred == nil {
			return false
		}
		if !pred(it, value) {
			return false
		}
	}
	return true
}

// Fold normaliza s para comparación: minúsculas y sin marcas diacríticas
// ("Nguyễn" → "nguyen", "Ramírez" → "ramirez").
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// ContainsFold informa si needle aparece dentro de haystack bajo Fold.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}
