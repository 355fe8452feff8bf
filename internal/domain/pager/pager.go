// Package pager implementa el estado de paginación de la lista de usuarios:
// página actual (base 1), tamaño de página y total reportado por el backend.
// El total siempre viene del servidor; el Paginator solo lo refleja y acota
// la página dentro del rango válido.
package pager

// Paginator es el estado de paginación de una vista. No es seguro para uso
// concurrente: lo posee el caso de uso de la vista, bajo su propio candado.
type Paginator struct {
	page     int
	pageSize int
	total    int

	// OnChange se invoca cada vez que una operación de navegación cambia la
	// página o el tamaño. El dueño lo usa para agendar la recarga; no se
	// dispara en mutaciones silenciosas (Reset, SetTotal sin re-acote).
	OnChange func(page, pageSize int)
}

// New crea un Paginator en la página 1. Un pageSize menor que 1 se eleva a 1.
func New(pageSize int) *Paginator {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Paginator{page: 1, pageSize: pageSize}
}

// Page devuelve la página actual (base 1).
func (p *Paginator) Page() int { return p.page }

// PageSize devuelve el tamaño de página vigente.
func (p *Paginator) PageSize() int { return p.pageSize }

// TotalItems devuelve el total de filas reportado por el backend.
func (p *Paginator) TotalItems() int { return p.total }

// TotalPages deriva el número de páginas: ceil(total/tamaño), nunca menor
// que 1. Una lista vacía sigue teniendo una página vacía que renderizar.
func (p *Paginator) TotalPages() int {
	pages := (p.total + p.pageSize - 1) / p.pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// HasPrev informa si existe una página anterior.
func (p *Paginator) HasPrev() bool { return p.page > 1 }

// HasNext informa si existe una página siguiente.
func (p *Paginator) HasNext() bool { return p.page < p.TotalPages() }

// GoTo navega a la página n, acotada a [1, TotalPages]. Dispara OnChange
// solo si la página efectiva cambió.
func (p *Paginator) GoTo(n int) {
	n = p.clamp(n)
	if n == p.page {
		return
	}
	p.page = n
	p.fire()
}

// Next avanza una página (acotado).
func (p *Paginator) Next() { p.GoTo(p.page + 1) }

// Prev retrocede una página (acotado).
func (p *Paginator) Prev() { p.GoTo(p.page - 1) }

// SetPageSize cambia el tamaño de página y vuelve a la página 1: el corte en
// páginas anterior deja de tener sentido con otro tamaño. Dispara OnChange
// si algo cambió.
func (p *Paginator) SetPageSize(size int) {
	if size < 1 {
		size = 1
	}
	if size == p.pageSize {
		return
	}
	p.pageSize = size
	p.page = 1
	p.fire()
}

// SetTotal registra el total reportado por la última respuesta del backend y
// re-acota la página si quedó fuera de rango (filas borradas bajo nuestros
// pies). Nunca dispara OnChange: el total llega DE una carga, disparar otra
// aquí produciría un ciclo.
func (p *Paginator) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	p.total = total
	p.page = p.clamp(p.page)
}

// Reset vuelve a la página 1 sin disparar OnChange. Para cuando cambian los
// criterios de la vista y el dueño ya tiene una recarga agendada.
func (p *Paginator) Reset() {
	p.page = 1
}

// Window devuelve hasta max números de página centrados en la actual, para
// renderizar la botonera de paginación.
func (p *Paginator) Window(max int) []int {
	if max < 1 {
		max = 1
	}
	totalPages := p.TotalPages()
	if max > totalPages {
		max = totalPages
	}

	start := p.page - max/2
	if start < 1 {
		start = 1
	}
	if start+max-1 > totalPages {
		start = totalPages - max + 1
	}

	out := make([]int, max)
	for i := range out {
		out[i] = start + i
	}
	return out
}

func (p *Paginator) clamp(n int) int {
	if n < 1 {
		return 1
	}
	if tp := p.TotalPages(); n > tp {
		return tp
	}
	return n
}

func (p *Paginator) fire() {
	if p.OnChange != nil {
		p.OnChange(p.page, p.pageSize)
	}
}
