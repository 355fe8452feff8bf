package usecase

import (
	"sync"
	"time"
)

// debouncer compacta ráfagas de eventos: de cada ráfaga solo el último
// disparo ejecuta su fn, una vez pasada la espera. Así la búsqueda tecleada
// produce UNA consulta al backend por ráfaga, no una por tecla.
type debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay}
}

// Call agenda fn tras la espera; si había una ejecución pendiente la
// descarta. fn corre en su propia goroutine.
func (d *debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop descarta lo pendiente. No interrumpe una fn que ya arrancó.
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
