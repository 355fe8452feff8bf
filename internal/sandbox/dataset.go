package sandbox

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/application/dto"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/entity"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/filter"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/repository"
)

// errCuentaInactiva distingue en el login una cuenta deshabilitada de unas
// credenciales malas: la primera responde 403, las segundas 401.
var errCuentaInactiva = errors.New("cuenta inactiva")

// Dataset es el estado mutable del sandbox: usuarios en orden de alta más el
// catálogo de tiendas. Todo vive en memoria y se pierde al apagar; es un
// backend de desarrollo, no un almacén.
type Dataset struct {
	mu     sync.RWMutex
	users  []entity.User
	creds  map[string]string // loginID → hash bcrypt
	stores []entity.Store
}

// NewDataset crea un dataset vacío. Ver Seed para el de demostración.
func NewDataset() *Dataset {
	return &Dataset{creds: make(map[string]string)}
}

// ── Autenticación ─────────────────────────────────────────────────────────────

// Authenticate verifica credenciales y, si pasan, registra el último acceso.
// Devuelve domain.ErrCredenciales ante login o contraseña malos y
// errCuentaInactiva si la cuenta existe pero está deshabilitada.
func (d *Dataset) Authenticate(loginID, password string) (entity.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.indexByLogin(loginID)
	if i < 0 {
		return entity.User{}, domain.ErrCredenciales
	}
	hash := d.creds[d.users[i].LoginID]
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return entity.User{}, domain.ErrCredenciales
	}
	if !d.users[i].Active {
		return entity.User{}, errCuentaInactiva
	}

	now := time.Now()
	d.users[i].LastLoginAt = &now
	return d.users[i], nil
}

// ── Consulta ──────────────────────────────────────────────────────────────────

// List aplica los criterios con el mismo motor de filtrado que usa la vista
// (búsqueda plegada incluida) y recorta la página pedida. El total y el número
// de páginas describen el resultado filtrado completo, no la página.
func (d *Dataset) List(q repository.UserQuery) ([]entity.User, repository.PageMeta) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	crit := filter.Criteria{Search: q.Search}
	if q.Role != "" {
		crit = crit.WithTerm("role", q.Role)
	}
	if q.Leader != "" {
		crit = crit.WithTerm("leader", q.Leader)
	}
	if q.Active != nil {
		estado := "inactive"
		if *q.Active {
			estado = "active"
		}
		crit = crit.WithTerm("status", estado)
	}
	matched := filter.Apply(d.users, crit, dto.UserMatchers())

	page, limit := q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	total := len(matched)
	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	out := append([]entity.User(nil), matched[start:end]...)
	meta := repository.PageMeta{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
	return out, meta
}

// Stats recorre el padrón y arma el resumen global más la distribución por
// rol, ordenada por cuenta descendente y rol ascendente para que la salida
// sea estable.
func (d *Dataset) Stats() (entity.UserStats, []entity.RoleCount) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	stats := entity.UserStats{TotalUsers: len(d.users)}
	porRol := make(map[string]int)
	for _, u := range d.users {
		if u.Active {
			stats.ActiveUsers++
		} else {
			stats.InactiveUsers++
		}
		porRol[u.Role]++
	}

	dist := make([]entity.RoleCount, 0, len(porRol))
	for role, count := range porRol {
		dist = append(dist, entity.RoleCount{Role: role, Count: count})
	}
	sort.Slice(dist, func(i, j int) bool {
		if dist[i].Count != dist[j].Count {
			return dist[i].Count > dist[j].Count
		}
		return dist[i].Role < dist[j].Role
	})
	return stats, dist
}

// Get busca un usuario por ID.
func (d *Dataset) Get(id string) (entity.User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if i := d.indexByID(id); i >= 0 {
		return d.users[i], true
	}
	return entity.User{}, false
}

// ── Mutación ──────────────────────────────────────────────────────────────────

// Create da de alta un usuario. Si el ID viene vacío se asigna uno; userCode
// y loginId deben ser únicos en el padrón.
func (d *Dataset) Create(u entity.User, password string) (entity.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.indexByLogin(u.LoginID) >= 0 {
		return entity.User{}, fmt.Errorf("%w: loginId %q ya existe", domain.ErrDuplicate, u.LoginID)
	}
	if d.indexByCode(u.UserCode) >= 0 {
		return entity.User{}, fmt.Errorf("%w: userCode %q ya existe", domain.ErrDuplicate, u.UserCode)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return entity.User{}, err
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.StoreIDs = append([]string(nil), u.StoreIDs...)

	d.users = append(d.users, u)
	d.creds[u.LoginID] = hash
	return u, nil
}

// Update aplica una actualización parcial: solo los campos no nulos cambian.
// Un puntero a slice vacío en AssignedStores vacía la cartera; el nulo la
// deja como está. El loginId nunca cambia.
func (d *Dataset) Update(id string, in dto.UpdateUserRequest) (entity.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.indexByID(id)
	if i < 0 {
		return entity.User{}, domain.ErrUserNotFound
	}
	u := d.users[i]

	if in.UserCode != nil && *in.UserCode != u.UserCode {
		if j := d.indexByCode(*in.UserCode); j >= 0 && j != i {
			return entity.User{}, fmt.Errorf("%w: userCode %q ya existe", domain.ErrDuplicate, *in.UserCode)
		}
		u.UserCode = *in.UserCode
	}
	if in.DisplayName != nil {
		u.DisplayName = *in.DisplayName
	}
	if in.Role != nil {
		u.Role = *in.Role
	}
	if in.Leader != nil {
		u.LeaderName = *in.Leader
	}
	if in.Active != nil {
		u.Active = *in.Active
	}
	if in.StoreIDs != nil {
		// Slice nuevo: las copias entregadas por List/Get no deben ver
		// mutaciones posteriores.
		u.StoreIDs = append([]string(nil), (*in.StoreIDs)...)
	}
	if in.Password != nil {
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return entity.User{}, err
		}
		d.creds[u.LoginID] = hash
	}

	d.users[i] = u
	return u, nil
}

// Delete elimina un usuario por ID.
func (d *Dataset) Delete(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.remove(id)
}

// BulkDelete elimina un lote y devuelve cuántos existían.
func (d *Dataset) BulkDelete(ids []string) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := 0
	for _, id := range ids {
		if d.remove(id) {
			n++
		}
	}
	return n
}

// ── Tiendas ───────────────────────────────────────────────────────────────────

// AddStore agrega una tienda al catálogo.
func (d *Dataset) AddStore(st entity.Store) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stores = append(d.stores, st)
}

// Stores devuelve el catálogo en orden de alta; limit > 0 lo recorta.
func (d *Dataset) Stores(limit int) []entity.Store {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := append([]entity.Store(nil), d.stores...)
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

// ── Internos ──────────────────────────────────────────────────────────────────

// remove asume d.mu tomado en escritura.
func (d *Dataset) remove(id string) bool {
	i := d.indexByID(id)
	if i < 0 {
		return false
	}
	delete(d.creds, d.users[i].LoginID)
	d.users = append(d.users[:i], d.users[i+1:]...)
	return true
}

// Los índices asumen d.mu tomado. El padrón del sandbox son decenas de
// cuentas; el recorrido lineal no amerita un índice aparte.
func (d *Dataset) indexByID(id string) int {
	for i, u := range d.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (d *Dataset) indexByLogin(loginID string) int {
	for i, u := range d.users {
		if u.LoginID == loginID {
			return i
		}
	}
	return -1
}

func (d *Dataset) indexByCode(userCode string) int {
	for i, u := range d.users {
		if u.UserCode == userCode {
			return i
		}
	}
	return -1
}

// hashPassword usa el costo mínimo de bcrypt: el sandbox siembra decenas de
// cuentas al arrancar y los tests crean más; la dureza del hash no protege
// nada aquí.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return "", fmt.Errorf("hashear contraseña: %w", err)
	}
	return string(hash), nil
}
