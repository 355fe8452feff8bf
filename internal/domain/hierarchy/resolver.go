// Package hierarchy resuelve la jerarquía de liderazgo del personal de campo.
//
// La plataforma no persiste un organigrama: cada usuario lleva apenas el
// nombre de su líder en un campo de texto. La jerarquía efectiva se DERIVA de
// los datos cargados (qué roles aparecen liderando a qué roles) y cuando no
// hay nada observado se arranca con un conjunto semilla configurable (por
// defecto, solo admin). El conjunto de roles es abierto; el resolutor nunca
// rechaza un rol que no conoce, solo lo ordena al final.
package hierarchy

import (
	"sort"

	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/entity"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/filter"
)

// Config gobierna la derivación.
type Config struct {
	// Bootstrap son los roles elegibles como líder cuando los datos no
	// muestran ningún liderazgo para el rol del sujeto.
	Bootstrap []string
	// Priority es el orden de render de roles, del más alto al más bajo.
	// Roles fuera de la tabla se ordenan después, alfabéticamente.
	Priority []string
}

// DefaultConfig devuelve la configuración de la plataforma: semilla admin y
// el escalafón admin > TDS > TDL > PRT.
func DefaultConfig() Config {
	return Config{
		Bootstrap: []string{entity.RoleAdmin},
		Priority:  []string{entity.RoleAdmin, entity.RoleTDS, entity.RoleTDL, entity.RolePRT},
	}
}

// Option es una opción del selector de líder. Name es el valor que se
// persiste (el login del líder); Label lo que se muestra. Current marca la
// opción que representa el valor vigente del usuario editado, a lo sumo una.
type Option struct {
	Name    string
	Label   string
	Role    string
	Current bool
}

// Resolver deriva roles líderes y candidatos a partir de un pool de usuarios.
// Es puro: no guarda el pool, cada llamada lo recibe.
type Resolver struct {
	cfg  Config
	prio map[string]int
}

// New crea un Resolver con la configuración dada. Con el valor cero de
// Config no hay semilla ni escalafón: todo rol es "desconocido".
func New(cfg Config) *Resolver {
	prio := make(map[string]int, len(cfg.Priority))
	for i, r := range cfg.Priority {
		prio[r] = i
	}
	return &Resolver{cfg: cfg, prio: prio}
}

// LeaderRoles devuelve los roles que pueden liderar a subjectRole, según lo
// observado en pool: para cada usuario del rol sujeto con líder asignado, se
// resuelve el rol de ese líder. Sin observaciones, devuelve la semilla.
// El resultado viene ordenado por escalafón.
func (r *Resolver) LeaderRoles(pool []entity.User, subjectRole string) []string {
	seen := make(map[string]struct{})
	for _, u := range pool {
		if u.Role != subjectRole || !u.HasLeader() {
			continue
		}
		if role, ok := r.RoleOf(pool, u.LeaderName); ok {
			seen[role] = struct{}{}
		}
	}

	roles := make([]string, 0, len(seen))
	for role := range seen {
		roles = append(roles, role)
	}
	if len(roles) == 0 {
		roles = append(roles, r.cfg.Bootstrap...)
	}
	r.sortRoles(roles)
	return roles
}

// RequiresLeader informa si un usuario del rol dado debe llevar líder. El rol
// tope (admin) nunca lo lleva; un rol cuyos miembros ya traen líder en los
// datos lo lleva con certeza; para el resto decide el complemento: requiere
// líder todo rol que no se observe a sí mismo liderando a alguien.
func (r *Resolver) RequiresLeader(pool []entity.User, role string) bool {
	if role == entity.RoleAdmin {
		return false
	}
	leading := make(map[string]struct{})
	for _, u := range pool {
		if !u.HasLeader() {
			continue
		}
		if u.Role == role {
			return true
		}
		if lr, ok := r.RoleOf(pool, u.LeaderName); ok {
			leading[lr] = struct{}{}
		}
	}
	_, lidera := leading[role]
	return !lidera
}

// Candidates arma las opciones del selector de líder para un usuario del rol
// dado. Los candidatos son los usuarios ACTIVOS del pool cuyo rol es elegible
// según LeaderRoles, ordenados por escalafón y luego por login. Si no hay
// ninguno, se sintetizan opciones a partir de los nombres de líder crudos
// presentes en los datos: el selector nunca queda vacío mientras los datos
// mencionen líderes.
//
// selected es el líder vigente del usuario editado. Si coincide exacto con
// una opción, esa opción queda marcada Current; si no, se intenta una
// coincidencia por subcadena en ambos sentidos (plegada); si tampoco, se
// AGREGA una opción con el valor crudo para no perder en silencio lo que el
// backend tiene guardado.
func (r *Resolver) Candidates(pool []entity.User, subjectRole, selected string) []Option {
	eligible := make(map[string]struct{})
	for _, role := range r.LeaderRoles(pool, subjectRole) {
		eligible[role] = struct{}{}
	}

	opts := make([]Option, 0, 8)
	for _, u := range pool {
		if !u.Active {
			continue
		}
		if _, ok := eligible[u.Role]; !ok {
			continue
		}
		opts = append(opts, Option{Name: u.LoginID, Label: label(u), Role: u.Role})
	}

	if len(opts) == 0 {
		opts = r.placeholders(pool)
	}

	sort.SliceStable(opts, func(i, j int) bool {
		pi, pj := r.prioIdx(opts[i].Role), r.prioIdx(opts[j].Role)
		if pi != pj {
			return pi < pj
		}
		return filter.Fold(opts[i].Name) < filter.Fold(opts[j].Name)
	})

	return r.markCurrent(opts, selected)
}

// RoleOf resuelve el rol del usuario al que apunta un nombre de líder:
// primero por login exacto, luego por nombre visible exacto, luego por
// cualquiera de los dos plegados. Los datos traen de todo.
func (r *Resolver) RoleOf(pool []entity.User, name string) (string, bool) {
	if name == "" {
		return "", false
	}
	for _, u := range pool {
		if u.LoginID == name || u.DisplayName == name {
			return u.Role, true
		}
	}
	folded := filter.Fold(name)
	for _, u := range pool {
		if filter.Fold(u.LoginID) == folded || filter.Fold(u.DisplayName) == folded {
			return u.Role, true
		}
	}
	return "", false
}

// Profiles devuelve los líderes distintos mencionados en pool con su rol
// resuelto (vacío si el nombre no apunta a nadie cargado), ordenados por
// escalafón y nombre. Para el resumen de jerarquía de la consola.
func (r *Resolver) Profiles(pool []entity.User) []entity.LeaderProfile {
	seen := make(map[string]struct{})
	out := make([]entity.LeaderProfile, 0, 8)
	for _, u := range pool {
		if !u.HasLeader() {
			continue
		}
		if _, dup := seen[u.LeaderName]; dup {
			continue
		}
		seen[u.LeaderName] = struct{}{}
		role, _ := r.RoleOf(pool, u.LeaderName)
		out = append(out, entity.LeaderProfile{Username: u.LeaderName, Role: role})
	}
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := r.prioIdx(out[i].Role), r.prioIdx(out[j].Role)
		if pi != pj {
			return pi < pj
		}
		return filter.Fold(out[i].Username) < filter.Fold(out[j].Username)
	})
	return out
}

func (r *Resolver) placeholders(pool []entity.User) []Option {
	seen := make(map[string]struct{})
	opts := make([]Option, 0, 4)
	for _, u := range pool {
		if !u.HasLeader() {
			continue
		}
		if _, dup := seen[u.LeaderName]; dup {
			continue
		}
		seen[u.LeaderName] = struct{}{}
		role, _ := r.RoleOf(pool, u.LeaderName)
		opts = append(opts, Option{Name: u.LeaderName, Label: u.LeaderName, Role: role})
	}
	return opts
}

func (r *Resolver) markCurrent(opts []Option, selected string) []Option {
	if selected == "" {
		return opts
	}
	for i := range opts {
		if opts[i].Name == selected {
			opts[i].Current = true
			return opts
		}
	}
	for i := range opts {
		if filter.ContainsFold(opts[i].Name, selected) || filter.ContainsFold(selected, opts[i].Name) {
			opts[i].Current = true
			return opts
		}
	}
	return append(opts, Option{Name: selected, Label: selected, Current: true})
}

func (r *Resolver) prioIdx(role string) int {
	if i, ok := r.prio[role]; ok {
		return i
	}
	return len(r.cfg.Priority)
}

func (r *Resolver) sortRoles(roles []string) {
	sort.SliceStable(roles, func(i, j int) bool {
		pi, pj := r.prioIdx(roles[i]), r.prioIdx(roles[j])
		if pi != pj {
			return pi < pj
		}
		return filter.Fold(roles[i]) < filter.Fold(roles[j])
	})
}

func label(u entity.User) string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.LoginID
}
