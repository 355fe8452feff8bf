package entity

import "time"

// Roles conocidos de la plataforma. El conjunto es ABIERTO: el backend puede
// introducir roles nuevos en cualquier momento, por lo que Role nunca se valida
// contra esta lista; las constantes existen solo para comparaciones puntuales
// (admin como rol tope) y para la tabla de prioridad del selector de líderes.
const (
	RoleAdmin = "admin"
	RoleTDS   = "TDS" // supervisor de desarrollo de territorio
	RoleTDL   = "TDL" // líder de equipo de territorio
	RolePRT   = "PRT" // promotor de punto de venta
)

// User representa una cuenta de la plataforma (personal de campo o administrador).
// La copia local es de solo lectura durante una sesión de vista; el dueño del
// registro es siempre el backend.
type User struct {
	ID          string     `json:"id"`
	UserCode    string     `json:"userCode"`
	DisplayName string     `json:"displayName"`
	LoginID     string     `json:"loginId"`
	Role        string     `json:"role"`
	LeaderName  string     `json:"leader,omitempty"` // vacío = sin líder asignado
	Active      bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	StoreIDs    []string   `json:"assignedStores,omitempty"`
}

// HasLeader informa si la cuenta tiene un líder asignado.
func (u User) HasLeader() bool {
	return u.LeaderName != ""
}

// AssignedSet devuelve los IDs de tienda asignados como conjunto.
func (u User) AssignedSet() map[string]struct{} {
	set := make(map[string]struct{}, len(u.StoreIDs))
	for _, id := range u.StoreIDs {
		set[id] = struct{}{}
	}
	return set
}
