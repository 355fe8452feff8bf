package dto

import (
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/entity"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/filter"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/repository"
)

// CreateUserRequest entrada para dar de alta un usuario (password en texto,
// el backend la hashea).
type CreateUserRequest struct {
	UserCode    string   `json:"userCode" validate:"required,min=2,max=40"`
	LoginID     string   `json:"loginId" validate:"required,min=3,max=60"`
	DisplayName string   `json:"displayName" validate:"required,min=1,max=200"`
	Password    string   `json:"password" validate:"required,min=6"`
	Role        string   `json:"role" validate:"required"`
	Leader      string   `json:"leader" validate:"omitempty,max=200"`
	Active      *bool    `json:"isActive"`
	StoreIDs    []string `json:"assignedStores"`
}

// ToEntity convierte el alta en entidad. Sin isActive explícito, la cuenta
// nace activa.
func (r CreateUserRequest) ToEntity() entity.User {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return entity.User{
		UserCode:    r.UserCode,
		LoginID:     r.LoginID,
		DisplayName: r.DisplayName,
		Role:        r.Role,
		LeaderName:  r.Leader,
		Active:      active,
		StoreIDs:    r.StoreIDs,
	}
}

// UpdateUserRequest actualización parcial: solo los campos presentes viajan.
type UpdateUserRequest struct {
	UserCode    *string   `json:"userCode,omitempty" validate:"omitempty,min=2,max=40"`
	DisplayName *string   `json:"displayName,omitempty" validate:"omitempty,min=1,max=200"`
	Role        *string   `json:"role,omitempty" validate:"omitempty,min=1"`
	Leader      *string   `json:"leader,omitempty" validate:"omitempty,max=200"`
	Password    *string   `json:"password,omitempty" validate:"omitempty,min=6"`
	Active      *bool     `json:"isActive,omitempty"`
	StoreIDs    *[]string `json:"assignedStores,omitempty"`
}

// ToUpdate traduce el request al puerto de repositorio.
func (r UpdateUserRequest) ToUpdate() repository.UserUpdate {
	return repository.UserUpdate{
		UserCode:    r.UserCode,
		DisplayName: r.DisplayName,
		Role:        r.Role,
		Leader:      r.Leader,
		Password:    r.Password,
		Active:      r.Active,
		StoreIDs:    r.StoreIDs,
	}
}

// UpdateFrom arma el request de wire desde el puerto (camino inverso, lo usa
// el adaptador REST).
func UpdateFrom(upd repository.UserUpdate) UpdateUserRequest {
	return UpdateUserRequest{
		UserCode:    upd.UserCode,
		DisplayName: upd.DisplayName,
		Role:        upd.Role,
		Leader:      upd.Leader,
		Password:    upd.Password,
		Active:      upd.Active,
		StoreIDs:    upd.StoreIDs,
	}
}

// LoginRequest entrada de login contra el backend.
type LoginRequest struct {
	LoginID  string `json:"loginId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT más el perfil autenticado.
type LoginResponse struct {
	Token string      `json:"token"`
	User  entity.User `json:"user"`
}

// StatsPayload bloque data de GET /users/stats.
type StatsPayload struct {
	Overview         entity.UserStats   `json:"overview"`
	RoleDistribution []entity.RoleCount `json:"roleDistribution"`
}

// BulkDeleteRequest lote de IDs para DELETE /users/bulk.
type BulkDeleteRequest struct {
	UserIDs []string `json:"userIds" validate:"required,min=1,dive,required"`
}

// BulkDeletePayload bloque data de la respuesta del borrado por lote.
type BulkDeletePayload struct {
	DeletedCount int `json:"deletedCount"`
}

// ImportResult resumen de importación tal como lo reporta el backend.
type ImportResult struct {
	Inserted int      `json:"inserted"`
	Updated  int      `json:"updated"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}

// ToSummary traduce el resumen al tipo del puerto.
func (r ImportResult) ToSummary() repository.ImportSummary {
	return repository.ImportSummary{
		Inserted: r.Inserted,
		Updated:  r.Updated,
		Failed:   r.Failed,
		Errors:   r.Errors,
	}
}

// UserMatchers predicados de filtrado en memoria sobre usuarios: búsqueda
// por código, nombre y login (plegada), más facetas exactas de rol, estado
// y líder. El sandbox filtra su padrón con esto, así el listado del backend
// de desarrollo y el filtrado local responden igual.
func UserMatchers() filter.Matchers[entity.User] {
	return filter.Matchers[entity.User]{
		Search: func(u entity.User, query string) bool {
			return filter.ContainsFold(u.UserCode, query) ||
				filter.ContainsFold(u.DisplayName, query) ||
				filter.ContainsFold(u.LoginID, query)
		},
		Terms: map[string]func(entity.User, string) bool{
			"role": func(u entity.User, v string) bool { return u.Role == v },
			"status": func(u entity.User, v string) bool {
				return (v == "active") == u.Active
			},
			"leader": func(u entity.User, v string) bool { return u.LeaderName == v },
		},
	}
}
