package repository

import (
	"context"

	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/entity"
)

// UserQuery son los criterios de listado que viajan al backend. Los campos
// vacíos no restringen. Active usa puntero para distinguir "no filtrar" de
// "solo inactivos".
type UserQuery struct {
	Page   int
	Limit  int
	Role   string
	Active *bool
	Leader string
	Search string
}

// PageMeta refleja el bloque de paginación que el backend adjunta a cada
// listado. El total es siempre palabra del servidor.
type PageMeta struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

// UserUpdate es una actualización parcial: solo los campos no nulos se
// envían. Un puntero a slice vacío en StoreIDs SÍ vacía la cartera; el
// puntero nulo la deja como está.
type UserUpdate struct {
	UserCode    *string
	DisplayName *string
	Role        *string
	Leader      *string
	Active      *bool
	Password    *string
	StoreIDs    *[]string
}

// ImportSummary resume una importación masiva de usuarios.
type ImportSummary struct {
	Inserted int
	Updated  int
	Failed   int
	Errors   []string
}

// UserRepository define el puerto de acceso a usuarios (DIP). La
// implementación de producción habla con el backend REST; los tests usan
// dobles en memoria.
type UserRepository interface {
	// List devuelve una página de usuarios según los criterios dados.
	List(ctx context.Context, q UserQuery) ([]entity.User, PageMeta, error)
	// ListAll devuelve el pool completo, sin paginar. Alimenta la
	// resolución de jerarquía y el selector de líderes.
	ListAll(ctx context.Context) ([]entity.User, error)
	// Stats devuelve el resumen global y la distribución por rol.
	Stats(ctx context.Context) (entity.UserStats, []entity.RoleCount, error)
	// Get devuelve un usuario por ID.
	Get(ctx context.Context, id string) (entity.User, error)
	// Create da de alta un usuario con su contraseña inicial.
	Create(ctx context.Context, u entity.User, password string) (entity.User, error)
	// Update aplica una actualización parcial y devuelve el usuario final.
	Update(ctx context.Context, id string, upd UserUpdate) (entity.User, error)
	// Delete elimina un usuario.
	Delete(ctx context.Context, id string) error
	// BulkDelete elimina un lote por ID y devuelve cuántos borró.
	BulkDelete(ctx context.Context, ids []string) (int, error)
	// Export descarga el padrón completo como archivo opaco.
	Export(ctx context.Context) ([]byte, error)
	// Import sube un archivo de usuarios y devuelve el resumen del backend.
	Import(ctx context.Context, payload []byte, filename string) (ImportSummary, error)
}
