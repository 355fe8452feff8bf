package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/application/dto"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/entity"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/repository"
)

// maxImportBytes tope local para archivos de importación; el backend tendrá
// el suyo, pero no vale la pena subir lo que seguro rebota.
const maxImportBytes = 10 << 20

// UserAdminUseCase altas, ediciones y bajas individuales, más la importación
// y exportación del padrón. Valida localmente antes de gastar un request.
type UserAdminUseCase struct {
	users repository.UserRepository
}

// NewUserAdminUseCase construye el caso de uso.
func NewUserAdminUseCase(users repository.UserRepository) *UserAdminUseCase {
	return &UserAdminUseCase{users: users}
}

// Get trae un usuario por ID.
func (uc *UserAdminUseCase) Get(ctx context.Context, id string) (entity.User, error) {
	return uc.users.Get(ctx, id)
}

// Create valida el alta y la envía. Un request inválido corta acá, sin HTTP.
func (uc *UserAdminUseCase) Create(ctx context.Context, req dto.CreateUserRequest) (entity.User, error) {
	if err := dto.Validate(req); err != nil {
		return entity.User{}, err
	}
	return uc.users.Create(ctx, req.ToEntity(), req.Password)
}

// Update valida la edición parcial y la envía.
func (uc *UserAdminUseCase) Update(ctx context.Context, id string, req dto.UpdateUserRequest) (entity.User, error) {
	if err := dto.Validate(req); err != nil {
		return entity.User{}, err
	}
	return uc.users.Update(ctx, id, req.ToUpdate())
}

// Delete elimina un usuario.
func (uc *UserAdminUseCase) Delete(ctx context.Context, id string) error {
	return uc.users.Delete(ctx, id)
}

// Export descarga el padrón como archivo opaco; el formato lo decide el
// backend.
func (uc *UserAdminUseCase) Export(ctx context.Context) ([]byte, error) {
	return uc.users.Export(ctx)
}

// Import sube un archivo de padrón. Localmente solo se valida extensión y
// tamaño; el contenido lo juzga el backend.
func (uc *UserAdminUseCase) Import(ctx context.Context, filename string, payload []byte) (repository.ImportSummary, error) {
	if err := validateImportFile(filename, payload); err != nil {
		return repository.ImportSummary{}, err
	}
	return uc.users.Import(ctx, payload, filename)
}

func validateImportFile(filename string, payload []byte) error {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv", ".xlsx":
	default:
		return fmt.Errorf("%w: extensión no soportada %q (se aceptan .csv y .xlsx)", domain.ErrValidacion, ext)
	}
	if len(payload) == 0 {
		return fmt.Errorf("%w: archivo vacío", domain.ErrValidacion)
	}
	if len(payload) > maxImportBytes {
		return fmt.Errorf("%w: archivo demasiado grande (%d bytes)", domain.ErrValidacion, len(payload))
	}
	return nil
}
