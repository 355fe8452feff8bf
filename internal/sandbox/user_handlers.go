package sandbox

import (
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/application/dto"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/repository"
)

const (
	defaultPageSize = 10
	// El cliente trae el padrón completo en una sola página para resolver
	// jerarquía, así que el tope es deliberadamente alto.
	maxPageSize = 10000

	maxImportBytes = 10 << 20
)

// listUsers atiende GET /users: filtrado del lado servidor más paginación.
func (s *Server) listUsers(c *fiber.Ctx) error {
	q := repository.UserQuery{
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", defaultPageSize),
		Role:   c.Query("role"),
		Leader: c.Query("leader"),
		Search: c.Query("search"),
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultPageSize
	}
	if q.Limit > maxPageSize {
		q.Limit = maxPageSize
	}
	if raw := c.Query("isActive"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "isActive debe ser true o false"})
		}
		q.Active = &active
	}

	users, meta := s.data.List(q)
	return okPage(c, users, meta)
}

// userStats atiende GET /users/stats.
func (s *Server) userStats(c *fiber.Ctx) error {
	overview, dist := s.data.Stats()
	return ok(c, dto.StatsPayload{Overview: overview, RoleDistribution: dist})
}

// getUser atiende GET /users/:id.
func (s *Server) getUser(c *fiber.Ctx) error {
	u, found := s.data.Get(c.Params("id"))
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
	}
	return ok(c, u)
}

// createUser atiende POST /users. Valida con las mismas reglas que el
// cliente: un request que pasa allá pasa acá.
func (s *Server) createUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	created, err := s.data.Create(in.ToEntity(), in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	s.log.Info().Str("user_id", created.ID).Str("login_id", created.LoginID).Msg("usuario creado")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": created})
}

// updateUser atiende PUT /users/:id con semántica parcial.
func (s *Server) updateUser(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	updated, err := s.data.Update(c.Params("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
		case errors.Is(err, domain.ErrDuplicate):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return ok(c, updated)
}

// deleteUser atiende DELETE /users/:id.
func (s *Server) deleteUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if !s.data.Delete(id) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
	}
	s.log.Info().Str("user_id", id).Msg("usuario eliminado")
	return c.JSON(fiber.Map{"success": true, "message": "usuario eliminado"})
}

// bulkDeleteUsers atiende DELETE /users/bulk: un solo request para el lote.
func (s *Server) bulkDeleteUsers(c *fiber.Ctx) error {
	var in dto.BulkDeleteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	n := s.data.BulkDelete(in.UserIDs)
	s.log.Info().Int("requested", len(in.UserIDs)).Int("deleted", n).Msg("borrado masivo")
	return ok(c, dto.BulkDeletePayload{DeletedCount: n})
}

// exportUsers atiende GET /users/export con el padrón como descarga CSV.
func (s *Server) exportUsers(c *fiber.Ctx) error {
	payload, err := s.data.ExportCSV()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="usuarios.csv"`)
	return c.Send(payload)
}

// importUsers atiende POST /users/import (multipart, campo "file"). El
// backend real también acepta XLSX; el sandbox solo habla CSV.
func (s *Server) importUsers(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "archivo 'file' requerido"})
	}
	if ext := strings.ToLower(filepath.Ext(fh.Filename)); ext != ".csv" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el sandbox solo importa CSV"})
	}

	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no se pudo abrir el archivo"})
	}
	defer f.Close()
	payload, err := io.ReadAll(io.LimitReader(f, maxImportBytes))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no se pudo leer el archivo"})
	}

	res, err := s.data.ImportCSV(payload)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	s.log.Info().Int("inserted", res.Inserted).Int("updated", res.Updated).Int("failed", res.Failed).Msg("importación de usuarios")
	return ok(c, res)
}
