// Package sandbox es el backend de desarrollo embebido: una réplica en
// memoria de la API de administración de la plataforma POSM. Expone los
// mismos endpoints, el mismo sobre JSON y la misma taxonomía de errores que
// el backend real, de modo que el cliente corre completo sin infraestructura.
//
// El filtrado del lado servidor reutiliza el motor de la vista (filter.Apply
// con dto.UserMatchers), así la búsqueda plegada se comporta igual en ambos
// extremos del cable.
package sandbox

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/application/dto"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/entity"
	"github.com/PhuocTran96/posm-survey-collection-sub002/internal/domain/repository"
	"github.com/PhuocTran96/posm-survey-collection-sub002/pkg/config"
	"github.com/PhuocTran96/posm-survey-collection-sub002/pkg/logger"
)

// Server monta la API del sandbox sobre Fiber.
type Server struct {
	data *Dataset
	jwt  config.JWTConfig
	log  *logger.Logger
	app  *fiber.App

	mu     sync.RWMutex
	broken map[string]bool
}

// New construye el servidor sobre el dataset dado. log nil silencia la
// bitácora (útil en tests).
func New(data *Dataset, jwtCfg config.JWTConfig, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	s := &Server{
		data:   data,
		jwt:    jwtCfg,
		log:    log.Component("sandbox"),
		broken: make(map[string]bool),
	}
	s.app = s.buildApp()
	return s
}

// App expone la aplicación Fiber para tests (app.Test) y listeners propios.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen bloquea sirviendo en addr hasta Shutdown.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown apaga el servidor drenando las conexiones activas.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) buildApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "posm-sandbox",
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(s.failpoint)

	api := app.Group("/api")
	api.Get("/health", s.health)
	api.Post("/auth/login", s.login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(s.jwt.Secret))

	// La administración de usuarios es de rol admin; el personal de campo
	// tiene sus propias pantallas fuera de este sandbox.
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	users.Get("/stats", s.userStats)
	users.Get("/export", s.exportUsers)
	users.Post("/import", s.importUsers)
	users.Delete("/bulk", s.bulkDeleteUsers)
	users.Get("/", s.listUsers)
	users.Post("/", s.createUser)
	users.Get("/:id", s.getUser)
	users.Put("/:id", s.updateUser)
	users.Delete("/:id", s.deleteUser)

	stores := protected.Group("/stores")
	stores.Get("/", s.listStores)

	return app
}

func (s *Server) health(c *fiber.Ctx) error {
	return ok(c, fiber.Map{"status": "ok", "service": "posm-sandbox"})
}

// ── Interruptor de fallos ─────────────────────────────────────────────────────

// Break arma un 500 para un request concreto, nombrado "MÉTODO /ruta" con la
// ruta tal como viaja ("GET /api/users/stats", "PUT /api/users/u2"). Permite
// ensayar fallos de un solo endpoint: la carga parcial de la vista, un lote
// donde una sola cuenta no se pudo actualizar.
func (s *Server) Break(route string) {
	s.mu.Lock()
	s.broken[route] = true
	s.mu.Unlock()
}

// Restore desarma el fallo de Break.
func (s *Server) Restore(route string) {
	s.mu.Lock()
	delete(s.broken, route)
	s.mu.Unlock()
}

func (s *Server) failpoint(c *fiber.Ctx) error {
	key := c.Method() + " " + c.Path()
	s.mu.RLock()
	armed := s.broken[key]
	s.mu.RUnlock()
	if !armed {
		return c.Next()
	}
	s.log.Warn().Str("route", key).Msg("fallo forzado por el interruptor de pruebas")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "FORCED_FAILURE", Message: "fallo forzado: " + key})
}

// ── Sobre de respuesta ────────────────────────────────────────────────────────

// ok responde el sobre estándar con data.
func ok(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

// okPage responde un listado con su bloque de paginación.
func okPage(c *fiber.Ctx, data any, meta repository.PageMeta) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"pagination": dto.PageInfo{
			Page:       meta.Page,
			Limit:      meta.Limit,
			Total:      meta.Total,
			TotalPages: meta.TotalPages,
		},
	})
}
