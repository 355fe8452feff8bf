package sandbox

import (
	"github.com/gofiber/fiber/v2"
)

// listStores atiende GET /stores. Cualquier rol autenticado puede leer el
// catálogo; limit 0 devuelve todo.
func (s *Server) listStores(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	if limit < 0 {
		limit = 0
	}
	return ok(c, s.data.Stores(limit))
}
