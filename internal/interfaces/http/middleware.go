package http

import "github.com/gofiber/fiber/v2"

// NoStore marca las respuestas de la API como no cacheables: carrito, pedidos y
// recomendaciones cambian en cada petición.
func NoStore() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.Next()
	}
}
