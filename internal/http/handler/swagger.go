package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/swaggo/swag"
)

// Swagger serves the API docs, pointing them at the host and scheme the
// caller used. defaultHost is used when the request names no host.
func Swagger(info *swag.Spec, defaultHost string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		host, scheme := swaggerTarget(c, defaultHost)
		info.Host = host
		info.Schemes = []string{scheme}
		return swagger.HandlerDefault(c)
	}
}

func swaggerTarget(c *fiber.Ctx, defaultHost string) (host, scheme string) {
	scheme = c.Protocol()
	if proto := c.Get(fiber.HeaderXForwardedProto); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	host = c.Get(fiber.HeaderXForwardedHost)
	if host == "" {
		host = c.Get(fiber.HeaderHost)
	}
	if host == "" {
		host = defaultHost
	}
	return host, scheme
}
