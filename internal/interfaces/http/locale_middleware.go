package http

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"
)

// LocalLocale clave en c.Locals del idioma resuelto para la petición.
const LocalLocale = "locale"

// LocaleMiddleware resuelve el idioma (?lang= o Accept-Language) y lo deja en c.Locals.
func LocaleMiddleware(msgs *Messages) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(LocalLocale, msgs.Resolve(c.Query("lang"), c.Get(fiber.HeaderAcceptLanguage)))
		return c.Next()
	}
}

// GetLocale devuelve el idioma del contexto (después del middleware), o fallback.
func GetLocale(c *fiber.Ctx, fallback language.Tag) language.Tag {
	if tag, ok := c.Locals(LocalLocale).(language.Tag); ok {
		return tag
	}
	return fallback
}
