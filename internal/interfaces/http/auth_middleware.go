package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/rastreo-envios/internal/application/dto"
	"github.com/tu-usuario/rastreo-envios/pkg/jwt"
)

// CookieToken nombre de la cookie de sesión emitida en signin.
const CookieToken = "token"

// Locals keys para la identidad del llamador en Fiber.
const (
	LocalUserID      = "user_id"
	LocalRole        = "role"
	LocalAccountType = "account_type"
)

// AuthMiddleware valida el token de sesión (cookie `token` o header
// `Authorization: Bearer`) y carga userID, role y accountType en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(CookieToken)
		if tokenString == "" {
			authHeader := c.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenString = strings.TrimSpace(parts[1])
			}
		}
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
		}

		userID, role, accountType, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Invalid Token"})
		}

		c.Locals(LocalUserID, userID)
		c.Locals(LocalRole, role)
		c.Locals(LocalAccountType, accountType)
		return c.Next()
	}
}

// RequireRole autoriza solo a los roles indicados. Debe usarse DESPUÉS de
// AuthMiddleware (necesita LocalRole). La decisión es puramente sobre la
// identidad verificada del token frente a la lista permitida de la ruta.
func RequireRole(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
		}
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "Access Denied"})
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	return localString(c, LocalRole)
}

// GetAccountType devuelve el tipo de cuenta del contexto.
func GetAccountType(c *fiber.Ctx) string {
	return localString(c, LocalAccountType)
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
