package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/rastreo-envios/internal/application/auth"
	"github.com/tu-usuario/rastreo-envios/internal/application/usecase"
	"github.com/tu-usuario/rastreo-envios/internal/domain/entity"
	"github.com/tu-usuario/rastreo-envios/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	PackageUC *usecase.PackageUseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
	Log       *logger.Logger
}

// Router registra las rutas de la API.
//
// Las consultas de rastreo son públicas (la página de tracking no exige
// sesión); crear, actualizar, eliminar y la guía PDF requieren rol admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/signin", authHandler.Signin)

	packageHandler := NewPackageHandler(deps.PackageUC, deps.Log)
	packages := api.Group("/packages")

	// Lecturas públicas
	packages.Get("/", packageHandler.List)
	packages.Get("/:trackingNumber", packageHandler.GetByTrackingNumber)
	packages.Get("/:trackingNumber/route", packageHandler.Route)

	// Rutas administrativas (token + rol admin)
	admin := packages.Group("", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin))
	admin.Post("/", packageHandler.Create)
	admin.Patch("/:trackingNumber", packageHandler.Update)
	admin.Delete("/:trackingNumber", packageHandler.Delete)
	admin.Get("/:trackingNumber/label", packageHandler.Label)
}
