package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/rastreo-envios/internal/application/dto"
	"github.com/tu-usuario/rastreo-envios/internal/application/usecase"
	"github.com/tu-usuario/rastreo-envios/internal/domain"
	"github.com/tu-usuario/rastreo-envios/pkg/logger"
)

// PackageHandler maneja las operaciones CRUD de paquetes y la vista de mapa.
type PackageHandler struct {
	uc  *usecase.PackageUseCase
	log *logger.Logger
}

// NewPackageHandler construye el handler de paquetes.
func NewPackageHandler(uc *usecase.PackageUseCase, log *logger.Logger) *PackageHandler {
	return &PackageHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear paquete
// @Tags         packages
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePackageRequest  true  "sender, recipient, details"
// @Success      201   {object}  dto.PackageDataResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/packages [post]
func (h *PackageHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePackageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}
	// Validación siempre antes de cualquier efecto secundario.
	if err := dto.Validate(in); err != nil {
		var verr *dto.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: verr.Message})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	pkg, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateTracking) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: "Tracking number already exists"})
		}
		h.log.Error().Err(err).Msg("crear paquete")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to create package"})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.PackageDataResponse{
		Success: true,
		Data:    dto.ToPackageResponse(pkg),
	})
}

// List godoc
// @Summary      Listar paquetes por número de seguimiento y/o estado
// @Tags         packages
// @Produce      json
// @Param        trackingNumber  query  string  false  "número de seguimiento"
// @Param        status          query  string  false  "created | in-transit | delivered"
// @Success      200  {object}  dto.PackageListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/packages [get]
func (h *PackageHandler) List(c *fiber.Ctx) error {
	pkgs, err := h.uc.Find(c.Context(), c.Query("trackingNumber"), c.Query("status"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "No packages found"})
		}
		h.log.Error().Err(err).Msg("listar paquetes")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to retrieve package(s)"})
	}
	return c.JSON(dto.PackageListResponse{
		Success:  true,
		Packages: dto.ToPackageList(pkgs),
	})
}

// GetByTrackingNumber godoc
// @Summary      Obtener un paquete por número de seguimiento
// @Tags         packages
// @Produce      json
// @Param        trackingNumber  path  string  true  "número de seguimiento"
// @Success      200  {object}  dto.SinglePackageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/packages/{trackingNumber} [get]
func (h *PackageHandler) GetByTrackingNumber(c *fiber.Ctx) error {
	pkg, err := h.uc.GetByTrackingNumber(c.Context(), c.Params("trackingNumber"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Package not found"})
		}
		h.log.Error().Err(err).Msg("obtener paquete")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to retrieve package(s)"})
	}
	return c.JSON(dto.SinglePackageResponse{
		Success: true,
		Package: dto.ToPackageResponse(pkg),
	})
}

// Update godoc
// @Summary      Actualización parcial de un paquete
// @Tags         packages
// @Accept       json
// @Produce      json
// @Param        trackingNumber  path  string                    true  "número de seguimiento"
// @Param        body            body  dto.UpdatePackageRequest  true  "campos a actualizar"
// @Success      200  {object}  dto.SinglePackageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/packages/{trackingNumber} [patch]
func (h *PackageHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePackageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}
	if err := dto.Validate(in); err != nil {
		var verr *dto.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: verr.Message})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	pkg, err := h.uc.Update(c.Context(), c.Params("trackingNumber"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Package not found"})
		}
		h.log.Error().Err(err).Msg("actualizar paquete")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Server error. Please try again later."})
	}
	return c.JSON(dto.SinglePackageResponse{
		Success: true,
		Package: dto.ToPackageResponse(pkg),
	})
}

// Delete godoc
// @Summary      Eliminar un paquete
// @Tags         packages
// @Produce      json
// @Param        trackingNumber  path  string  true  "número de seguimiento"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/packages/{trackingNumber} [delete]
func (h *PackageHandler) Delete(c *fiber.Ctx) error {
	err := h.uc.Delete(c.Context(), c.Params("trackingNumber"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Package not found"})
		}
		h.log.Error().Err(err).Msg("eliminar paquete")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to delete package"})
	}
	return c.JSON(dto.MessageResponse{
		Success: true,
		Message: "Package deleted successfully",
	})
}

// Route godoc
// @Summary      Datos de mapa: dirección actual y polilínea hacia el destino
// @Tags         packages
// @Produce      json
// @Param        trackingNumber  path  string  true  "número de seguimiento"
// @Success      200  {object}  dto.RouteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/packages/{trackingNumber}/route [get]
func (h *PackageHandler) Route(c *fiber.Ctx) error {
	info, err := h.uc.RouteInfo(c.Context(), c.Params("trackingNumber"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Package not found"})
		}
		h.log.Error().Err(err).Msg("ruta del paquete")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to retrieve route"})
	}
	return c.JSON(dto.RouteResponse{
		Success:        true,
		CurrentAddress: info.CurrentAddress,
		Route:          info.Route,
	})
}

// Label godoc
// @Summary      Guía de envío en PDF
// @Tags         packages
// @Produce      application/pdf
// @Param        trackingNumber  path  string  true  "número de seguimiento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/packages/{trackingNumber}/label [get]
func (h *PackageHandler) Label(c *fiber.Ctx) error {
	trackingNumber := c.Params("trackingNumber")
	pdfBytes, err := h.uc.Label(c.Context(), trackingNumber)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Package not found"})
		}
		h.log.Error().Err(err).Msg("guía de envío")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to generate label"})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+trackingNumber+`.pdf"`)
	return c.Send(pdfBytes)
}
