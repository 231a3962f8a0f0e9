package dto

import (
	"time"

	"github.com/tu-usuario/rastreo-envios/internal/domain/entity"
)

// ── Requests ──────────────────────────────────────────────────────────────────

// PartyRequest remitente o destinatario en la creación.
type PartyRequest struct {
	FullName string `json:"fullName" validate:"required,max=255"`
	Address  string `json:"address" validate:"required,max=255"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// DimensionsRequest dimensiones del paquete (todas positivas).
type DimensionsRequest struct {
	Length float64 `json:"length" validate:"gt=0"`
	Width  float64 `json:"width" validate:"gt=0"`
	Height float64 `json:"height" validate:"gt=0"`
}

// DetailsRequest contenido del envío en la creación.
type DetailsRequest struct {
	Description string            `json:"description" validate:"required,max=255"`
	Weight      float64           `json:"weight" validate:"gt=0"`
	Dimensions  DimensionsRequest `json:"dimensions"`
	Value       float64           `json:"value" validate:"gt=0"`
}

// CreatePackageRequest payload de POST /api/packages. El orden de los campos
// determina el orden de los mensajes de validación.
type CreatePackageRequest struct {
	Recipient PartyRequest   `json:"recipient"`
	Sender    PartyRequest   `json:"sender"`
	Details   DetailsRequest `json:"details"`
	Status    string         `json:"status" validate:"omitempty,oneof=created in-transit delivered"`
}

// PartyPatch actualización parcial de remitente/destinatario: solo los
// campos presentes se aplican sobre lo almacenado.
type PartyPatch struct {
	FullName *string `json:"fullName" validate:"omitempty,min=1"`
	Address  *string `json:"address" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

// DimensionsPatch actualización parcial de dimensiones.
type DimensionsPatch struct {
	Length *float64 `json:"length" validate:"omitempty,gt=0"`
	Width  *float64 `json:"width" validate:"omitempty,gt=0"`
	Height *float64 `json:"height" validate:"omitempty,gt=0"`
}

// DetailsPatch actualización parcial del contenido.
type DetailsPatch struct {
	Description *string          `json:"description" validate:"omitempty,min=1"`
	Weight      *float64         `json:"weight" validate:"omitempty,gt=0"`
	Dimensions  *DimensionsPatch `json:"dimensions"`
	Value       *float64         `json:"value" validate:"omitempty,gt=0"`
}

// UpdatePackageRequest payload de PATCH /api/packages/:trackingNumber.
// Todos los grupos son opcionales; los ausentes no se tocan.
type UpdatePackageRequest struct {
	Sender    *PartyPatch   `json:"sender"`
	Recipient *PartyPatch   `json:"recipient"`
	Details   *DetailsPatch `json:"details"`
	Status    *string       `json:"status" validate:"omitempty,oneof=created in-transit delivered"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// LocationResponse coordenada en respuestas.
type LocationResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PartyResponse remitente/destinatario en respuestas.
type PartyResponse struct {
	FullName string `json:"fullName"`
	Address  string `json:"address"`
	Email    string `json:"email,omitempty"`
}

// DimensionsResponse dimensiones en respuestas.
type DimensionsResponse struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DetailsResponse contenido en respuestas.
type DetailsResponse struct {
	Description string             `json:"description"`
	Weight      float64            `json:"weight"`
	Dimensions  DimensionsResponse `json:"dimensions"`
	Value       float64            `json:"value"`
}

// PackageResponse un paquete completo en respuestas.
type PackageResponse struct {
	ID                  string            `json:"id"`
	TrackingNumber      string            `json:"trackingNumber"`
	Sender              PartyResponse     `json:"sender"`
	Recipient           PartyResponse     `json:"recipient"`
	Details             DetailsResponse   `json:"details"`
	Status              string            `json:"status"`
	CurrentLocation     *LocationResponse `json:"currentLocation,omitempty"`
	DestinationLocation *LocationResponse `json:"destinationLocation,omitempty"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
}

// PackageDataResponse envoltura de POST /api/packages.
type PackageDataResponse struct {
	Success bool            `json:"success"`
	Data    PackageResponse `json:"data"`
}

// PackageListResponse envoltura de GET /api/packages.
type PackageListResponse struct {
	Success  bool              `json:"success"`
	Packages []PackageResponse `json:"packages"`
}

// SinglePackageResponse envoltura de GET/PATCH de un paquete.
type SinglePackageResponse struct {
	Success bool            `json:"success"`
	Package PackageResponse `json:"package"`
}

// RouteResponse datos para la vista de mapa de un paquete.
type RouteResponse struct {
	Success        bool         `json:"success"`
	CurrentAddress string       `json:"currentAddress"`
	Route          [][2]float64 `json:"route"`
}

// ToPackageResponse convierte la entidad al DTO de salida.
func ToPackageResponse(p *entity.Package) PackageResponse {
	resp := PackageResponse{
		ID:             p.ID,
		TrackingNumber: p.TrackingNumber,
		Sender: PartyResponse{
			FullName: p.Sender.FullName,
			Address:  p.Sender.Address,
			Email:    p.Sender.Email,
		},
		Recipient: PartyResponse{
			FullName: p.Recipient.FullName,
			Address:  p.Recipient.Address,
			Email:    p.Recipient.Email,
		},
		Details: DetailsResponse{
			Description: p.Details.Description,
			Weight:      p.Details.Weight,
			Dimensions: DimensionsResponse{
				Length: p.Details.Dimensions.Length,
				Width:  p.Details.Dimensions.Width,
				Height: p.Details.Dimensions.Height,
			},
			Value: p.Details.Value.InexactFloat64(),
		},
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.CurrentLocation != nil {
		resp.CurrentLocation = &LocationResponse{Lat: p.CurrentLocation.Lat, Lng: p.CurrentLocation.Lng}
	}
	if p.DestinationLocation != nil {
		resp.DestinationLocation = &LocationResponse{Lat: p.DestinationLocation.Lat, Lng: p.DestinationLocation.Lng}
	}
	return resp
}

// ToPackageList convierte una lista de entidades a DTOs.
func ToPackageList(pkgs []*entity.Package) []PackageResponse {
	out := make([]PackageResponse, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, ToPackageResponse(p))
	}
	return out
}
