package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/rastreo-envios/internal/application/dto"
	"github.com/tu-usuario/rastreo-envios/internal/domain"
	"github.com/tu-usuario/rastreo-envios/internal/domain/entity"
	"github.com/tu-usuario/rastreo-envios/internal/domain/repository"
	"github.com/tu-usuario/rastreo-envios/pkg/logger"
)

// Geocoder es el contrato mínimo que necesita el caso de uso para resolver
// direcciones y rutas. Lo implementa *geoapify.Client; el uso de interfaz
// permite fakes en tests.
type Geocoder interface {
	ForwardGeocode(ctx context.Context, address string) (*entity.GeoPoint, error)
	ReverseGeocode(ctx context.Context, lat, lng float64) (string, error)
	Route(ctx context.Context, start, end entity.GeoPoint) ([][2]float64, error)
}

// LabelGenerator produce la guía de envío en PDF. Lo implementa
// *pdf.LabelGenerator.
type LabelGenerator interface {
	GenerateLabel(ctx context.Context, pkg *entity.Package) ([]byte, error)
}

// PackageUseCase casos de uso de paquetes: creación, consulta, actualización
// parcial, borrado, datos de mapa y guía PDF.
type PackageUseCase struct {
	repo   repository.PackageRepository
	geo    Geocoder
	labels LabelGenerator
	log    *logger.Logger
}

// NewPackageUseCase construye el caso de uso de paquetes.
func NewPackageUseCase(repo repository.PackageRepository, geo Geocoder, labels LabelGenerator, log *logger.Logger) *PackageUseCase {
	return &PackageUseCase{repo: repo, geo: geo, labels: labels, log: log}
}

// Create genera el número de seguimiento, geocodifica ambas direcciones y
// persiste el paquete.
//
// La geocodificación es best-effort: si cualquiera de las dos direcciones
// falla, el campo de ubicación correspondiente queda ausente y la creación
// continúa. Un paquete puede existir sin coordenadas conocidas.
func (uc *PackageUseCase) Create(ctx context.Context, in dto.CreatePackageRequest) (*entity.Package, error) {
	trackingNumber := domain.GenerateTrackingNumber(in.Details.Description)

	currentLocation := uc.geocode(ctx, in.Sender.Address)
	destinationLocation := uc.geocode(ctx, in.Recipient.Address)

	status := in.Status
	if status == "" {
		status = entity.StatusCreated
	}

	now := time.Now()
	pkg := &entity.Package{
		ID:             uuid.New().String(),
		TrackingNumber: trackingNumber,
		Sender: entity.Party{
			FullName: in.Sender.FullName,
			Address:  in.Sender.Address,
			Email:    in.Sender.Email,
		},
		Recipient: entity.Party{
			FullName: in.Recipient.FullName,
			Address:  in.Recipient.Address,
			Email:    in.Recipient.Email,
		},
		Details: entity.PackageDetails{
			Description: in.Details.Description,
			Weight:      in.Details.Weight,
			Dimensions: entity.Dimensions{
				Length: in.Details.Dimensions.Length,
				Width:  in.Details.Dimensions.Width,
				Height: in.Details.Dimensions.Height,
			},
			Value: decimal.NewFromFloat(in.Details.Value),
		},
		Status:              status,
		CurrentLocation:     currentLocation,
		DestinationLocation: destinationLocation,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := uc.repo.Create(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

// GetByTrackingNumber obtiene un paquete; ErrNotFound si no existe.
func (uc *PackageUseCase) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*entity.Package, error) {
	pkg, err := uc.repo.GetByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, domain.ErrNotFound
	}
	return pkg, nil
}

// Find lista paquetes por número de seguimiento y/o estado. Un estado que no
// sea uno de los valores conocidos se ignora en silencio. Un resultado vacío
// se reporta como ErrNotFound: el listado comparte el contrato de
// no-encontrado con la consulta individual.
func (uc *PackageUseCase) Find(ctx context.Context, trackingNumber, status string) ([]*entity.Package, error) {
	filter := repository.PackageFilter{TrackingNumber: trackingNumber}
	if entity.ValidStatus(status) {
		filter.Status = status
	}

	pkgs, err := uc.repo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(pkgs) == 0 {
		return nil, domain.ErrNotFound
	}
	return pkgs, nil
}

// Update aplica una actualización parcial por grupos de campos: cada grupo
// presente en el payload se fusiona clave a clave sobre el grupo almacenado;
// los grupos ausentes no se tocan. Status es escalar y reemplaza directo.
//
// Si el payload trae recipient.address se re-geocodifica la dirección nueva:
// en éxito y con coordenadas distintas se reemplaza DestinationLocation; en
// fallo la ubicación almacenada queda intacta (nunca se anula).
func (uc *PackageUseCase) Update(ctx context.Context, trackingNumber string, in dto.UpdatePackageRequest) (*entity.Package, error) {
	pkg, err := uc.repo.GetByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, domain.ErrNotFound
	}

	if in.Sender != nil {
		mergeParty(&pkg.Sender, in.Sender)
	}
	if in.Recipient != nil {
		mergeParty(&pkg.Recipient, in.Recipient)
	}
	if in.Details != nil {
		mergeDetails(&pkg.Details, in.Details)
	}
	if in.Status != nil {
		pkg.Status = *in.Status
	}

	if in.Recipient != nil && in.Recipient.Address != nil {
		if loc := uc.geocode(ctx, *in.Recipient.Address); loc != nil {
			if pkg.DestinationLocation == nil || *pkg.DestinationLocation != *loc {
				pkg.DestinationLocation = loc
			}
		}
	}

	pkg.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

// Delete busca el paquete para obtener su identificador interno y lo
// elimina; ErrNotFound si la búsqueda inicial falla.
func (uc *PackageUseCase) Delete(ctx context.Context, trackingNumber string) error {
	pkg, err := uc.repo.GetByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return err
	}
	if pkg == nil {
		return domain.ErrNotFound
	}
	return uc.repo.DeleteByID(ctx, pkg.ID)
}

// Label genera la guía de envío en PDF del paquete.
func (uc *PackageUseCase) Label(ctx context.Context, trackingNumber string) ([]byte, error) {
	pkg, err := uc.GetByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}
	return uc.labels.GenerateLabel(ctx, pkg)
}

// geocode resuelve una dirección absorbiendo fallos: registra un warn y
// devuelve nil para que el llamador continúe sin coordenadas.
func (uc *PackageUseCase) geocode(ctx context.Context, address string) *entity.GeoPoint {
	loc, err := uc.geo.ForwardGeocode(ctx, address)
	if err != nil {
		uc.log.Warn().Err(err).Str("address", address).Msg("geocodificación fallida, continúa sin coordenadas")
		return nil
	}
	return loc
}

// mergeParty aplica los campos presentes del patch sobre el grupo almacenado.
func mergeParty(dst *entity.Party, patch *dto.PartyPatch) {
	if patch.FullName != nil {
		dst.FullName = *patch.FullName
	}
	if patch.Address != nil {
		dst.Address = *patch.Address
	}
	if patch.Email != nil {
		dst.Email = *patch.Email
	}
}

// mergeDetails aplica los campos presentes del patch sobre el grupo almacenado.
func mergeDetails(dst *entity.PackageDetails, patch *dto.DetailsPatch) {
	if patch.Description != nil {
		dst.Description = *patch.Description
	}
	if patch.Weight != nil {
		dst.Weight = *patch.Weight
	}
	if patch.Value != nil {
		dst.Value = decimal.NewFromFloat(*patch.Value)
	}
	if patch.Dimensions != nil {
		if patch.Dimensions.Length != nil {
			dst.Dimensions.Length = *patch.Dimensions.Length
		}
		if patch.Dimensions.Width != nil {
			dst.Dimensions.Width = *patch.Dimensions.Width
		}
		if patch.Dimensions.Height != nil {
			dst.Dimensions.Height = *patch.Dimensions.Height
		}
	}
}
