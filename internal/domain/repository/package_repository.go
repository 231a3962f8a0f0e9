package repository

import (
	"context"

	"github.com/tu-usuario/rastreo-envios/internal/domain/entity"
)

// PackageFilter criterios opcionales para listar paquetes. Campos vacíos no
// restringen la consulta.
type PackageFilter struct {
	TrackingNumber string
	Status         string
}

// PackageRepository define el puerto de persistencia para Package (DIP).
// Los métodos de lectura devuelven (nil, nil) cuando no hay coincidencia;
// la traducción a ErrNotFound ocurre en la capa de aplicación.
type PackageRepository interface {
	Create(ctx context.Context, pkg *entity.Package) error
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*entity.Package, error)
	Find(ctx context.Context, filter PackageFilter) ([]*entity.Package, error)
	Update(ctx context.Context, pkg *entity.Package) error
	DeleteByID(ctx context.Context, id string) error
}
