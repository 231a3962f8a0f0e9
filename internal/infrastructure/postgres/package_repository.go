package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/rastreo-envios/internal/domain"
	"github.com/tu-usuario/rastreo-envios/internal/domain/entity"
	"github.com/tu-usuario/rastreo-envios/internal/domain/repository"
)

var _ repository.PackageRepository = (*PackageRepo)(nil)

// PackageRepo implementación del puerto PackageRepository sobre PostgreSQL.
type PackageRepo struct {
	pool *pgxpool.Pool
}

// NewPackageRepository construye el adaptador de persistencia para paquetes.
func NewPackageRepository(pool *pgxpool.Pool) *PackageRepo {
	return &PackageRepo{pool: pool}
}

const packageColumns = `
	id, tracking_number,
	sender_full_name, sender_address, sender_email,
	recipient_full_name, recipient_address, recipient_email,
	description, weight, length, width, height, value,
	status, current_lat, current_lng, destination_lat, destination_lng,
	created_at, updated_at`

// Create persiste un nuevo paquete. Devuelve ErrDuplicateTracking si el
// número de seguimiento ya existe (constraint único).
func (r *PackageRepo) Create(ctx context.Context, pkg *entity.Package) error {
	query := `
		INSERT INTO packages (
			id, tracking_number,
			sender_full_name, sender_address, sender_email,
			recipient_full_name, recipient_address, recipient_email,
			description, weight, length, width, height, value,
			status, current_lat, current_lng, destination_lat, destination_lng,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	curLat, curLng := geoPointCols(pkg.CurrentLocation)
	dstLat, dstLng := geoPointCols(pkg.DestinationLocation)

	_, err := r.pool.Exec(ctx, query,
		pkg.ID, pkg.TrackingNumber,
		pkg.Sender.FullName, pkg.Sender.Address, nullableString(pkg.Sender.Email),
		pkg.Recipient.FullName, pkg.Recipient.Address, nullableString(pkg.Recipient.Email),
		pkg.Details.Description, pkg.Details.Weight,
		pkg.Details.Dimensions.Length, pkg.Details.Dimensions.Width, pkg.Details.Dimensions.Height,
		pkg.Details.Value,
		pkg.Status, curLat, curLng, dstLat, dstLng,
		pkg.CreatedAt, pkg.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateTracking
		}
		return fmt.Errorf("insert package: %w", err)
	}
	return nil
}

// GetByTrackingNumber obtiene un paquete por número de seguimiento; (nil, nil) si no existe.
func (r *PackageRepo) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*entity.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE tracking_number = $1`
	row := r.pool.QueryRow(ctx, query, trackingNumber)
	pkg, err := scanPackage(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get package by tracking number: %w", err)
	}
	return pkg, nil
}

// Find lista paquetes que cumplan el filtro; sin criterios devuelve todos.
func (r *PackageRepo) Find(ctx context.Context, filter repository.PackageFilter) ([]*entity.Package, error) {
	var conds []string
	var args []interface{}
	if filter.TrackingNumber != "" {
		args = append(args, filter.TrackingNumber)
		conds = append(conds, fmt.Sprintf("tracking_number = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + packageColumns + ` FROM packages`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	defer rows.Close()

	var list []*entity.Package
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan package: %w", err)
		}
		list = append(list, pkg)
	}
	return list, rows.Err()
}

// Update reescribe el registro completo; el merge de campos parciales ocurre
// en la capa de aplicación (last-write-wins, sin bloqueo optimista).
func (r *PackageRepo) Update(ctx context.Context, pkg *entity.Package) error {
	query := `
		UPDATE packages SET
			sender_full_name = $2, sender_address = $3, sender_email = $4,
			recipient_full_name = $5, recipient_address = $6, recipient_email = $7,
			description = $8, weight = $9, length = $10, width = $11, height = $12, value = $13,
			status = $14, current_lat = $15, current_lng = $16, destination_lat = $17, destination_lng = $18,
			updated_at = $19
		WHERE id = $1`

	curLat, curLng := geoPointCols(pkg.CurrentLocation)
	dstLat, dstLng := geoPointCols(pkg.DestinationLocation)

	_, err := r.pool.Exec(ctx, query,
		pkg.ID,
		pkg.Sender.FullName, pkg.Sender.Address, nullableString(pkg.Sender.Email),
		pkg.Recipient.FullName, pkg.Recipient.Address, nullableString(pkg.Recipient.Email),
		pkg.Details.Description, pkg.Details.Weight,
		pkg.Details.Dimensions.Length, pkg.Details.Dimensions.Width, pkg.Details.Dimensions.Height,
		pkg.Details.Value,
		pkg.Status, curLat, curLng, dstLat, dstLng,
		pkg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update package: %w", err)
	}
	return nil
}

// DeleteByID elimina un paquete por su identificador interno.
func (r *PackageRepo) DeleteByID(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM packages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete package: %w", err)
	}
	return nil
}

// scanPackage lee una fila con packageColumns en el orden declarado.
func scanPackage(row pgx.Row) (*entity.Package, error) {
	var p entity.Package
	var senderEmail, recipientEmail *string
	var curLat, curLng, dstLat, dstLng *float64

	err := row.Scan(
		&p.ID, &p.TrackingNumber,
		&p.Sender.FullName, &p.Sender.Address, &senderEmail,
		&p.Recipient.FullName, &p.Recipient.Address, &recipientEmail,
		&p.Details.Description, &p.Details.Weight,
		&p.Details.Dimensions.Length, &p.Details.Dimensions.Width, &p.Details.Dimensions.Height,
		&p.Details.Value,
		&p.Status, &curLat, &curLng, &dstLat, &dstLng,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if senderEmail != nil {
		p.Sender.Email = *senderEmail
	}
	if recipientEmail != nil {
		p.Recipient.Email = *recipientEmail
	}
	if curLat != nil && curLng != nil {
		p.CurrentLocation = &entity.GeoPoint{Lat: *curLat, Lng: *curLng}
	}
	if dstLat != nil && dstLng != nil {
		p.DestinationLocation = &entity.GeoPoint{Lat: *dstLat, Lng: *dstLng}
	}
	return &p, nil
}

// geoPointCols descompone un GeoPoint opcional en columnas lat/lng nullable.
func geoPointCols(p *entity.GeoPoint) (lat, lng *float64) {
	if p == nil {
		return nil, nil
	}
	return &p.Lat, &p.Lng
}

// nullableString convierte "" en NULL.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
