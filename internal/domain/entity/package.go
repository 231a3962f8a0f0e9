package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos de un paquete.
const (
	StatusCreated   = "created"
	StatusInTransit = "in-transit"
	StatusDelivered = "delivered"
)

// ValidStatus indica si s es uno de los estados conocidos.
func ValidStatus(s string) bool {
	return s == StatusCreated || s == StatusInTransit || s == StatusDelivered
}

// GeoPoint es una coordenada geográfica (latitud/longitud).
type GeoPoint struct {
	Lat float64
	Lng float64
}

// Party identifica al remitente o destinatario de un paquete.
type Party struct {
	FullName string
	Address  string
	Email    string // opcional
}

// Dimensions dimensiones físicas del paquete en cm.
type Dimensions struct {
	Length float64
	Width  float64
	Height float64
}

// PackageDetails describe el contenido del envío. Value es el valor
// declarado (monetario), por eso decimal y no float.
type PackageDetails struct {
	Description string
	Weight      float64
	Dimensions  Dimensions
	Value       decimal.Decimal
}

// Package representa un envío rastreable. TrackingNumber es único e
// inmutable después de la creación. Las ubicaciones pueden ser nil si la
// geocodificación de la dirección correspondiente falló.
type Package struct {
	ID                  string
	TrackingNumber      string
	Sender              Party
	Recipient           Party
	Details             PackageDetails
	Status              string // created, in-transit, delivered
	CurrentLocation     *GeoPoint
	DestinationLocation *GeoPoint
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
