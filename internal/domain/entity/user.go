package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Tipos de cuenta válidos para User.
const (
	AccountTypeBuyer  = "buyer"
	AccountTypeSeller = "seller"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, user
	AccountType  string // buyer, seller
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
