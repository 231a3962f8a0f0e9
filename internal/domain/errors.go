package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrForbidden          = errors.New("acceso denegado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrDuplicateTracking  = errors.New("número de seguimiento duplicado")
	ErrInvalidInput       = errors.New("entrada inválida")
)
