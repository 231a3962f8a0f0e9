package dto

// ErrorResponse cuerpo de error HTTP: { "error": "..." }.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse respuesta simple de éxito con mensaje.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
