package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// La capa HTTP los traduce con errors.Is: ver interfaces/http/errors.go.
var (
	// 404
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")

	// 400 / 401 / 403
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// 409
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrInsufficientStock  = errors.New("stock insuficiente") // salida mayor al stock corriente de la línea
)
