package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("factura no encontrada")
	ErrInvalidInput      = errors.New("número de factura inválido")
	ErrInvalidTransition = errors.New("la factura ya salió; transición no permitida")
	ErrUnknownStatus     = errors.New("estado de factura desconocido")
	ErrConflict          = errors.New("conflicto con el estado actual")
)
