package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrReferenced        = errors.New("recurso referenciado por movimientos")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrSameLocation      = errors.New("origen y destino no pueden ser iguales")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// InsufficientStockError rechazo por falta de stock en la bodega origen.
// Conserva los datos para un mensaje legible ("solo N disponibles").
type InsufficientStockError struct {
	ProductID  string
	LocationID string
	Available  int64
	Requested  int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente de %s en %s: disponible %d, solicitado %d",
		e.ProductID, e.LocationID, e.Available, e.Requested)
}

// Is permite errors.Is(err, ErrInsufficientStock) sobre el error tipado.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
