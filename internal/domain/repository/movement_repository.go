package repository

import "github.com/jhoicas/Kardex-api/internal/domain/entity"

// MovementRepository puerto de persistencia del log de movimientos. El ledger
// (application/ledger) es el único escritor; el resto del sistema solo lee.
type MovementRepository interface {
	// Create persiste el movimiento y asigna ID y Timestamp sobre la entidad.
	Create(movement *entity.ProductMovement) error
	GetByID(id int64) (*entity.ProductMovement, error)
	Update(movement *entity.ProductMovement) error
	// Delete elimina el movimiento; domain.ErrNotFound si no existe.
	Delete(id int64) error
	// List devuelve el log ordenado por Timestamp descendente, desempatado
	// por ID descendente.
	List() ([]*entity.ProductMovement, error)
	// Balance saldo de un producto en una bodega: entradas menos salidas
	// sobre el log completo (0 sin filas).
	Balance(productID, locationID string) (int64, error)
	// CountByProduct y CountByLocation soportan la guarda de integridad
	// referencial al eliminar entidades (from_location o to_location).
	CountByProduct(productID string) (int64, error)
	CountByLocation(locationID string) (int64, error)
}
