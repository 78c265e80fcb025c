package kardex

import (
	"fmt"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// BalanceReader puerto mínimo del validador: saldo actual de un producto en
// una bodega según el log comprometido. Lo implementan los repositorios de
// movimientos (en SQL o plegando en memoria).
type BalanceReader interface {
	Balance(productID, locationID string) (int64, error)
}

// ValidateMovement aplica las reglas de negocio, en orden:
//
//  1. Qty debe ser un entero positivo.
//  2. Origen y destino no pueden ser la misma bodega (ambos definidos).
//  3. Si hay bodega origen, Qty no puede exceder el saldo disponible del
//     producto en esa bodega.
//
// En edición (original != nil) el disponible se calcula como si el movimiento
// original ya no existiera: se le resta su propio aporte al par
// (producto, origen). Así un movimiento no se bloquea por su propia
// existencia previa, y un aumento de Qty sin cambiar de bodega sí se
// re-valida contra el stock real.
func ValidateMovement(candidate, original *entity.ProductMovement, balances BalanceReader) error {
	if candidate.Qty <= 0 {
		return fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if candidate.HasFrom() && candidate.HasTo() && candidate.FromLocation == candidate.ToLocation {
		return domain.ErrSameLocation
	}
	if !candidate.HasFrom() {
		// Ingreso externo: siempre aceptado (la existencia de la bodega
		// destino la garantiza la FK del almacén de entidades).
		return nil
	}

	available, err := balances.Balance(candidate.ProductID, candidate.FromLocation)
	if err != nil {
		return fmt.Errorf("consultar saldo: %w", err)
	}
	available -= ContributionTo(original, candidate.ProductID, candidate.FromLocation)

	if candidate.Qty > available {
		return &domain.InsufficientStockError{
			ProductID:  candidate.ProductID,
			LocationID: candidate.FromLocation,
			Available:  available,
			Requested:  candidate.Qty,
		}
	}
	return nil
}
