// Package kardex contiene el motor del ledger de movimientos: el cálculo de
// saldos por plegado del historial y las reglas de validación de movimientos.
// No tiene dependencias de infraestructura; los adaptadores (Postgres,
// memoria) implementan los mismos cálculos o delegan en este paquete.
package kardex

import "github.com/jhoicas/Kardex-api/internal/domain/entity"

// AvailableQuantity pliega el log completo de movimientos y devuelve el saldo
// de un producto en una bodega: suma de entradas (to_location) menos suma de
// salidas (from_location). Sin filas que apliquen, el saldo es 0.
//
// No hay saldo materializado: el log es la única fuente de verdad y el saldo
// se reconstruye en cada lectura.
func AvailableQuantity(movements []*entity.ProductMovement, productID, locationID string) int64 {
	var balance int64
	for _, m := range movements {
		if m.ProductID != productID {
			continue
		}
		if m.ToLocation == locationID {
			balance += m.Qty
		}
		if m.FromLocation == locationID {
			balance -= m.Qty
		}
	}
	return balance
}

// ContributionTo devuelve el aporte de un movimiento al saldo del par
// (producto, bodega): +Qty si entra, -Qty si sale, 0 si no lo toca.
// Se usa para excluir un movimiento en edición de su propio saldo.
func ContributionTo(m *entity.ProductMovement, productID, locationID string) int64 {
	if m == nil || m.ProductID != productID || locationID == "" {
		return 0
	}
	var c int64
	if m.ToLocation == locationID {
		c += m.Qty
	}
	if m.FromLocation == locationID {
		c -= m.Qty
	}
	return c
}
