package ledger

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la lectura de saldo para
// validar y la escritura del movimiento sean atómicas: es lo que impide que
// dos movimientos concurrentes sobregiren una bodega.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
	) error) error
}
