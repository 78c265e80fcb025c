package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/application/ledger"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
	"github.com/jhoicas/Kardex-api/internal/infrastructure/memory"
)

// newFixture arma un ledger sobre el almacén en memoria con un producto y dos
// bodegas ya registrados.
func newFixture(t *testing.T) (*memory.Store, *ledger.UseCase) {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Products().Create(&entity.Product{ID: "P1", Name: "Tornillo 3/4"}))
	require.NoError(t, store.Locations().Create(&entity.Location{ID: "L1", Name: "Bodega Central"}))
	require.NoError(t, store.Locations().Create(&entity.Location{ID: "L2", Name: "Sucursal Norte"}))

	uc := ledger.NewUseCase(store.TxRunner(), store.Movements(), store.Products(), store.Locations())
	return store, uc
}

func balance(t *testing.T, uc *ledger.UseCase, productID, locationID string) int64 {
	t.Helper()
	qty, err := uc.AvailableQuantity(context.Background(), productID, locationID)
	require.NoError(t, err)
	return qty
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida completo: ingreso, transferencia, sobregiro, eliminación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateMovement_CicloIngresoTransferenciaSobregiro(t *testing.T) {
	ctx := context.Background()
	_, uc := newFixture(t)

	// Ingreso externo: 10 unidades a L1.
	in, err := uc.CreateMovement(ctx, ledger.MovementInputDTO{ProductID: "P1", ToLocation: "L1", Qty: 10})
	require.NoError(t, err)
	assert.NotZero(t, in.ID, "el almacenamiento debe asignar el ID")
	assert.False(t, in.Timestamp.IsZero(), "el almacenamiento debe asignar el timestamp")
	assert.Equal(t, int64(10), balance(t, uc, "P1", "L1"))

	// Transferencia de 4 unidades L1 → L2.
	transfer, err := uc.CreateMovement(ctx, ledger.MovementInputDTO{
		ProductID: "P1", FromLocation: "L1", ToLocation: "L2", Qty: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), balance(t, uc, "P1", "L1"))
	assert.Equal(t, int64(4), balance(t, uc, "P1", "L2"))

	// Sobregiro: pedir 100 de L1 con 6 disponibles.
	_, err = uc.CreateMovement(ctx, ledger.MovementInputDTO{
		ProductID: "P1", FromLocation: "L1", ToLocation: "L2", Qty: 100,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(6), balance(t, uc, "P1", "L1"), "el rechazo no debe alterar el estado")
	assert.Equal(t, int64(4), balance(t, uc, "P1", "L2"))

	// Eliminar la transferencia devuelve los saldos al estado previo.
	require.NoError(t, uc.DeleteMovement(ctx, transfer.ID))
	assert.Equal(t, int64(10), balance(t, uc, "P1", "L1"))
	assert.Equal(t, int64(0), balance(t, uc, "P1", "L2"))
}

func TestCreateMovement_MismaBodegaRechazada(t *testing.T) {
	ctx := context.Background()
	_, uc := newFixture(t)

	_, err := uc.CreateMovement(ctx, ledger.MovementInputDTO{
		ProductID: "P1", FromLocation: "L1", ToLocation: "L1", Qty: 1,
	})
	assert.ErrorIs(t, err, domain.ErrSameLocation)
}

func TestCreateMovement_ReferenciasInexistentes(t *testing.T) {
	ctx := context.Background()
	_, uc := newFixture(t)

	_, err := uc.CreateMovement(ctx, ledger.MovementInputDTO{ProductID: "NOEXISTE", ToLocation: "L1", Qty: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto inexistente")

	_, err = uc.CreateMovement(ctx, ledger.MovementInputDTO{ProductID: "P1", ToLocation: "NOEXISTE", Qty: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound, "bodega inexistente")

	_, err = uc.CreateMovement(ctx, ledger.MovementInputDTO{ToLocation: "L1", Qty: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "product_id vacío")
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateMovement_AumentoDeCantidadSeRevalida(t *testing.T) {
	ctx := context.Background()
	_, uc := newFixture(t)

	_, err := uc.CreateMovement(ctx, ledger.MovementInputDTO{ProductID: "P1", ToLocation: "L1", Qty: 10})
	require.NoError(t, err)
	transfer, err := uc.CreateMovement(ctx, ledger.MovementInputDTO{
		ProductID: "P1", FromLocation: "L1", ToLocation: "L2", Qty: 4,
	})
	require.NoError(t, err)

	// Subir a 11 excede las 10 totales aunque la bodega origen no cambie.
	_, err = uc.UpdateMovement(ctx, transfer.ID, ledger.MovementInputDTO{
		ProductID: "P1", FromLocation: "L1", ToLocation: "L2", Qty: 11,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(6), balance(t, uc, "P1", "L1"), "la edición rechazada no debe alterar el log")

	// Subir a 10 (todo el ingreso) sí es válido.
	updated, err := uc.UpdateMovement(ctx, transfer.ID, ledger.MovementInputDTO{
		ProductID: "P1", FromLocation: "L1", ToLocation: "L2", Qty: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, transfer.ID, updated.ID, "la edición conserva el ID")
	assert.True(t, updated.Timestamp.Equal(transfer.Timestamp), "la edición conserva el timestamp original")
	assert.Equal(t, int64(0), balance(t, uc, "P1", "L1"))
	assert.Equal(t, int64(10), balance(t, uc, "P1", "L2"))
}

func TestUpdateMovement_Inexistente(t *testing.T) {
	ctx := context.Background()
	_, uc := newFixture(t)

	_, err := uc.UpdateMovement(ctx, 999, ledger.MovementInputDTO{ProductID: "P1", ToLocation: "L1", Qty: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteMovement_Inexistente(t *testing.T) {
	_, uc := newFixture(t)
	err := uc.DeleteMovement(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestAvailableQuantity_RequiereAmbosIdentificadores(t *testing.T) {
	_, uc := newFixture(t)

	_, err := uc.AvailableQuantity(context.Background(), "", "L1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.AvailableQuantity(context.Background(), "P1", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListMovements_MasRecientePrimeroYConNombres(t *testing.T) {
	ctx := context.Background()
	_, uc := newFixture(t)

	first, err := uc.CreateMovement(ctx, ledger.MovementInputDTO{ProductID: "P1", ToLocation: "L1", Qty: 10})
	require.NoError(t, err)
	second, err := uc.CreateMovement(ctx, ledger.MovementInputDTO{
		ProductID: "P1", FromLocation: "L1", ToLocation: "L2", Qty: 4,
	})
	require.NoError(t, err)

	list, err := uc.ListMovements(ctx)
	require.NoError(t, err)
	require.Len(t, list.Items, 2)

	assert.Equal(t, second.ID, list.Items[0].MovementID, "el más reciente va primero")
	assert.Equal(t, first.ID, list.Items[1].MovementID)
	assert.Equal(t, "Tornillo 3/4", list.Items[0].ProductName)
	assert.Equal(t, "Bodega Central", list.Items[0].FromLocationName)
	assert.Equal(t, "Sucursal Norte", list.Items[0].ToLocationName)
	assert.Empty(t, list.Items[1].FromLocationID, "el ingreso externo no tiene origen")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reintentos ante conflicto de serialización
// ──────────────────────────────────────────────────────────────────────────────

// flakyTxRunner devuelve domain.ErrConflict las primeras `failures` veces y
// después delega en el runner real.
type flakyTxRunner struct {
	inner    ledger.TxRunner
	failures int
	calls    int
}

func (r *flakyTxRunner) Run(ctx context.Context, fn func(
	repository.MovementRepository,
	repository.ProductRepository,
	repository.LocationRepository,
) error) error {
	r.calls++
	if r.calls <= r.failures {
		return domain.ErrConflict
	}
	return r.inner.Run(ctx, fn)
}

func TestCreateMovement_ReintentaAnteConflictoYLuegoEscribe(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Products().Create(&entity.Product{ID: "P1", Name: "Tornillo 3/4"}))
	require.NoError(t, store.Locations().Create(&entity.Location{ID: "L1", Name: "Bodega Central"}))

	runner := &flakyTxRunner{inner: store.TxRunner(), failures: 2}
	uc := ledger.NewUseCase(runner, store.Movements(), store.Products(), store.Locations())

	m, err := uc.CreateMovement(ctx, ledger.MovementInputDTO{ProductID: "P1", ToLocation: "L1", Qty: 5})
	require.NoError(t, err, "dos conflictos seguidos caben dentro del presupuesto de reintentos")
	assert.Equal(t, 3, runner.calls)
	assert.NotZero(t, m.ID)
}

func TestCreateMovement_ConflictoPersistenteSeReporta(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Products().Create(&entity.Product{ID: "P1", Name: "Tornillo 3/4"}))
	require.NoError(t, store.Locations().Create(&entity.Location{ID: "L1", Name: "Bodega Central"}))

	runner := &flakyTxRunner{inner: store.TxRunner(), failures: 100}
	uc := ledger.NewUseCase(runner, store.Movements(), store.Products(), store.Locations())

	_, err := uc.CreateMovement(ctx, ledger.MovementInputDTO{ProductID: "P1", ToLocation: "L1", Qty: 5})
	assert.ErrorIs(t, err, domain.ErrConflict, "agotados los reintentos el conflicto llega al caller")
	assert.Equal(t, 3, runner.calls, "los reintentos son acotados")
}
