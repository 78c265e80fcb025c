package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/application/ledger"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/infrastructure/memory"
)

func TestBuildBalanceReport_SoloSaldosPositivosYOrdenDeterminista(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Products().Create(&entity.Product{ID: "P1", Name: "Tornillo 3/4"}))
	require.NoError(t, store.Products().Create(&entity.Product{ID: "P2", Name: "Tuerca 3/4"}))
	require.NoError(t, store.Locations().Create(&entity.Location{ID: "L1", Name: "Bodega Central"}))
	require.NoError(t, store.Locations().Create(&entity.Location{ID: "L2", Name: "Sucursal Norte"}))
	uc := ledger.NewUseCase(store.TxRunner(), store.Movements(), store.Products(), store.Locations())

	mustCreate := func(input ledger.MovementInputDTO) {
		t.Helper()
		_, err := uc.CreateMovement(ctx, input)
		require.NoError(t, err)
	}
	mustCreate(ledger.MovementInputDTO{ProductID: "P1", ToLocation: "L2", Qty: 3})
	mustCreate(ledger.MovementInputDTO{ProductID: "P1", ToLocation: "L1", Qty: 10})
	mustCreate(ledger.MovementInputDTO{ProductID: "P1", FromLocation: "L1", Qty: 10}) // deja L1 en 0
	mustCreate(ledger.MovementInputDTO{ProductID: "P2", ToLocation: "L1", Qty: 7})

	report, err := uc.BuildBalanceReport(ctx)
	require.NoError(t, err)

	// P1/L1 quedó en 0 y no debe aparecer. El orden es product_id asc y,
	// dentro de cada producto, location_id asc.
	require.Len(t, report.Items, 2)
	assert.Equal(t, "P1", report.Items[0].ProductID)
	assert.Equal(t, "L2", report.Items[0].LocationID)
	assert.Equal(t, int64(3), report.Items[0].Quantity)
	assert.Equal(t, "Sucursal Norte", report.Items[0].LocationName)
	assert.Equal(t, "P2", report.Items[1].ProductID)
	assert.Equal(t, "L1", report.Items[1].LocationID)
	assert.Equal(t, int64(7), report.Items[1].Quantity)
	assert.Equal(t, "Tuerca 3/4", report.Items[1].ProductName)
}

func TestBuildBalanceReport_SinMovimientosDevuelveListaVacia(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Products().Create(&entity.Product{ID: "P1", Name: "Tornillo 3/4"}))
	require.NoError(t, store.Locations().Create(&entity.Location{ID: "L1", Name: "Bodega Central"}))
	uc := ledger.NewUseCase(store.TxRunner(), store.Movements(), store.Products(), store.Locations())

	report, err := uc.BuildBalanceReport(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, report.Items, "la lista vacía se serializa como [], no como null")
	assert.Empty(t, report.Items)
}
