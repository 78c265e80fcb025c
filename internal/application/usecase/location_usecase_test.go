package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/usecase"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/infrastructure/memory"
)

func newLocationUC(t *testing.T) (*memory.Store, *usecase.LocationUseCase) {
	t.Helper()
	store := memory.NewStore()
	return store, usecase.NewLocationUseCase(store.Locations(), store.Movements())
}

func TestLocationCreate_DuplicadoRechazado(t *testing.T) {
	_, uc := newLocationUC(t)

	created, err := uc.Create(dto.CreateLocationRequest{LocationID: "L1", LocationName: "Bodega Central"})
	require.NoError(t, err)
	assert.Equal(t, "L1", created.LocationID)

	_, err = uc.Create(dto.CreateLocationRequest{LocationID: "L1", LocationName: "Otra"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLocationDelete_ReferenciadaComoOrigenODestino(t *testing.T) {
	store, uc := newLocationUC(t)
	_, err := uc.Create(dto.CreateLocationRequest{LocationID: "L1", LocationName: "Bodega Central"})
	require.NoError(t, err)
	_, err = uc.Create(dto.CreateLocationRequest{LocationID: "L2", LocationName: "Sucursal Norte"})
	require.NoError(t, err)

	// L1 como destino, L2 como origen: ambas quedan bloqueadas.
	require.NoError(t, store.Movements().Create(&entity.ProductMovement{
		ProductID: "P1", ToLocation: "L1", Qty: 5,
	}))
	require.NoError(t, store.Movements().Create(&entity.ProductMovement{
		ProductID: "P1", FromLocation: "L2", Qty: 2,
	}))

	assert.ErrorIs(t, uc.Delete("L1"), domain.ErrReferenced)
	assert.ErrorIs(t, uc.Delete("L2"), domain.ErrReferenced)
}

func TestLocationDelete_SinMovimientosEliminada(t *testing.T) {
	_, uc := newLocationUC(t)
	_, err := uc.Create(dto.CreateLocationRequest{LocationID: "L1", LocationName: "Bodega Central"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete("L1"))

	got, err := uc.GetByID("L1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLocationUpdate_InexistenteDevuelveNil(t *testing.T) {
	_, uc := newLocationUC(t)

	got, err := uc.Update("NOEXISTE", dto.UpdateLocationRequest{LocationName: "x"})
	require.NoError(t, err)
	assert.Nil(t, got)
}
