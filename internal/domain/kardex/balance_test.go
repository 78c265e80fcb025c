package kardex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/kardex"
)

// ──────────────────────────────────────────────────────────────────────────────
// AvailableQuantity — el saldo siempre se reconstruye plegando el log
// ──────────────────────────────────────────────────────────────────────────────

func TestAvailableQuantity_SinMovimientosEsCero(t *testing.T) {
	qty := kardex.AvailableQuantity(nil, "P1", "L1")
	assert.Equal(t, int64(0), qty, "sin movimientos el saldo debe ser 0, nunca ausente")
}

func TestAvailableQuantity_EntradasMenosSalidas(t *testing.T) {
	log := []*entity.ProductMovement{
		{ID: 1, ProductID: "P1", ToLocation: "L1", Qty: 10},            // ingreso externo
		{ID: 2, ProductID: "P1", FromLocation: "L1", ToLocation: "L2", Qty: 4}, // transferencia
		{ID: 3, ProductID: "P1", FromLocation: "L2", Qty: 1},           // salida externa
	}

	assert.Equal(t, int64(6), kardex.AvailableQuantity(log, "P1", "L1"), "L1: 10 entran, 4 salen")
	assert.Equal(t, int64(3), kardex.AvailableQuantity(log, "P1", "L2"), "L2: 4 entran, 1 sale")
}

func TestAvailableQuantity_IgnoraOtrosProductosYBodegas(t *testing.T) {
	log := []*entity.ProductMovement{
		{ID: 1, ProductID: "P1", ToLocation: "L1", Qty: 10},
		{ID: 2, ProductID: "P2", ToLocation: "L1", Qty: 99},
	}

	assert.Equal(t, int64(10), kardex.AvailableQuantity(log, "P1", "L1"))
	assert.Equal(t, int64(0), kardex.AvailableQuantity(log, "P1", "L2"), "bodega sin movimientos de P1")
	assert.Equal(t, int64(0), kardex.AvailableQuantity(log, "P3", "L1"), "producto sin movimientos")
}

func TestAvailableQuantity_LecturaIdempotente(t *testing.T) {
	log := []*entity.ProductMovement{
		{ID: 1, ProductID: "P1", ToLocation: "L1", Qty: 7},
	}

	first := kardex.AvailableQuantity(log, "P1", "L1")
	second := kardex.AvailableQuantity(log, "P1", "L1")
	assert.Equal(t, first, second, "dos lecturas sin escrituras intermedias deben coincidir")
}

// ──────────────────────────────────────────────────────────────────────────────
// ContributionTo — aporte de un movimiento a un par (producto, bodega)
// ──────────────────────────────────────────────────────────────────────────────

func TestContributionTo_EntradaSalidaYNulo(t *testing.T) {
	in := &entity.ProductMovement{ProductID: "P1", ToLocation: "L1", Qty: 5}
	out := &entity.ProductMovement{ProductID: "P1", FromLocation: "L1", Qty: 5}
	transfer := &entity.ProductMovement{ProductID: "P1", FromLocation: "L1", ToLocation: "L2", Qty: 5}

	assert.Equal(t, int64(5), kardex.ContributionTo(in, "P1", "L1"))
	assert.Equal(t, int64(-5), kardex.ContributionTo(out, "P1", "L1"))
	assert.Equal(t, int64(-5), kardex.ContributionTo(transfer, "P1", "L1"), "la transferencia sale de L1")
	assert.Equal(t, int64(5), kardex.ContributionTo(transfer, "P1", "L2"), "y entra a L2")
	assert.Equal(t, int64(0), kardex.ContributionTo(transfer, "P2", "L1"), "otro producto no aporta")
	assert.Equal(t, int64(0), kardex.ContributionTo(nil, "P1", "L1"), "nil no aporta")
}
