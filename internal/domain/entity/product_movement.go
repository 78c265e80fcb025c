package entity

import "time"

// ProductMovement evento del ledger: mueve Qty unidades de un producto desde
// FromLocation hacia ToLocation. Una referencia vacía significa "mundo
// externo": FromLocation vacío es un ingreso desde fuera del sistema,
// ToLocation vacío es una salida hacia fuera.
//
// El ID lo asigna el almacenamiento (entero autoincremental); Timestamp se
// fija al crear y desempata el orden del listado.
type ProductMovement struct {
	ID           int64
	Timestamp    time.Time
	ProductID    string
	FromLocation string
	ToLocation   string
	Qty          int64
}

// HasFrom indica si el movimiento sale de una bodega rastreada.
func (m *ProductMovement) HasFrom() bool { return m.FromLocation != "" }

// HasTo indica si el movimiento entra a una bodega rastreada.
func (m *ProductMovement) HasTo() bool { return m.ToLocation != "" }
