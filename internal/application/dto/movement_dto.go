package dto

import "time"

// MovementRequest body para POST /api/movements y PUT /api/movements/:id.
// from_location vacío = ingreso desde el mundo externo; to_location vacío =
// salida hacia el mundo externo.
type MovementRequest struct {
	ProductID    string `json:"product_id" validate:"required"`
	FromLocation string `json:"from_location,omitempty"`
	ToLocation   string `json:"to_location,omitempty"`
	Qty          int64  `json:"qty" validate:"required,gt=0"`
}

// MovementResponse un movimiento del ledger con los nombres de producto y
// bodegas ya resueltos para presentación.
type MovementResponse struct {
	MovementID       int64     `json:"movement_id"`
	Timestamp        time.Time `json:"timestamp"`
	ProductID        string    `json:"product_id"`
	ProductName      string    `json:"product_name"`
	FromLocationID   string    `json:"from_location_id,omitempty"`
	FromLocationName string    `json:"from_location_name,omitempty"`
	ToLocationID     string    `json:"to_location_id,omitempty"`
	ToLocationName   string    `json:"to_location_name,omitempty"`
	Qty              int64     `json:"qty"`
}

// MovementListResponse log de movimientos, más reciente primero.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
}

// StockResponse respuesta de GET /api/stock: saldo de un producto en una bodega.
type StockResponse struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id"`
	Quantity   int64  `json:"quantity"`
}
