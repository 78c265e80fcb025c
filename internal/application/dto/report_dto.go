package dto

// BalanceRow fila del reporte de saldos: un producto con existencias
// positivas en una bodega.
type BalanceRow struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	LocationID   string `json:"location_id"`
	LocationName string `json:"location_name"`
	Quantity     int64  `json:"quantity"`
}

// BalanceReportResponse reporte completo, agrupado por producto y bodega
// (product_id asc, location_id asc).
type BalanceReportResponse struct {
	Items []BalanceRow `json:"items"`
}
