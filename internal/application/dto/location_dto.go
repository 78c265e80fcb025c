package dto

// CreateLocationRequest body para POST /api/locations.
type CreateLocationRequest struct {
	LocationID   string `json:"location_id" validate:"required,max=64"`
	LocationName string `json:"location_name" validate:"required"`
}

// UpdateLocationRequest body para PUT /api/locations/:id.
type UpdateLocationRequest struct {
	LocationName string `json:"location_name" validate:"required"`
}

// LocationResponse representación de una bodega.
type LocationResponse struct {
	LocationID   string `json:"location_id"`
	LocationName string `json:"location_name"`
}

// LocationListResponse listado de bodegas (ordenado por location_id).
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
}
