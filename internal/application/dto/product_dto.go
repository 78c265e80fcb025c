package dto

// CreateProductRequest body para POST /api/products. El operador define el ID
// de negocio; es inmutable después de creado.
type CreateProductRequest struct {
	ProductID   string `json:"product_id" validate:"required,max=64"`
	ProductName string `json:"product_name" validate:"required"`
}

// UpdateProductRequest body para PUT /api/products/:id. Solo el nombre es editable.
type UpdateProductRequest struct {
	ProductName string `json:"product_name" validate:"required"`
}

// ProductResponse representación de un producto.
type ProductResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
}

// ProductListResponse listado de productos (ordenado por product_id).
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
}
