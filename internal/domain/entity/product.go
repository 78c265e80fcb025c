package entity

// Product artículo rastreado por el kardex. El ID es la clave de negocio
// (la define el operador al crearlo y es inmutable).
type Product struct {
	ID   string
	Name string
}
