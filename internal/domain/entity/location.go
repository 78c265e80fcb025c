package entity

// Location bodega o punto de almacenamiento. El ID es la clave de negocio,
// inmutable una vez creada.
type Location struct {
	ID   string
	Name string
}
