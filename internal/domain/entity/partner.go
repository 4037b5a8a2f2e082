package entity

// Partner cliente o proveedor asociado a una orden.
type Partner struct {
	ID    string
	Name  string
	Email string
}
