package entity

import "time"

// Roles de operador. Cada acción HTTP exige uno de ellos.
const (
	RoleAdmin    = "admin"
	RolePurchase = "purchase" // ajuste de stock de órdenes de compra
	RoleSales    = "sales"    // confirmación y envío de órdenes de venta
	RolePOS      = "pos"      // solo creación de órdenes desde el punto de venta
)

// Estados de cuenta.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User operador que dispara las acciones de sincronización.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, purchase, sales, pos
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si la cuenta puede iniciar sesión.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
