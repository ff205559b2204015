package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// ValidRole verifica que el rol exista en el sistema.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleManager || role == RoleStaff
}

// User representa un usuario del sistema. El rol se congela dentro del token
// JWT al hacer login; un cambio de rol requiere re-autenticación.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, manager, staff
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
