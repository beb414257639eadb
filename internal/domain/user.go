package domain

import "time"

// UserRole enumerates back-office operator roles.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleManager  UserRole = "manager"
	RoleOperator UserRole = "operator"
)

// User is a back-office operator account.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         UserRole
	Name         string
	Email        string
	CreatedAt    time.Time
}
