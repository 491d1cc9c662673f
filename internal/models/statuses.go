package models

// UserRole роль пользователя
type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleUser  UserRole = "USER"
)

// IsValid проверяет, что роль входит в допустимый набор
func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}
