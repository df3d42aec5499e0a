package models

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// User - users.csv satırı. Şifre düz metin tutulur, giriş kontrolü birebir eşleşmedir.
type User struct {
	Username string
	Password string
	Role     UserRole
}
