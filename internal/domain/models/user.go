package models

// роли пользователей
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User представляет пользователя магазина. Идентификатором при входе
// служит email или телефон, пароль хранится только в виде bcrypt-хэша.
type User struct {
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	PassHash []byte `json:"pass_hash"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// IsAdmin сообщает, имеет ли пользователь доступ к админ-панели.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
