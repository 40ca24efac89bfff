package model

const (
	// RoleMember can read and write widgets.
	RoleMember = "member"
	// RoleAdmin can also delete widgets.
	RoleAdmin = "admin"
)

// A User represents a database record.
type User struct {
	Base `msgpack:",inline" storm:"inline"`

	Email    string `msgpack:"email"    storm:"unique"`
	Password string `msgpack:"password,omitempty"`
	Role     string `msgpack:"role"`

	PasswordUpdatedAt int64 `msgpack:"password_updated_at"`
}

// NewUser returns a new user with default params.
func NewUser() *User {
	return &User{
		Role: RoleMember,
	}
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
