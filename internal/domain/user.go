package domain

type UserRepository interface {
	CreateUser(user *User) (*User, error)
	GetUserByID(id int64) (*User, error)

	// GetUserByEmail returns ErrNotFound when no user owns the email.
	// Callers checking uniqueness must treat that as "email available",
	// never as a failure.
	GetUserByEmail(email string) (*User, error)

	UpdateUser(user *User) (*User, error)
	UpdateUserPassword(id int64, passwordHash string) error
	DeleteUser(id int64) error
	ListUsers() ([]User, error)
	ListUsersPaged(offset, limit int, sort string) ([]User, int64, error)

	// SearchUserAuthDetails runs the users/user_roles/roles join for the
	// authentication lookup, one row per (user, role) pair.
	SearchUserAuthDetails(email string) ([]UserAuthDetails, error)
}

type RoleRepository interface {
	GetRoleByID(id int64) (*Role, error)
	ListRoles() ([]Role, error)
}
