package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	ReleaseDate time.Time       `json:"release_date"`
	Categories  []Category      `json:"categories"`
}

type Role struct {
	ID        int64  `json:"id"`
	Authority string `json:"authority"`
}

type User struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Roles        []Role `json:"roles"`
}

// UserDTO is the outward user shape. It never carries the password hash.
type UserDTO struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Roles     []Role `json:"roles"`
}

// UserInsertDTO carries the plaintext password exactly once, from the client
// to the hasher. It is never stored or echoed back.
type UserInsertDTO struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Roles     []int64 `json:"roles"`
}

// UserUpdateDTO deliberately has no password field. Password changes go
// through the dedicated change-password operation.
type UserUpdateDTO struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Roles     []int64 `json:"roles"`
}

type UserPasswordDTO struct {
	Password string `json:"password"`
}

// UserAuthDetails is one row of the users/user_roles/roles join used for
// authentication lookup, one row per (user, role) pair.
type UserAuthDetails struct {
	Email        string
	PasswordHash string
	RoleID       int64
	Authority    string
}

// Principal is the authentication view of a user, assembled from
// UserAuthDetails rows without loading the full entity.
type Principal struct {
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Roles        []Role `json:"roles"`
}

type AuthResponse struct {
	Authenticated bool   `json:"authenticated"`
	Token         string `json:"token,omitempty"`
	UserID        int64  `json:"user_id,omitempty"`
	ErrorMessage  string `json:"error_message,omitempty"`
}

// Page is one page of a listed collection.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

func NewPage[T any](content []T, page, size int, total int64) Page[T] {
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return Page[T]{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}
