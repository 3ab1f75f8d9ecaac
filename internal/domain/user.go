package domain

import "time"

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"

	StatusActive = "active"

	// GuestUserID owns orders placed without a signed-in user.
	GuestUserID = "guest"
)

// User is a storefront account. Email is the case-insensitive login key.
type User struct {
	ID        string     `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	Email     string     `json:"email" yaml:"email"`
	Role      string     `json:"role" yaml:"role"`
	JoinedAt  time.Time  `json:"joinedAt" yaml:"joinedAt"`
	LastLogin *time.Time `json:"lastLogin,omitempty" yaml:"lastLogin"`
	Status    string     `json:"status" yaml:"status"`
}
