package profile

import "time"

// Roles. Staff roles (admin, owner, super_user) unlock the management
// surfaces; customers only see their own orders.
const (
	RoleCustomer  = "customer"
	RoleAdmin     = "admin"
	RoleOwner     = "owner"
	RoleSuperUser = "super_user"
)

// Elevated reports whether the role may manage orders, tables and products.
func Elevated(role string) bool {
	return role == RoleAdmin || role == RoleOwner || role == RoleSuperUser
}

type Profile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Session struct {
	Token     string    `json:"token"`
	ProfileID string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LoginRequest payload of authentication.
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email"    example:"owner@cafe.local"`
	Password string `json:"password" example:"s3cret"`
}

// LoginResponse carries the bearer token for subsequent requests.
// swagger:model LoginResponse
type LoginResponse struct {
	Token   string   `json:"token"`
	Profile *Profile `json:"profile"`
}
