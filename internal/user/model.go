package user

import "time"

// User is the stored identity record. PasswordHash never leaves the process.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PublicUser is the view returned alongside a token.
// swagger:model PublicUser
type PublicUser struct {
	ID       string `json:"id"       example:"b2f5ff47-2b1e-4f22-8a96-5f3c1f2f2e7b"`
	Username string `json:"username" example:"alice"`
	Email    string `json:"email"    example:"alice@example.com"`
	Role     string `json:"role"     example:"user"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

// RegisterRequest payload of registration.
// swagger:model RegisterRequest
type RegisterRequest struct {
	Username string `json:"username" binding:"required"                example:"alice"`
	Email    string `json:"email"    binding:"required,email"          example:"alice@example.com"`
	Password string `json:"password" binding:"required"                example:"s3cret"`
	Role     string `json:"role"     binding:"omitempty,oneof=admin user" example:"user"`
}

// LoginRequest payload of login.
// swagger:model LoginRequest
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"s3cret"`
}

// AuthResponse is returned by register and login.
// swagger:model AuthResponse
type AuthResponse struct {
	Message string     `json:"message"`
	Token   string     `json:"token"`
	User    PublicUser `json:"user"`
}
