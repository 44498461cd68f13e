package models

// User is a staff account. Only gates access to the admin surface.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	CreatedAt    string `json:"createdAt"`
}

// LoginRequest represents the request body for logging in
// Example: {"username": "admin", "password": "Admin@2024!"}
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token for the admin routes
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}
