package handlers

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// RegisterRequest represents registration request data
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest represents login request data
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest represents the refresh token request payload
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" example:"eyJhbGciOiJ..."`
}

// LogoutRequest represents the request payload for logout
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" example:"eyJhbGciOiJ..."`
}

// UserStatusUpdateRequest represents the request to update user status
type UserStatusUpdateRequest struct {
	Active bool `json:"active" example:"true"`
}
