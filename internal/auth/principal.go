package auth

// Principal is the authenticated identity attached to a request after the
// access token and the account behind it have been validated.
type Principal struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}
