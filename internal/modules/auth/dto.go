package auth

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type AdminUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Session is what the admin UI stores after login: the token goes to adminToken.
type Session struct {
	Token     string    `json:"token"`
	User      AdminUser `json:"user"`
	ExpiresAt *int64    `json:"expiresAt,omitempty"`
}
