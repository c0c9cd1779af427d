package dto

// LoginRequest represents panel login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents the access token handed to the client. The
// refresh token travels only in an HTTP-only cookie, never in the body.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn"`
	Role        string `json:"role"`
	Username    string `json:"username"`
}
