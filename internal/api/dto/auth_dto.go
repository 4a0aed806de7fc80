package dto

// SignupRequest for POST /api/v1/auth/signup
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Username string `json:"username" binding:"required,username"`
}

// SignupResponse echoes the accepted payload, the confirmation code travels
// by email only.
type SignupResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// TokenRequest for POST /api/v1/auth/token
type TokenRequest struct {
	Username         string `json:"username" binding:"required,username"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
