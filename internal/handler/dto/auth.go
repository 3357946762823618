package dto

import "github.com/paperdesk/paperdesk/internal/model"

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=1024"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=1024"`
}

// APIKeyRequest is the body of PUT /api/user/api-key. An empty key clears it.
type APIKeyRequest struct {
	ExternalAPIKey string `json:"externalApiKey" validate:"max=512"`
}

// UserResponse is the account as shown after registration.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// LoginUserResponse additionally echoes the stored provider key.
type LoginUserResponse struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	ExternalAPIKey string `json:"externalApiKey"`
}

// RegisterResponse is returned by registration.
type RegisterResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// LoginResponse is returned by login.
type LoginResponse struct {
	Token string            `json:"token"`
	User  LoginUserResponse `json:"user"`
}

// MessageResponse carries a confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToRegisterResponse builds the registration response.
func ToRegisterResponse(token string, u *model.User) RegisterResponse {
	return RegisterResponse{
		Token: token,
		User:  UserResponse{ID: u.ID, Email: u.Email},
	}
}

// ToLoginResponse builds the login response.
func ToLoginResponse(token string, u *model.User) LoginResponse {
	return LoginResponse{
		Token: token,
		User: LoginUserResponse{
			ID:             u.ID,
			Email:          u.Email,
			ExternalAPIKey: u.ExternalAPIKey,
		},
	}
}
