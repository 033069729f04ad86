package service

import (
	"fmt"

	"contesthub/internal/common"
	"contesthub/internal/common/security"
)

// AuthService issues the signed identity tokens. Authentication itself
// happens in an external identity provider; the backend only binds the
// verified email into a time-limited token.
type AuthService struct {
	tokens *security.TokenManager
}

func NewAuthService(tokens *security.TokenManager) *AuthService {
	return &AuthService{tokens: tokens}
}

type TokenRequest struct {
	Email string `json:"email"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

func (s *AuthService) IssueToken(req TokenRequest) (*TokenResponse, error) {
	if req.Email == "" {
		return nil, fmt.Errorf("email is required: %w", common.ErrValidation)
	}

	token, err := s.tokens.Generate(req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &TokenResponse{Token: token}, nil
}
