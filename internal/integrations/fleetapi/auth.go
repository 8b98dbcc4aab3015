package fleetapi

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-FleetDesk/internal/domain"
)

// AuthService выдача и проверка токенов
type AuthService struct {
	client *Client
}

// AuthResult токен и пользователь после входа или регистрации
type AuthResult struct {
	Token string
	User  domain.User
}

// Login POST /api/auth/login
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	return s.authenticate(ctx, "/api/auth/login", req)
}

// Register POST /api/auth/register
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	return s.authenticate(ctx, "/api/auth/register", req)
}

// RegisterMechanic POST /api/auth/register-mechanic (выполняет администратор, токен не выдается)
func (s *AuthService) RegisterMechanic(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	var resp authResponse
	err := s.client.do(ctx, request{
		method: http.MethodPost,
		route:  "/api/auth/register-mechanic",
		path:   "/api/auth/register-mechanic",
		body:   req,
		out:    &resp,
	})
	if err != nil {
		return nil, err
	}
	user := resp.User.toDomain()
	return &user, nil
}

// Logout GET /api/auth/logout
func (s *AuthService) Logout(ctx context.Context) error {
	return s.client.do(ctx, request{
		method: http.MethodGet,
		route:  "/api/auth/logout",
		path:   "/api/auth/logout",
	})
}

// Check GET /api/auth/check - проверяет токен и возвращает владельца
func (s *AuthService) Check(ctx context.Context) (*domain.User, error) {
	var resp authResponse
	err := s.client.do(ctx, request{
		method: http.MethodGet,
		route:  "/api/auth/check",
		path:   "/api/auth/check",
		out:    &resp,
	})
	if err != nil {
		return nil, err
	}
	user := resp.User.toDomain()
	return &user, nil
}

func (s *AuthService) authenticate(ctx context.Context, path string, body interface{}) (*AuthResult, error) {
	var resp authResponse
	err := s.client.do(ctx, request{
		method: http.MethodPost,
		route:  path,
		path:   path,
		body:   body,
		out:    &resp,
	})
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, ErrInvalidResponse
	}
	return &AuthResult{Token: resp.Token, User: resp.User.toDomain()}, nil
}
