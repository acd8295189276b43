package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskdesk/internal/repository"
)

// AuthService handles user auth logic
type AuthService struct {
	authRepo repository.Authorization
	hasher   PasswordHasher
	tokens   *TokenManager
}

func NewAuthService(repo repository.Authorization, hasher PasswordHasher, tokens *TokenManager) *AuthService {
	return &AuthService{authRepo: repo, hasher: hasher, tokens: tokens}
}

// SignUp validates input, hashes the password and creates a new user.
// A taken username fails with ErrDuplicateUsername and writes nothing.
func (s *AuthService) SignUp(ctx context.Context, username, password string) (int, error) {
	username, err := validateCredentials(username, password)
	if err != nil {
		return 0, err
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return 0, err
	}
	id, err := s.authRepo.Create(ctx, username, hash)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return 0, ErrDuplicateUsername
		}
		return 0, err
	}
	return id, nil
}

// GenerateToken validates credentials and returns JWT
func (s *AuthService) GenerateToken(ctx context.Context, username, password string) (string, error) {
	u, err := s.authRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return "", fmt.Errorf("lookup user: %w", err)
	}
	if u == nil {
		return "", ErrUserNotFound
	}

	if !s.hasher.Verify(password, u.PasswordHash) {
		return "", ErrInvalidPassword
	}

	return s.tokens.Issue(u.ID)
}

// ParseToken parses JWT and returns userID
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	return s.tokens.Verify(accessToken)
}
