package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"sisdisfraz-backend/internal/domain"
	"sisdisfraz-backend/internal/repository"
	"sisdisfraz-backend/internal/security"
)

type authService struct {
	profileRepo repository.ProfileRepository
	tokens      security.TokenManager
}

func NewAuthService(profileRepo repository.ProfileRepository, tokens security.TokenManager) AuthService {
	return &authService{profileRepo: profileRepo, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, string, *domain.Profile, error) {
	profile, err := s.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		// Same answer whether the email is unknown or the password is
		// wrong, so login attempts cannot probe for accounts.
		return "", "", nil, Unauthorized("invalid email or password")
	}
	if !profile.Active {
		return "", "", nil, Forbidden("profile is deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, Unauthorized("invalid email or password")
	}

	access, refresh, err := s.issueTokens(profile)
	if err != nil {
		return "", "", nil, err
	}
	return access, refresh, profile, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return "", "", Unauthorized("invalid refresh token")
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", Unauthorized("invalid refresh token")
	}

	// Re-read the profile so a deactivation or role change takes
	// effect at the next refresh, not at the next login.
	profile, err := s.profileRepo.GetByID(ctx, claims.ProfileID)
	if err != nil {
		return "", "", Unauthorized("invalid refresh token")
	}
	if !profile.Active {
		return "", "", Forbidden("profile is deactivated")
	}

	return s.issueTokens(profile)
}

func (s *authService) issueTokens(profile *domain.Profile) (string, string, error) {
	access, err := s.tokens.GenerateAccessToken(profile)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(profile)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
