package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/mshelar/shop-service/internal/domain"
	"github.com/mshelar/shop-service/internal/dto"
	"github.com/mshelar/shop-service/internal/repository"
	"github.com/mshelar/shop-service/internal/utils"
)

// sessionService implements SessionService
type sessionService struct {
	userRepo   repository.UserRepository
	store      SessionStore
	jwtManager *utils.JWTManager
	bcryptCost int
}

// NewSessionService creates a new session service
func NewSessionService(
	userRepo repository.UserRepository,
	store SessionStore,
	jwtManager *utils.JWTManager,
	bcryptCost int,
) SessionService {
	return &sessionService{
		userRepo:   userRepo,
		store:      store,
		jwtManager: jwtManager,
		bcryptCost: bcryptCost,
	}
}

// Signup registers a new user and opens a session for it
func (s *sessionService) Signup(ctx context.Context, req *dto.SignupRequest) (*domain.User, *domain.TokenPair, error) {
	if !utils.ValidateEmail(req.Email) {
		return nil, nil, fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}
	if !utils.ValidatePassword(req.Password) {
		return nil, nil, fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        utils.SanitizeEmail(req.Email),
		PasswordHash: passwordHash,
		Role:         domain.RoleCustomer,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	pair, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Login authenticates a user and opens a session, implicitly ending any
// prior one for the same user.
func (s *sessionService) Login(ctx context.Context, req *dto.LoginRequest) (*domain.User, *domain.TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// issueSession mints both tokens and caches the refresh token, keyed by
// user id, overwriting any previous entry (single session per user).
func (s *sessionService) issueSession(ctx context.Context, userID string) (*domain.TokenPair, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.store.Set(ctx, userID, refreshToken, s.jwtManager.RefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RotateAccessToken verifies the refresh token against the cached one and
// mints a fresh access token. Any cache miss, mismatch, or cache error is
// ErrInvalidSession: rotation never succeeds when the store cannot confirm
// the token is current.
func (s *sessionService) RotateAccessToken(ctx context.Context, refreshToken string) (string, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	cached, err := s.store.Get(ctx, userID)
	if err != nil {
		return "", ErrInvalidSession
	}

	if subtle.ConstantTimeCompare([]byte(refreshToken), []byte(cached)) != 1 {
		return "", ErrInvalidSession
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(userID)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessToken, nil
}

// VerifyAccess checks an access token statelessly and returns the user id
func (s *sessionService) VerifyAccess(accessToken string) (string, error) {
	claims, err := s.jwtManager.ValidateAccessToken(accessToken)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// RevokeSession deletes the cached refresh token for the token's user.
// Revoking an already-revoked session still succeeds.
func (s *sessionService) RevokeSession(ctx context.Context, refreshToken string) error {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	if err := s.store.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	return nil
}

// LoadProfile verifies the access token and loads the user record
func (s *sessionService) LoadProfile(ctx context.Context, accessToken string) (*domain.User, error) {
	userID, err := s.VerifyAccess(accessToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
