package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"splitledger/internal/core/domain"
	"splitledger/internal/core/ports"
	"splitledger/pkg/apperror"

	"github.com/google/uuid"
)

// AuthServiceImpl implements ports.AuthService.
type AuthServiceImpl struct {
	userRepo      ports.UserRepository
	hashSvc       ports.HashService
	tokenSvc      ports.TokenService
	sessions      ports.SessionStore
	refreshExpiry time.Duration
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(
	userRepo ports.UserRepository,
	hashSvc ports.HashService,
	tokenSvc ports.TokenService,
	sessions ports.SessionStore,
	refreshExpiry time.Duration,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		hashSvc:       hashSvc,
		tokenSvc:      tokenSvc,
		sessions:      sessions,
		refreshExpiry: refreshExpiry,
	}
}

// Register creates a new user account.
func (s *AuthServiceImpl) Register(ctx context.Context, req ports.RegisterRequest) (*domain.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check email: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrEmailExists()
	}

	passwordHash, err := s.hashSvc.Hash(req.Password)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("hash password: %w", err))
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		Mobile:       req.Mobile,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create user: %w", err))
	}

	return user, nil
}

// Login validates credentials and issues an access/refresh token pair. The
// refresh token is an opaque random value stored server-side with a TTL so
// it can be rotated and revoked.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*ports.TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("find user: %w", err))
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials()
	}

	valid, err := s.hashSvc.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !valid {
		return nil, apperror.ErrInvalidCredentials()
	}

	return s.issuePair(ctx, user)
}

// Refresh rotates a refresh token: the presented token is revoked and a
// fresh pair is issued. A reused or expired token fails with AUTH_004.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	userID, err := s.sessions.Get(ctx, refreshToken)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lookup refresh token: %w", err))
	}
	if userID == uuid.Nil {
		return nil, apperror.ErrInvalidRefreshToken()
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("find user: %w", err))
	}
	if user == nil {
		return nil, apperror.ErrInvalidRefreshToken()
	}

	if err := s.sessions.Delete(ctx, refreshToken); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("revoke refresh token: %w", err))
	}

	return s.issuePair(ctx, user)
}

// Logout revokes the presented refresh token. Unknown tokens are a no-op.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if err := s.sessions.Delete(ctx, refreshToken); err != nil {
		return apperror.InternalError(fmt.Errorf("revoke refresh token: %w", err))
	}
	return nil
}

func (s *AuthServiceImpl) issuePair(ctx context.Context, user *domain.User) (*ports.TokenPair, error) {
	accessToken, accessExpiry, err := s.tokenSvc.Generate(user.ID, user.Email)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate access token: %w", err))
	}

	refreshToken, err := generateRandomHex(32) // 64 hex chars
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate refresh token: %w", err))
	}

	if err := s.sessions.Save(ctx, refreshToken, user.ID, s.refreshExpiry); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("store refresh token: %w", err))
	}

	return &ports.TokenPair{
		AccessToken:   accessToken,
		AccessExpiry:  accessExpiry,
		RefreshToken:  refreshToken,
		RefreshExpiry: time.Now().UTC().Add(s.refreshExpiry),
	}, nil
}

// generateRandomHex generates a random hex string of n bytes.
func generateRandomHex(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
