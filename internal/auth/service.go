package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"invoicely-backend/internal/audit"
	"invoicely-backend/internal/models"
)

// Result is the outcome of an operation that authenticates a user.
type Result struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         *models.User `json:"user"`
}

// Service orchestrates registration, login, token rotation and logout.
type Service struct {
	users         UserStore
	refreshTokens RefreshTokenStore
	blacklist     TokenBlacklist
	hasher        *PasswordHasher
	issuer        *Issuer
	audit         *audit.Dispatcher // optional
}

func NewService(
	users UserStore,
	refreshTokens RefreshTokenStore,
	blacklist TokenBlacklist,
	hasher *PasswordHasher,
	issuer *Issuer,
	auditDispatcher *audit.Dispatcher,
) *Service {
	return &Service{
		users:         users,
		refreshTokens: refreshTokens,
		blacklist:     blacklist,
		hasher:        hasher,
		issuer:        issuer,
		audit:         auditDispatcher,
	}
}

// Register creates an account and issues its first token pair. A duplicate
// email fails with Conflict before any side effect is performed.
func (s *Service) Register(ctx context.Context, email, name, password string, meta audit.RequestMeta) (*Result, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, NewConflict(fmt.Sprintf("user with email %s already exists", email))
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      name,
		Password:  hashed,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	if s.audit != nil {
		s.audit.Emit(audit.Event{
			EntityType: "User",
			EntityID:   user.ID,
			Action:     "REGISTER",
			UserID:     user.ID,
			Changes:    models.ChangeSet{"email": email, "name": name},
			IPAddress:  meta.IPAddress,
			UserAgent:  meta.UserAgent,
			CreatedAt:  time.Now(),
		})
	}

	return result, nil
}

// Login verifies credentials and issues a fresh token pair. An unknown
// email, an inactive account and a wrong password all fail with the same
// generic message so responses carry no account-existence oracle. All
// prior refresh tokens of the user are dropped first: one active session
// per user.
func (s *Service) Login(ctx context.Context, email, password string, meta audit.RequestMeta) (*Result, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive || !s.hasher.Compare(password, user.Password) {
		return nil, NewUnauthorized("invalid email or password")
	}

	if err := s.refreshTokens.DeleteByUserID(ctx, user.ID); err != nil {
		return nil, err
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	if s.audit != nil {
		s.audit.Emit(audit.Event{
			EntityType: "User",
			EntityID:   user.ID,
			Action:     "LOGIN",
			UserID:     user.ID,
			IPAddress:  meta.IPAddress,
			UserAgent:  meta.UserAgent,
			CreatedAt:  time.Now(),
		})
	}

	return result, nil
}

// Refresh rotates a refresh token: the presented token is consumed and a
// new pair is issued. The ordering matters — a stored-but-expired token is
// deleted before the user lookup, while a consumed token is deleted only
// after the user is confirmed active, so a caller hitting a user-side
// failure can retry with the same token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*Result, error) {
	claims, err := s.issuer.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, NewUnauthorized("invalid refresh token")
	}

	stored, err := s.refreshTokens.FindByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, NewUnauthorized("refresh token not found")
	}

	if stored.IsExpired() {
		if err := s.refreshTokens.DeleteByToken(ctx, stored.Token); err != nil {
			return nil, err
		}
		return nil, NewUnauthorized("refresh token has expired")
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NewNotFound("user not found")
	}
	if !user.IsActive {
		return nil, NewUnauthorized("user account is inactive")
	}

	if err := s.refreshTokens.DeleteByToken(ctx, stored.Token); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes both tokens. It is idempotent: absent tokens are not an
// error. The blacklist entry expires after the currently configured
// access-token TTL, independent of the expiry embedded in the token.
func (s *Service) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if err := s.refreshTokens.DeleteByToken(ctx, refreshToken); err != nil {
		return err
	}

	expiresAt := s.issuer.AccessTokenExpiration()
	return s.blacklist.Add(ctx, accessToken, expiresAt)
}

// GetUserByID loads a user for the profile endpoint.
func (s *Service) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *Service) issueTokens(ctx context.Context, user *models.User) (*Result, error) {
	pair, err := s.issuer.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	expiresAt := s.issuer.RefreshTokenExpiration()
	if _, err := s.refreshTokens.Create(ctx, user.ID, pair.RefreshToken, expiresAt); err != nil {
		return nil, err
	}

	return &Result{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	}, nil
}
