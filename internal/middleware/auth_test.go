package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicely-backend/config"
	"invoicely-backend/internal/auth"
	"invoicely-backend/internal/models"
)

type fakeUserStore struct {
	users map[string]*models.User
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	f.users[user.ID] = user
	return nil
}

type fakeBlacklist struct {
	entries map[string]time.Time
}

func (f *fakeBlacklist) Add(_ context.Context, token string, expiresAt time.Time) error {
	f.entries[token] = expiresAt
	return nil
}

func (f *fakeBlacklist) Exists(_ context.Context, token string) (bool, error) {
	expiresAt, ok := f.entries[token]
	if !ok {
		return false, nil
	}
	if !expiresAt.After(time.Now()) {
		delete(f.entries, token)
		return false, nil
	}
	return true, nil
}

func (f *fakeBlacklist) DeleteExpired(_ context.Context) (int64, error) {
	return 0, nil
}

type guardFixture struct {
	app       *fiber.App
	issuer    *auth.Issuer
	users     *fakeUserStore
	blacklist *fakeBlacklist
	user      *models.User
}

func newGuardFixture(t *testing.T) *guardFixture {
	t.Helper()

	issuer, err := auth.NewIssuer(config.AuthConfig{
		AccessTokenSecret:  "access-secret",
		AccessTokenTTL:     "15m",
		RefreshTokenSecret: "refresh-secret",
		RefreshTokenTTL:    "7d",
	})
	require.NoError(t, err)

	user := &models.User{
		ID:       "user-123",
		Email:    "a@x.com",
		Name:     "A",
		IsActive: true,
	}
	users := &fakeUserStore{users: map[string]*models.User{user.ID: user}}
	blacklist := &fakeBlacklist{entries: make(map[string]time.Time)}

	app := fiber.New()
	app.Get("/protected", Protected(issuer, users, blacklist), func(c *fiber.Ctx) error {
		return c.JSON(PrincipalFromContext(c))
	})

	return &guardFixture{
		app:       app,
		issuer:    issuer,
		users:     users,
		blacklist: blacklist,
		user:      user,
	}
}

func (f *guardFixture) request(t *testing.T, authHeader string) (int, []byte) {
	t.Helper()

	req := httptest.NewRequest("GET", "/protected", nil)
	if authHeader != "" {
		req.Header.Set(fiber.HeaderAuthorization, authHeader)
	}

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func (f *guardFixture) accessToken(t *testing.T) string {
	t.Helper()

	token, err := f.issuer.GenerateAccessToken(f.user.ID, f.user.Email)
	require.NoError(t, err)
	return token
}

func TestProtected_ValidTokenAttachesPrincipal(t *testing.T) {
	t.Parallel()

	f := newGuardFixture(t)
	status, body := f.request(t, "Bearer "+f.accessToken(t))

	require.Equal(t, fiber.StatusOK, status)

	var principal auth.Principal
	require.NoError(t, json.Unmarshal(body, &principal))
	assert.Equal(t, "user-123", principal.ID)
	assert.Equal(t, "a@x.com", principal.Email)
	assert.Equal(t, "A", principal.Name)
	assert.True(t, principal.IsActive)
}

func TestProtected_MissingHeader(t *testing.T) {
	t.Parallel()

	f := newGuardFixture(t)
	status, body := f.request(t, "")

	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Contains(t, string(body), "invalid token")
}

func TestProtected_RevokedToken(t *testing.T) {
	t.Parallel()

	f := newGuardFixture(t)
	token := f.accessToken(t)

	// Revoke with the configured TTL; the token itself still verifies.
	require.NoError(t, f.blacklist.Add(context.Background(), token, time.Now().Add(15*time.Minute)))

	status, body := f.request(t, "Bearer "+token)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Contains(t, string(body), "token has been revoked")
}

func TestProtected_RevocationOutlivesBlacklistOnlyUntilExpiry(t *testing.T) {
	t.Parallel()

	f := newGuardFixture(t)
	token := f.accessToken(t)

	// An already-lapsed blacklist entry is self-evicted and ignored.
	require.NoError(t, f.blacklist.Add(context.Background(), token, time.Now().Add(-time.Minute)))

	status, _ := f.request(t, "Bearer "+token)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestProtected_InvalidSignature(t *testing.T) {
	t.Parallel()

	f := newGuardFixture(t)

	// A refresh token is signed with the other secret and must not pass.
	refreshToken, err := f.issuer.GenerateRefreshToken(f.user.ID, f.user.Email)
	require.NoError(t, err)

	status, body := f.request(t, "Bearer "+refreshToken)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Contains(t, string(body), "invalid token")
}

func TestProtected_UserGone(t *testing.T) {
	t.Parallel()

	f := newGuardFixture(t)
	token := f.accessToken(t)
	delete(f.users.users, f.user.ID)

	status, body := f.request(t, "Bearer "+token)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Contains(t, string(body), "user not found")
}

func TestProtected_InactiveUser(t *testing.T) {
	t.Parallel()

	f := newGuardFixture(t)
	token := f.accessToken(t)

	// Deactivation after issuance: the signature still verifies but the
	// guard must reject.
	f.user.IsActive = false

	status, body := f.request(t, "Bearer "+token)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Contains(t, string(body), "user account is inactive")
}

func TestExtractBearerToken(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", ExtractBearerToken(""))
	assert.Equal(t, "abc", ExtractBearerToken("Bearer abc"))
	assert.Equal(t, "abc", ExtractBearerToken("bearer abc"))
	assert.Equal(t, "abc", ExtractBearerToken("abc"))
}
