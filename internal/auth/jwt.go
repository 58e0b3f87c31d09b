package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"invoicely-backend/config"
)

var (
	// ErrTokenExpired is returned when a token's TTL has lapsed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenInvalid is returned on a bad signature or malformed token.
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims is the wire payload of both access and refresh tokens:
// the user id in the registered "sub" claim plus the email.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenPair holds a freshly issued access/refresh token pair. It is an
// ephemeral return value; only the refresh token string is ever persisted.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Issuer signs and verifies bearer tokens. Access and refresh tokens use
// separate secrets so a leaked refresh token cannot pass an access-token
// signature check.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewIssuer(cfg config.AuthConfig) (*Issuer, error) {
	if cfg.AccessTokenSecret == "" {
		return nil, errors.New("access token secret is not configured")
	}
	if cfg.RefreshTokenSecret == "" {
		return nil, errors.New("refresh token secret is not configured")
	}

	accessTTL := parseExpiration(cfg.AccessTokenTTL)
	if accessTTL <= 0 {
		return nil, fmt.Errorf("invalid access token TTL %q", cfg.AccessTokenTTL)
	}
	refreshTTL := parseExpiration(cfg.RefreshTokenTTL)
	if refreshTTL <= 0 {
		return nil, fmt.Errorf("invalid refresh token TTL %q", cfg.RefreshTokenTTL)
	}

	return &Issuer{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

func (i *Issuer) GenerateAccessToken(userID, email string) (string, error) {
	return i.sign(userID, email, i.accessSecret, i.accessTTL)
}

func (i *Issuer) GenerateRefreshToken(userID, email string) (string, error) {
	return i.sign(userID, email, i.refreshSecret, i.refreshTTL)
}

func (i *Issuer) GenerateTokenPair(userID, email string) (*TokenPair, error) {
	accessToken, err := i.GenerateAccessToken(userID, email)
	if err != nil {
		return nil, err
	}

	refreshToken, err := i.GenerateRefreshToken(userID, email)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (i *Issuer) VerifyAccessToken(tokenString string) (*Claims, error) {
	return verify(tokenString, i.accessSecret)
}

func (i *Issuer) VerifyRefreshToken(tokenString string) (*Claims, error) {
	return verify(tokenString, i.refreshSecret)
}

// AccessTokenExpiration returns now plus the configured access-token TTL.
// It is computed from configuration, not decoded from any issued token;
// the blacklist uses it to bound how long a revoked token is retained.
func (i *Issuer) AccessTokenExpiration() time.Time {
	return time.Now().Add(i.accessTTL)
}

// RefreshTokenExpiration returns now plus the configured refresh-token TTL.
func (i *Issuer) RefreshTokenExpiration() time.Time {
	return time.Now().Add(i.refreshTTL)
}

func (i *Issuer) sign(userID, email string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func verify(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// parseExpiration reads durations in the form "<integer><unit>" with unit
// one of s, m, h, d. An unrecognized unit falls back to interpreting the
// whole string as a number of minutes, reading leading digits only, so a
// bare "30" means 30 minutes.
func parseExpiration(expiresIn string) time.Duration {
	if expiresIn == "" {
		return 0
	}

	unit := expiresIn[len(expiresIn)-1]
	value, ok := leadingInt(expiresIn[:len(expiresIn)-1])

	switch unit {
	case 's':
		if !ok {
			return 0
		}
		return time.Duration(value) * time.Second
	case 'm':
		if !ok {
			return 0
		}
		return time.Duration(value) * time.Minute
	case 'h':
		if !ok {
			return 0
		}
		return time.Duration(value) * time.Hour
	case 'd':
		if !ok {
			return 0
		}
		return time.Duration(value) * 24 * time.Hour
	}

	minutes, ok := leadingInt(expiresIn)
	if !ok {
		return 0
	}
	return time.Duration(minutes) * time.Minute
}

// leadingInt parses the decimal digits at the start of s.
func leadingInt(s string) (int, bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	value, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, false
	}
	return value, true
}
