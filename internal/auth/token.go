package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/work-nest/backoffice/internal/domain"
)

// ErrInvalidToken is returned for tokens with a bad signature, malformed
// claims, or an elapsed expiry.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager issues and validates the signed tokens the service uses:
// short-lived session tokens and 7-day invitation tokens. Both carry the
// account id, email and role; verification is stateless.
type TokenManager struct {
	secret     []byte
	sessionTTL time.Duration
	inviteTTL  time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, sessionTTL, inviteTTL time.Duration) *TokenManager {
	if sessionTTL <= 0 {
		sessionTTL = time.Hour
	}
	if inviteTTL <= 0 {
		inviteTTL = 7 * 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), sessionTTL: sessionTTL, inviteTTL: inviteTTL}
}

// Claims describes the JWT payload.
type Claims struct {
	Email string             `json:"email"`
	Role  domain.AccountRole `json:"role"`
	jwt.RegisteredClaims
}

// GenerateSessionToken signs a session token for an authenticated account.
func (tm *TokenManager) GenerateSessionToken(accountID, email string, role domain.AccountRole) (string, time.Time, error) {
	return tm.sign(accountID, email, role, tm.sessionTTL)
}

// GenerateInvitationToken signs a time-bounded invitation assertion for a
// pending account. The token is ephemeral; re-inviting regenerates it.
func (tm *TokenManager) GenerateInvitationToken(accountID, email string, role domain.AccountRole) (string, time.Time, error) {
	return tm.sign(accountID, email, role, tm.inviteTTL)
}

func (tm *TokenManager) sign(accountID, email string, role domain.AccountRole, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseToken validates a signed token and returns its claims.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
