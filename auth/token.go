package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"todo-api-v2/api"
)

// ErrInvalidToken indicates a token that failed verification for any reason
// other than expiry: bad signature, malformed payload, wrong algorithm.
var ErrInvalidToken = errors.New("invalid token")

// ErrExpiredToken indicates a well-formed, correctly signed token past its
// expiry. Reported separately so the gateway can tell the client to
// re-authenticate rather than treat the token as forged.
var ErrExpiredToken = errors.New("token has expired")

// clockSkewLeeway is how far apart the issuing and verifying clocks may
// drift before exp/iat validation starts failing.
const clockSkewLeeway = 30 * time.Second

// TokenService issues and verifies signed bearer tokens. The signing secret
// is process-wide configuration loaded once at startup.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService builds a TokenService signing HS256 tokens valid for ttl.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a new token for userID.
func (s *TokenService) Issue(userID int) (string, error) {
	now := time.Now()
	claims := api.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Verify checks the signature and expiry of tokenString and returns the
// user id it encodes. Expiry is checked with clockSkewLeeway of tolerance.
func (s *TokenService) Verify(tokenString string) (int, error) {
	claims := &api.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(clockSkewLeeway),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrExpiredToken
		}
		return 0, ErrInvalidToken
	}
	if !token.Valid || claims.UserID <= 0 {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}
