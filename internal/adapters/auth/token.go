package auth

import (
	"fmt"
	"strconv"
	"time"

	"eventbooking/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

const accessTokenType = "access"

type jwtClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
	Type string `json:"type"`
}

// JWT issues and verifies HS256 access tokens.
type JWT struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewJWT returns a token issuer/verifier that signs with secret. Issued tokens expire after expiry.
func NewJWT(secret string, expiry time.Duration) *JWT {
	return &JWT{secret: []byte(secret), expiry: expiry, now: time.Now}
}

// Issue implements domain.TokenIssuer.
func (j *JWT) Issue(userID int64, role domain.Role) (string, error) {
	now := j.now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.expiry)),
		},
		Role: string(role),
		Type: accessTokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify implements domain.TokenVerifier. Every failure is reported as domain.ErrInvalidToken.
func (j *JWT) Verify(tokenString string) (domain.Principal, error) {
	claims := &jwtClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if claims.Type != accessTokenType {
		return domain.Principal{}, fmt.Errorf("%w: not an access token", domain.ErrInvalidToken)
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("%w: bad subject", domain.ErrInvalidToken)
	}
	role := domain.Role(claims.Role)
	if !role.Valid() {
		return domain.Principal{}, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidToken, claims.Role)
	}
	return domain.Principal{UserID: userID, Role: role}, nil
}
