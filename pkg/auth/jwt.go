package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"joiner/internal/core/domain"
	"joiner/internal/core/port"
)

const issuer = "joiner"

var ErrInvalidToken = errors.New("invalid access token")

// JWT signs bearer tokens that carry a session id. The token alone grants
// nothing: the session must still exist in the session store.
type JWT struct {
	Secret []byte
}

func NewJWT(secret string) *JWT {
	return &JWT{Secret: []byte(secret)}
}

func (j *JWT) Issue(session domain.Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    issuer,
		ID:        session.ID.String(),
		Subject:   session.IdentityID.String(),
		IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	})

	return token.SignedString(j.Secret)
}

func (j *JWT) Parse(tokenString string) (port.TokenClaims, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return j.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		return port.TokenClaims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return port.TokenClaims{}, ErrInvalidToken
	}

	sessionID, err := uuid.Parse(claims.ID)
	if err != nil {
		return port.TokenClaims{}, fmt.Errorf("%w: session id: %v", ErrInvalidToken, err)
	}
	identityID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return port.TokenClaims{}, fmt.Errorf("%w: subject: %v", ErrInvalidToken, err)
	}

	return port.TokenClaims{
		SessionID:  sessionID,
		IdentityID: identityID,
		ExpiresAt:  claims.ExpiresAt.Time,
	}, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	const prefix = "Bearer "

	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
