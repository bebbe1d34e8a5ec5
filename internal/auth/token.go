package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrTokenMissing means no credential was presented at all.
	ErrTokenMissing = errors.New("authorization token missing")
	// ErrTokenMalformed covers parse failures, bad signatures and bad claims.
	ErrTokenMalformed = errors.New("authorization token malformed")
	// ErrTokenExpired means the token was valid but its expiry has passed.
	ErrTokenExpired = errors.New("authorization token expired")
)

// TokenCodec issues and validates HS256 session tokens. Tokens are
// stateless: expiry is the only invalidation mechanism, there is no
// server-side revocation. The secret is read-only after startup.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), ttl: ttl}
}

// Issue mints a signed token asserting "subject = userID".
func (c *TokenCodec) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(c.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Validate returns the subject user id carried by a well-signed, unexpired
// token. It proves who is asking, not that the account still exists.
func (c *TokenCodec) Validate(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenMalformed
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrTokenExpired
		}
		return uuid.Nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, ErrTokenMalformed
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, ErrTokenMalformed
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrTokenMalformed
	}

	return userID, nil
}

// SubjectFromHeader resolves the value of an Authorization header into the
// authenticated subject. An empty header is ErrTokenMissing; anything that
// is not a "Bearer <token>" pair is ErrTokenMalformed.
func SubjectFromHeader(codec *TokenCodec, header string) (uuid.UUID, error) {
	if header == "" {
		return uuid.Nil, ErrTokenMissing
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return uuid.Nil, ErrTokenMalformed
	}

	return codec.Validate(parts[1])
}
