package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rubsen49-sketch/MovieMatch/internal/errors"
)

// NewAuth uses HS256. A ttl of zero issues tokens without expiry.
func NewAuth(secret string, ttl time.Duration) Auth {
	return NewAuthWithAlgorithm(secret, ttl, jwt.SigningMethodHS256)
}

// NewAuthWithAlgorithm accepts HMAC methods only (HS256, HS384, HS512).
func NewAuthWithAlgorithm(secret string, ttl time.Duration, method *jwt.SigningMethodHMAC) Auth {
	return &jwtAuthImpl{
		secret:        []byte(secret),
		ttl:           ttl,
		signingMethod: method,
		now:           time.Now,
	}
}

type jwtAuthImpl struct {
	secret        []byte
	ttl           time.Duration
	signingMethod *jwt.SigningMethodHMAC
	now           func() time.Time
}

func (j *jwtAuthImpl) Sign(userID, username string) (string, error) {
	if userID == "" {
		return "", errors.New(ErrMissingUser, "userID is required")
	}

	now := j.now()
	claims := &Payload{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if j.ttl != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(j.ttl))
	}

	return jwt.NewWithClaims(j.signingMethod, claims).SignedString(j.secret)
}

func (j *jwtAuthImpl) Verify(tokenString string) (*Payload, error) {
	if tokenString == "" {
		return nil, ErrNoToken
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&Payload{},
		func(*jwt.Token) (any, error) { return j.secret, nil },
		jwt.WithValidMethods([]string{j.signingMethod.Alg()}),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidToken, err, "parse token")
	}

	claims, ok := token.Claims.(*Payload)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" {
		return nil, errors.New(ErrInvalidToken, "token has no userId")
	}
	return claims, nil
}
