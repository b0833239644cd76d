package mock

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// createJWT creates an HS256 token for user
func (s *SignupService) createJWT(user *User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.Issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TokenTTL)),
		},
	})
	return token.SignedString(s.SigningKey)
}

// Verify parses and verifies a token issued by the service
func (s *SignupService) Verify(token string) (*jwt.RegisteredClaims, error) {
	parsed := &claims{}
	_, err := jwt.ParseWithClaims(token, parsed, func(t *jwt.Token) (interface{}, error) {
		return s.SigningKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(s.Issuer))
	if err != nil {
		return nil, err
	}
	return &parsed.RegisteredClaims, nil
}
