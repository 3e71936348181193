// internals/features/users/auth/service/token_service.go
package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	userModel "library_backend/internals/features/users/user/model"
)

const tokenType = "access"

// Claims isi JWT sesi. jti dipakai untuk revoke saat logout.
type Claims struct {
	Typ      string `json:"typ"`
	UserName string `json:"user_name"`
	Role     string `json:"role"`
	Remember bool   `json:"remember,omitempty"`
	jwt.RegisteredClaims
}

func (c Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

func (s *Service) signSession(user userModel.UserModel, remember bool, now time.Time) (string, *Claims, error) {
	if len(s.Secret) == 0 {
		return "", nil, ErrMissingSecret
	}
	ttl := s.SessionTTL
	if remember {
		ttl = s.RememberTTL
	}
	claims := &Claims{
		Typ:      tokenType,
		UserName: user.UserName,
		Role:     user.Role,
		Remember: remember,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-30 * time.Second)),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims, nil
}

// parseToken: verifikasi signature + exp (leeway 30 detik). verifyExp=false dipakai logout.
func (s *Service) parseToken(raw string, verifyExp bool) (*Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrInvalidToken
	}
	if len(s.Secret) == 0 {
		return nil, ErrMissingSecret
	}

	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if _, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Typ != tokenType || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	if _, err := claims.UserID(); err != nil {
		return nil, ErrInvalidToken
	}
	if verifyExp {
		now := s.Now().Add(-30 * time.Second)
		if claims.ExpiresAt == nil || !claims.ExpiresAt.Time.After(now) {
			return nil, ErrTokenExpired
		}
	}
	return claims, nil
}

// IsSessionError: error yang berarti "anggap belum login" (bukan error server).
func IsSessionError(err error) bool {
	return errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrTokenExpired) || errors.Is(err, ErrSessionRevoked) ||
		errors.Is(err, ErrInactiveUser) || errors.Is(err, ErrMissingSecret)
}
