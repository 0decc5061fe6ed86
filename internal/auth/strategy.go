package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"benches/internal/utils"
)

const (
	AudienceAuth   = "benches:auth"
	AudienceReset  = "benches:reset"
	AudienceVerify = "benches:verify"
)

// ErrInvalidToken возвращается для любого токена, который не прошёл проверку
var ErrInvalidToken = errors.New("invalid token")

// Claims — полезная нагрузка токенов приложения
type Claims struct {
	jwt.RegisteredClaims
	Email               string `json:"email,omitempty"`
	PasswordFingerprint string `json:"password_fgpt,omitempty"`
}

// UserID разбирает subject токена
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

// JWTStrategy выпускает и проверяет HS256-токены для одной аудитории
type JWTStrategy struct {
	secret   []byte
	audience string
	lifetime time.Duration
	now      func() time.Time
}

func NewJWTStrategy(secret, audience string, lifetime time.Duration) *JWTStrategy {
	return &JWTStrategy{secret: []byte(secret), audience: audience, lifetime: lifetime, now: time.Now}
}

func (s *JWTStrategy) Lifetime() time.Duration { return s.lifetime }

// Issue подписывает токен для пользователя; exp, iat, aud и jti заполняются здесь
func (s *JWTStrategy) Issue(userID uint, extra Claims) (string, error) {
	jti, err := utils.GenerateNanoID()
	if err != nil {
		return "", fmt.Errorf("jti: %w", err)
	}
	now := s.now()
	claims := extra
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		Audience:  jwt.ClaimStrings{s.audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		ID:        jti,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Parse проверяет подпись, аудиторию и срок действия токена
func (s *JWTStrategy) Parse(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return &claims, nil
}
