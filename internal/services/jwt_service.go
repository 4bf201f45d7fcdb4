package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"go-react-tasks/backend/internal/models"
)

// JWTService はセッショントークンの生成と検証を扱います。
// 秘密鍵と有効期間は起動時に設定から注入されます。
type JWTService struct {
	secret []byte
	expiry time.Duration
}

// NewJWTService は新しいJWTServiceを作成します。
func NewJWTService(secret []byte, expiry time.Duration) *JWTService {
	return &JWTService{secret: secret, expiry: expiry}
}

// GenerateToken はユーザーIDを埋め込んだ署名付きトークンを生成します。
func (s *JWTService) GenerateToken(userID string) (string, error) {
	now := time.Now()
	claims := &models.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
		UserID: userID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken はトークンを検証し、クレームを返します。
// 期限切れの場合は jwt.ErrTokenExpired を含むエラーを返します。
func (s *JWTService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("invalid user_id in token")
	}
	return claims, nil
}
