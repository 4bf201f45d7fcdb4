package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User はユーザーのデータベースドキュメントを表します。
// JSONタグ: クライアントとの通信用
// bsonタグ: MongoDBのフィールド名
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"` // 小文字で保存される
	Password  string             `bson:"password" json:"-"`  // bcryptハッシュ。JSONに出さない
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type UserSignupRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"` // 生パスワード
}

type UserLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"` // 生パスワード
}

// JWTClaims はセッショントークンに埋め込むクレームです。
// 標準クレーム (iat, exp) に user_id を追加します。
type JWTClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}
