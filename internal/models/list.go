// Package modelsはListとTaskのドキュメント構造体を定義します。
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type List struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`     // リスト名 (1〜50文字)
	UserID    primitive.ObjectID `bson:"userId" json:"userId"` // 所有者
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type ListCreateRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
}
