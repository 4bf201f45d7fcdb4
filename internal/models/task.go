package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task はタスクのドキュメントを表します。
// UserID は所属リストの所有者のコピーで、JOINなしの認可チェックに使います。
// 作成時に必ず List.UserID から再計算されます。
type Task struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`         // タイトル (1〜100文字)
	Detail    string             `bson:"detail" json:"detail"`       // 詳細テキスト
	DueDate   time.Time          `bson:"dueDate" json:"dueDate"`     // 期限
	Completed bool               `bson:"completed" json:"completed"` // 完了状態 (デフォルトfalse)
	ListID    primitive.ObjectID `bson:"listId" json:"listId"`       // 所属リスト
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`       // 所有者 (リストから導出)
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type TaskCreateRequest struct {
	Title   string    `json:"title" binding:"required,min=1,max=100"`
	Detail  string    `json:"detail" binding:"required"`
	DueDate time.Time `json:"dueDate" binding:"required"`
	ListID  string    `json:"listId" binding:"required"`
	// リクエストボディのuserIdは無視される (所有者はリストから強制される)
}

// TaskUpdateRequest は部分更新用のリクエストです。
// nilのフィールドは変更されません。
type TaskUpdateRequest struct {
	Title     *string    `json:"title" binding:"omitempty,min=1,max=100"`
	Detail    *string    `json:"detail" binding:"omitempty,min=1"`
	DueDate   *time.Time `json:"dueDate" binding:"omitempty"`
	Completed *bool      `json:"completed" binding:"omitempty"`
}
