// Package repositories はデータベース操作を行うリポジトリを提供します。
package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-react-tasks/backend/internal/models"
)

// UserRepository はユーザーの永続化を抽象化します。
type UserRepository interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// ListRepository はリストの永続化を抽象化します。
type ListRepository interface {
	Create(ctx context.Context, l *models.List) (*models.List, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.List, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.List, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TaskRepository はタスクの永続化を抽象化します。
type TaskRepository interface {
	Create(ctx context.Context, t *models.Task) (*models.Task, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Task, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	Update(ctx context.Context, id primitive.ObjectID, req *models.TaskUpdateRequest) (*models.Task, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByListID(ctx context.Context, listID primitive.ObjectID) error
}
