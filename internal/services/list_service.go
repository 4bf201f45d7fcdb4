package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-react-tasks/backend/internal/models"
	"go-react-tasks/backend/internal/repositories"
)

// ListService はリスト関連のビジネスロジックを扱います。
type ListService struct {
	listRepo repositories.ListRepository
	taskRepo repositories.TaskRepository
	cascade  bool // リスト削除時に所属タスクも削除するか
}

// NewListService は新しいListServiceを作成します。
func NewListService(listRepo repositories.ListRepository, taskRepo repositories.TaskRepository, cascade bool) *ListService {
	return &ListService{listRepo: listRepo, taskRepo: taskRepo, cascade: cascade}
}

// CreateList は新しいリストを作成します。
// 所有者はリクエストボディに関係なく認証済みユーザーに強制されます。
func (s *ListService) CreateList(ctx context.Context, userID primitive.ObjectID, req models.ListCreateRequest) (*models.List, error) {
	list := &models.List{
		Name:   req.Name,
		UserID: userID,
	}
	return s.listRepo.Create(ctx, list)
}

// GetLists は認証済みユーザーのリストを取得します。
func (s *ListService) GetLists(ctx context.Context, userID primitive.ObjectID) ([]*models.List, error) {
	return s.listRepo.FindByUserID(ctx, userID)
}

// DeleteList はリストを削除し、認可チェックを行います。
// カスケード設定が有効な場合は所属タスクも削除します。
func (s *ListService) DeleteList(ctx context.Context, id, userID primitive.ObjectID) error {
	list, err := s.listRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if list.UserID != userID {
		return repositories.ErrForbidden
	}
	if err := s.listRepo.Delete(ctx, id); err != nil {
		return err
	}
	if s.cascade {
		return s.taskRepo.DeleteByListID(ctx, id)
	}
	return nil
}
