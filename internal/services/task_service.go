package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-react-tasks/backend/internal/models"
	"go-react-tasks/backend/internal/repositories"
)

// TaskService はタスク関連のビジネスロジックを扱います。
type TaskService struct {
	taskRepo repositories.TaskRepository
	listRepo repositories.ListRepository
}

// NewTaskService は新しいTaskServiceを作成します。
func NewTaskService(taskRepo repositories.TaskRepository, listRepo repositories.ListRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, listRepo: listRepo}
}

// CreateTask は新しいタスクを作成します。
// 所有者は所属リストの所有者から導出され、リクエストボディのuserIdは無視されます。
// 不変条件: task.UserID == list.UserID
func (s *TaskService) CreateTask(ctx context.Context, userID primitive.ObjectID, req models.TaskCreateRequest) (*models.Task, error) {
	listID, err := primitive.ObjectIDFromHex(req.ListID)
	if err != nil {
		return nil, repositories.ErrListNotFound
	}

	list, err := s.listRepo.FindByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list.UserID != userID {
		return nil, repositories.ErrForbidden
	}

	task := &models.Task{
		Title:   req.Title,
		Detail:  req.Detail,
		DueDate: req.DueDate,
		ListID:  list.ID,
		UserID:  list.UserID, // リストの所有者をコピー
	}
	return s.taskRepo.Create(ctx, task)
}

// GetTasks は認証済みユーザーのタスクを取得します。
func (s *TaskService) GetTasks(ctx context.Context, userID primitive.ObjectID) ([]*models.Task, error) {
	return s.taskRepo.FindByUserID(ctx, userID)
}

// UpdateTask はタスクを部分更新し、認可チェックを行います。
func (s *TaskService) UpdateTask(ctx context.Context, id, userID primitive.ObjectID, req *models.TaskUpdateRequest) (*models.Task, error) {
	existingTask, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existingTask.UserID != userID {
		return nil, repositories.ErrForbidden
	}
	return s.taskRepo.Update(ctx, id, req)
}

// DeleteTask はタスクを削除し、認可チェックを行います。
func (s *TaskService) DeleteTask(ctx context.Context, id, userID primitive.ObjectID) error {
	existingTask, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existingTask.UserID != userID {
		return repositories.ErrForbidden
	}
	return s.taskRepo.Delete(ctx, id)
}
