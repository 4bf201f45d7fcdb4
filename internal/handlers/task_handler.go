package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-react-tasks/backend/internal/models"
	"go-react-tasks/backend/internal/repositories"
	"go-react-tasks/backend/internal/services"
)

// TaskHandler はタスク関連のハンドラーを管理します。
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler は新しいTaskHandlerを作成します。
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// GetTasksHandler は認証済みユーザーのタスクを取得します。
func (h *TaskHandler) GetTasksHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	tasks, err := h.taskService.GetTasks(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": tasks})
}

// CreateTaskHandler は新しいタスクを作成します。
// 所有者は所属リストの所有者に強制され、ボディのuserIdは無視されます。
func (h *TaskHandler) CreateTaskHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	var req models.TaskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": ValidationMessage(err)})
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, repositories.ErrListNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "List not found"})
			return
		}
		if errors.Is(err, repositories.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not authorized to add tasks to this list"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": task})
}

// UpdateTaskHandler はタスクを部分更新します。
func (h *TaskHandler) UpdateTaskHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Task not found"})
		return
	}

	var req models.TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": ValidationMessage(err)})
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), id, userID, &req)
	if err != nil {
		if errors.Is(err, repositories.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Task not found"})
			return
		}
		if errors.Is(err, repositories.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not authorized to update this task"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": task})
}

// DeleteTaskHandler はタスクを削除します。
func (h *TaskHandler) DeleteTaskHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Task not found"})
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), id, userID); err != nil {
		if errors.Is(err, repositories.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Task not found"})
			return
		}
		if errors.Is(err, repositories.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not authorized to delete this task"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
}
