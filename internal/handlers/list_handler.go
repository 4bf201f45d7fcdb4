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

// ListHandler はリスト関連のハンドラーを管理します。
type ListHandler struct {
	listService *services.ListService
}

// NewListHandler は新しいListHandlerを作成します。
func NewListHandler(listService *services.ListService) *ListHandler {
	return &ListHandler{listService: listService}
}

// GetListsHandler は認証済みユーザーのリストを取得します。
func (h *ListHandler) GetListsHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	lists, err := h.listService.GetLists(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": lists})
}

// CreateListHandler は新しいリストを作成します。
// 所有者は認証済みユーザーに強制されます。
func (h *ListHandler) CreateListHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	var req models.ListCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": ValidationMessage(err)})
		return
	}

	list, err := h.listService.CreateList(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": list})
}

// DeleteListHandler はリストを削除します。
func (h *ListHandler) DeleteListHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		// 解析できないIDはどのリソースも指せない
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "List not found"})
		return
	}

	if err := h.listService.DeleteList(c.Request.Context(), id, userID); err != nil {
		if errors.Is(err, repositories.ErrListNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "List not found"})
			return
		}
		if errors.Is(err, repositories.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not authorized to delete this list"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
}
