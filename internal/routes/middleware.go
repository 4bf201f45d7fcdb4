package routes

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-react-tasks/backend/internal/repositories"
	"go-react-tasks/backend/internal/services"
)

// AuthMiddleware はセッショントークンを検証し、ユーザー情報をコンテキストに設定するミドルウェアです。
// 拒否理由 (ヘッダー欠落・署名不正・期限切れ・アカウント削除済み) はクライアントに区別させません。
func AuthMiddleware(jwtService *services.JWTService, userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			unauthorized(c)
			return
		}
		// "Bearer " プレフィックスを確認して削除
		if !strings.HasPrefix(tokenString, "Bearer ") {
			unauthorized(c)
			return
		}
		tokenString = tokenString[len("Bearer "):]

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			// 詳細はサーバーログにのみ残す
			log.Printf("Auth middleware: token rejected: %v", err)
			unauthorized(c)
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			log.Printf("Auth middleware: malformed user_id in claims: %v", err)
			unauthorized(c)
			return
		}

		// アカウントがまだ存在するか再確認する。
		// 削除済みアカウントの未失効トークンを認証扱いにしない
		user, err := userRepo.FindByID(c.Request.Context(), userID)
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user_email", user.Email)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authorized to access this route"})
	c.Abort()
}

// SecurityHeaders は基本的なセキュリティヘッダーを全レスポンスに付与します。
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("X-Frame-Options", "DENY")
		c.Next()
	}
}
