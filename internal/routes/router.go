// Package routesはroutingを行います。
package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"go-react-tasks/backend/internal/config"
	"go-react-tasks/backend/internal/handlers"
	"go-react-tasks/backend/internal/repositories"
	"go-react-tasks/backend/internal/services"
)

// SetupRouter はMongoDBハンドルからリポジトリを構築し、ルーターをセットアップします。
func SetupRouter(db *mongo.Database, cfg *config.Config) *gin.Engine {
	userRepo := repositories.NewUserRepository(db)
	listRepo := repositories.NewListRepository(db)
	taskRepo := repositories.NewTaskRepository(db)

	ping := func(ctx context.Context) error {
		return db.Client().Ping(ctx, readpref.Primary())
	}
	return NewRouter(cfg, userRepo, listRepo, taskRepo, ping)
}

// NewRouter はGinルーターをセットアップし、すべてのエンドポイントを登録します。
// ping はヘルスチェック用で、nilの場合はストア確認を省略します。
func NewRouter(cfg *config.Config, userRepo repositories.UserRepository, listRepo repositories.ListRepository, taskRepo repositories.TaskRepository, ping func(context.Context) error) *gin.Engine {
	r := gin.Default()

	// CORS対策
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontendURL, "http://localhost:5173", "http://127.0.0.1:5173"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsConfig))
	r.Use(SecurityHeaders())

	// サービス
	userService := services.NewUserService(userRepo)
	listService := services.NewListService(listRepo, taskRepo, cfg.CascadeDelete)
	taskService := services.NewTaskService(taskRepo, listRepo)
	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.TokenExpiry)

	// ハンドラー
	authHandler := handlers.NewAuthHandler(userService, jwtService)
	listHandler := handlers.NewListHandler(listService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// ルーティング
	r.GET("/api/health", func(c *gin.Context) {
		if ping != nil {
			if err := ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection failed"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "API is running..."})
	})

	// 認証エンドポイントはレート制限付き
	rl := NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	auth := r.Group("/api/auth")
	auth.Use(RateLimitMiddleware(rl))
	{
		auth.POST("/signup", authHandler.SignupHandler)
		auth.POST("/login", authHandler.LoginHandler)
	}

	authorized := r.Group("/")
	authorized.Use(AuthMiddleware(jwtService, userRepo))
	{
		authorized.GET("/api/lists", listHandler.GetListsHandler)
		authorized.POST("/api/lists", listHandler.CreateListHandler)
		authorized.DELETE("/api/lists/:id", listHandler.DeleteListHandler)
		authorized.GET("/api/tasks", taskHandler.GetTasksHandler)
		authorized.POST("/api/tasks", taskHandler.CreateTaskHandler)
		authorized.PUT("/api/tasks/:id", taskHandler.UpdateTaskHandler)
		authorized.DELETE("/api/tasks/:id", taskHandler.DeleteTaskHandler)
	}

	return r
}
