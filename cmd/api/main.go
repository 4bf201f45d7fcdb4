package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"go-react-tasks/backend/internal/config"
	"go-react-tasks/backend/internal/database"
	"go-react-tasks/backend/internal/repositories"
	"go-react-tasks/backend/internal/routes"
)

func main() {
	// .envは開発環境でのみ存在する
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db := database.Connect(cfg.MongoURI, cfg.DBName)

	// emailのユニークインデックスを保証する
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	userRepo := repositories.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Fatal: Failed to create indexes: %v", err)
	}

	r := routes.SetupRouter(db, cfg)

	// サーバー起動
	log.Printf("Server listening on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
