// Package config はプロセス全体の設定を環境変数から一度だけ読み込みます。
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config はアプリケーション全体の設定です。
// main.go で一度ロードし、各コンポーネントに明示的に渡します。
type Config struct {
	Port        string
	MongoURI    string
	DBName      string
	FrontendURL string

	JWTSecret   []byte        // トークン署名用の秘密鍵
	TokenExpiry time.Duration // トークンの有効期間

	CascadeDelete bool // リスト削除時にタスクも削除するか

	RateLimitRPS   float64 // 認証エンドポイントの秒間許容リクエスト数
	RateLimitBurst int
}

// Load は環境変数から設定を構築します。
// JWT_SECRET が未設定の場合は起動できないため log.Fatal します。
func Load() *Config {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:         getEnv("DB_NAME", "tasklists"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:5173"),
		JWTSecret:      []byte(secret),
		TokenExpiry:    getEnvAsDuration("TOKEN_EXPIRY", 30*24*time.Hour),
		CascadeDelete:  getEnvAsBool("CASCADE_DELETE", true),
		RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 1),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 10),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
