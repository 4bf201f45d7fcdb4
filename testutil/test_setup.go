package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"go-react-tasks/backend/internal/config"
	"go-react-tasks/backend/internal/models"
	"go-react-tasks/backend/internal/routes"
)

// NewTestConfig はテスト用の設定を返します。
// レート制限はテストを妨げないよう十分に緩くしています。
func NewTestConfig() *config.Config {
	return &config.Config{
		Port:           "8080",
		FrontendURL:    "http://localhost:5173",
		JWTSecret:      []byte("test-secret"),
		TokenExpiry:    time.Hour,
		CascadeDelete:  true,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	}
}

// SetupTestRouter はインメモリリポジトリを使ったテスト用ルーターをセットアップします。
// 外部サービスは不要です。
func SetupTestRouter(t *testing.T) (*gin.Engine, *InMemoryUserRepo, *InMemoryListRepo, *InMemoryTaskRepo) {
	return SetupTestRouterWithConfig(t, NewTestConfig())
}

// SetupTestRouterWithConfig は指定した設定でテスト用ルーターをセットアップします。
func SetupTestRouterWithConfig(t *testing.T, cfg *config.Config) (*gin.Engine, *InMemoryUserRepo, *InMemoryListRepo, *InMemoryTaskRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userRepo := NewInMemoryUserRepo()
	listRepo := NewInMemoryListRepo()
	taskRepo := NewInMemoryTaskRepo()

	r := routes.NewRouter(cfg, userRepo, listRepo, taskRepo, nil)
	return r, userRepo, listRepo, taskRepo
}

// SignupAndGetToken はテストユーザーを登録し、トークンと作成されたユーザーを返します。
func SignupAndGetToken(t *testing.T, r *gin.Engine, name, email, password string) (string, *models.User) {
	t.Helper()

	payload := map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}
	body, _ := json.Marshal(payload)

	req, _ := http.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusCreated, resp.Code, "サインアップに失敗しました: %s", resp.Body.String())

	var signupRes struct {
		Success bool        `json:"success"`
		Token   string      `json:"token"`
		User    models.User `json:"user"`
	}
	err := json.Unmarshal(resp.Body.Bytes(), &signupRes)
	require.NoError(t, err)
	require.True(t, signupRes.Success)
	require.NotEmpty(t, signupRes.Token)
	return signupRes.Token, &signupRes.User
}

// LoginAndGetToken はログインしてトークンを返します。
func LoginAndGetToken(t *testing.T, r *gin.Engine, email, password string) (string, error) {
	t.Helper()

	loginPayload := map[string]string{
		"email":    email,
		"password": password,
	}
	body, _ := json.Marshal(loginPayload)

	req, _ := http.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d: %s", resp.Code, resp.Body.String())
	}

	var loginRes map[string]interface{}
	if err := json.Unmarshal(resp.Body.Bytes(), &loginRes); err != nil {
		return "", fmt.Errorf("failed to unmarshal login response: %w", err)
	}

	token, ok := loginRes["token"].(string)
	if !ok {
		return "", fmt.Errorf("token not found or not a string in login response")
	}
	return token, nil
}

// CreateTestList はテスト用のリストをAPI経由で作成します。
func CreateTestList(t *testing.T, r *gin.Engine, token, name string) *models.List {
	t.Helper()

	payload := map[string]string{"name": name}
	body, _ := json.Marshal(payload)

	req, _ := http.NewRequest(http.MethodPost, "/api/lists", bytes.NewBuffer(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusCreated, resp.Code, "リスト作成に失敗しました: %s", resp.Body.String())

	var createRes struct {
		Success bool        `json:"success"`
		Data    models.List `json:"data"`
	}
	err := json.Unmarshal(resp.Body.Bytes(), &createRes)
	require.NoError(t, err)
	return &createRes.Data
}

// CreateTestTask はテスト用のタスクをAPI経由で作成します。
func CreateTestTask(t *testing.T, r *gin.Engine, token, listID, title string) *models.Task {
	t.Helper()

	payload := map[string]interface{}{
		"title":   title,
		"detail":  "test detail",
		"dueDate": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		"listId":  listID,
	}
	body, _ := json.Marshal(payload)

	req, _ := http.NewRequest(http.MethodPost, "/api/tasks", bytes.NewBuffer(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusCreated, resp.Code, "タスク作成に失敗しました: %s", resp.Body.String())

	var createRes struct {
		Success bool        `json:"success"`
		Data    models.Task `json:"data"`
	}
	err := json.Unmarshal(resp.Body.Bytes(), &createRes)
	require.NoError(t, err)
	return &createRes.Data
}
