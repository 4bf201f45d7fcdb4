package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-react-tasks/backend/internal/models"
	"go-react-tasks/backend/testutil"
)

func doJSON(r http.Handler, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewBuffer(b)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req, _ := http.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetLists_EmptyAfterSignup(t *testing.T) {
	r, _, _, _ := testutil.SetupTestRouter(t)
	token, _ := testutil.SignupAndGetToken(t, r, "Ann", "ann@x.com", "secret1")

	w := doJSON(r, http.MethodGet, "/api/lists", token, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	// 空でも data は null ではなく [] になる
	assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())
}

func TestCreateList_Success(t *testing.T) {
	r, _, _, _ := testutil.SetupTestRouter(t)
	token, user := testutil.SignupAndGetToken(t, r, "Ann", "ann@x.com", "secret1")

	w := doJSON(r, http.MethodPost, "/api/lists", token, map[string]string{"name": "Groceries"})

	assert.Equal(t, http.StatusCreated, w.Code)
	var response struct {
		Success bool        `json:"success"`
		Data    models.List `json:"data"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.True(t, response.Success)
	assert.Equal(t, "Groceries", response.Data.Name)
	assert.False(t, response.Data.ID.IsZero())
	assert.NotZero(t, response.Data.CreatedAt)
	assert.Equal(t, user.ID, response.Data.UserID, "所有者は認証済みユーザーになるべき")
}

func TestCreateList_OwnerForcedToCaller(t *testing.T) {
	r, _, _, _ := testutil.SetupTestRouter(t)
	token, user := testutil.SignupAndGetToken(t, r, "Ann", "ann@x.com", "secret1")

	// ボディで別のuserIdを指定しても無視される
	w := doJSON(r, http.MethodPost, "/api/lists", token, map[string]string{
		"name":   "Spoofed",
		"userId": "64f1b2c3d4e5f6a7b8c9d0e1",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	var response struct {
		Data models.List `json:"data"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, user.ID, response.Data.UserID)
	assert.NotEqual(t, "64f1b2c3d4e5f6a7b8c9d0e1", response.Data.UserID.Hex())
}

func TestCreateList_NameTooLong(t *testing.T) {
	r, _, _, _ := testutil.SetupTestRouter(t)
	token, _ := testutil.SignupAndGetToken(t, r, "Ann", "ann@x.com", "secret1")

	w := doJSON(r, http.MethodPost, "/api/lists", token, map[string]string{
		"name": strings.Repeat("x", 51), // 上限は50文字
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, false, response["success"])
	assert.Contains(t, response["message"], "cannot be more than 50 characters")
}

func TestCreateList_MissingName(t *testing.T) {
	r, _, _, _ := testutil.SetupTestRouter(t)
	token, _ := testutil.SignupAndGetToken(t, r, "Ann", "ann@x.com", "secret1")

	w := doJSON(r, http.MethodPost, "/api/lists", token, map[string]string{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Contains(t, response["message"], "Please add a name")
}

func TestGetLists_ScopedToOwner(t *testing.T) {
	r, _, _, _ := testutil.SetupTestRouter(t)
	tokenA, _ := testutil.SignupAndGetToken(t, r, "Ann", "ann@x.com", "secret1")
	tokenB, _ := testutil.SignupAndGetToken(t, r, "Bob", "bob@x.com", "secret2")

	testutil.CreateTestList(t, r, tokenA, "Ann's list 1")
	testutil.CreateTestList(t, r, tokenA, "Ann's list 2")

	// Bobからは何も見えない
	w := doJSON(r, http.MethodGet, "/api/lists", tokenB, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())

	// Annからは2件、新しい順に見える
	w = doJSON(r, http.MethodGet, "/api/lists", tokenA, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Data []models.List `json:"data"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	require.Len(t, response.Data, 2)
	assert.Equal(t, "Ann's list 2", response.Data[0].Name)
	assert.Equal(t, "Ann's list 1", response.Data[1].Name)
}

func TestDeleteList_CascadesTasks(t *testing.T) {
	r, _, _, _ := testutil.SetupTestRouter(t)
	token, _ := testutil.SignupAndGetToken(t, r, "Ann", "ann@x.com", "secret1")

	list := testutil.CreateTestList(t, r, token, "Groceries")
	testutil.CreateTestTask(t, r, token, list.ID.Hex(), "Buy milk")
	testutil.CreateTestTask(t, r, token, list.ID.Hex(), "Buy eggs")

	w := doJSON(r, http.MethodDelete, "/api/lists/"+list.ID.Hex(), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// カスケード削除が有効なので所属タスクも消える
	w = doJSON(r, http.MethodGet, "/api/tasks", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())
}

func TestDeleteList_OrphanPolicyKeepsTasks(t *testing.T) {
	cfg := testutil.NewTestConfig()
	cfg.CascadeDelete = false
	r, _, _, _ := testutil.SetupTestRouterWithConfig(t, cfg)
	token, _ := testutil.SignupAndGetToken(t, r, "Ann", "ann@x.com", "secret1")

	list := testutil.CreateTestList(t, r, token, "Groceries")
	testutil.CreateTestTask(t, r, token, list.ID.Hex(), "Buy milk")

	w := doJSON(r, http.MethodDelete, "/api/lists/"+list.ID.Hex(), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// カスケード無効ならタスクは残る
	w = doJSON(r, http.MethodGet, "/api/tasks", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Data []models.Task `json:"data"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Len(t, response.Data, 1)
}

func TestDeleteList_ForeignOwnerForbidden(t *testing.T) {
	r, _, _, _ := testutil.SetupTestRouter(t)
	tokenA, _ := testutil.SignupAndGetToken(t, r, "Ann", "ann@x.com", "secret1")
	tokenB, _ := testutil.SignupAndGetToken(t, r, "Bob", "bob@x.com", "secret2")

	list := testutil.CreateTestList(t, r, tokenA, "Ann's list")

	w := doJSON(r, http.MethodDelete, "/api/lists/"+list.ID.Hex(), tokenB, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// リストは残っている
	w = doJSON(r, http.MethodGet, "/api/lists", tokenA, nil)
	var response struct {
		Data []models.List `json:"data"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Len(t, response.Data, 1)
}

func TestDeleteList_NotFound(t *testing.T) {
	r, _, _, _ := testutil.SetupTestRouter(t)
	token, _ := testutil.SignupAndGetToken(t, r, "Ann", "ann@x.com", "secret1")

	w := doJSON(r, http.MethodDelete, "/api/lists/64f1b2c3d4e5f6a7b8c9d0e1", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteList_InvalidIDFormat(t *testing.T) {
	r, _, _, _ := testutil.SetupTestRouter(t)
	token, _ := testutil.SignupAndGetToken(t, r, "Ann", "ann@x.com", "secret1")

	// 16進数として解析できないIDは404扱い
	w := doJSON(r, http.MethodDelete, "/api/lists/not-a-hex-id", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
