// Package testutil はテスト用のインメモリリポジトリとセットアップ補助を提供します。
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-react-tasks/backend/internal/models"
	"go-react-tasks/backend/internal/repositories"
)

// InMemoryUserRepo はrepositories.UserRepositoryのインメモリ実装です。
type InMemoryUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func NewInMemoryUserRepo() *InMemoryUserRepo {
	return &InMemoryUserRepo{users: make(map[primitive.ObjectID]models.User)}
}

func (r *InMemoryUserRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(u.Email)
	for _, existing := range r.users {
		if existing.Email == email {
			return nil, repositories.ErrDuplicateEmail
		}
	}

	u.ID = primitive.NewObjectID()
	u.Email = email
	u.CreatedAt = time.Now()
	r.users[u.ID] = *u
	return u, nil
}

func (r *InMemoryUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email = strings.ToLower(email)
	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *InMemoryUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	found := u
	return &found, nil
}

// DeleteByID はテストからアカウント削除をシミュレートするための補助です。
func (r *InMemoryUserRepo) DeleteByID(id primitive.ObjectID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

// InMemoryListRepo はrepositories.ListRepositoryのインメモリ実装です。
type InMemoryListRepo struct {
	mu    sync.Mutex
	lists map[primitive.ObjectID]models.List
	seq   map[primitive.ObjectID]int // 挿入順 (作成日時降順ソートの安定化用)
	next  int
}

func NewInMemoryListRepo() *InMemoryListRepo {
	return &InMemoryListRepo{
		lists: make(map[primitive.ObjectID]models.List),
		seq:   make(map[primitive.ObjectID]int),
	}
}

func (r *InMemoryListRepo) Create(_ context.Context, l *models.List) (*models.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l.ID = primitive.NewObjectID()
	l.CreatedAt = time.Now()
	r.lists[l.ID] = *l
	r.next++
	r.seq[l.ID] = r.next
	return l, nil
}

func (r *InMemoryListRepo) FindByUserID(_ context.Context, userID primitive.ObjectID) ([]*models.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []*models.List{}
	for _, l := range r.lists {
		if l.UserID == userID {
			found := l
			result = append(result, &found)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return r.seq[result[i].ID] > r.seq[result[j].ID]
	})
	return result, nil
}

func (r *InMemoryListRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.lists[id]
	if !ok {
		return nil, repositories.ErrListNotFound
	}
	found := l
	return &found, nil
}

func (r *InMemoryListRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lists[id]; !ok {
		return repositories.ErrListNotFound
	}
	delete(r.lists, id)
	delete(r.seq, id)
	return nil
}

// InMemoryTaskRepo はrepositories.TaskRepositoryのインメモリ実装です。
type InMemoryTaskRepo struct {
	mu    sync.Mutex
	tasks map[primitive.ObjectID]models.Task
	seq   map[primitive.ObjectID]int
	next  int
}

func NewInMemoryTaskRepo() *InMemoryTaskRepo {
	return &InMemoryTaskRepo{
		tasks: make(map[primitive.ObjectID]models.Task),
		seq:   make(map[primitive.ObjectID]int),
	}
}

func (r *InMemoryTaskRepo) Create(_ context.Context, t *models.Task) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = primitive.NewObjectID()
	t.CreatedAt = time.Now()
	r.tasks[t.ID] = *t
	r.next++
	r.seq[t.ID] = r.next
	return t, nil
}

func (r *InMemoryTaskRepo) FindByUserID(_ context.Context, userID primitive.ObjectID) ([]*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []*models.Task{}
	for _, t := range r.tasks {
		if t.UserID == userID {
			found := t
			result = append(result, &found)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return r.seq[result[i].ID] > r.seq[result[j].ID]
	})
	return result, nil
}

func (r *InMemoryTaskRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, repositories.ErrTaskNotFound
	}
	found := t
	return &found, nil
}

func (r *InMemoryTaskRepo) Update(_ context.Context, id primitive.ObjectID, req *models.TaskUpdateRequest) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, repositories.ErrTaskNotFound
	}
	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Detail != nil {
		t.Detail = *req.Detail
	}
	if req.DueDate != nil {
		t.DueDate = *req.DueDate
	}
	if req.Completed != nil {
		t.Completed = *req.Completed
	}
	r.tasks[id] = t
	found := t
	return &found, nil
}

func (r *InMemoryTaskRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return repositories.ErrTaskNotFound
	}
	delete(r.tasks, id)
	delete(r.seq, id)
	return nil
}

func (r *InMemoryTaskRepo) DeleteByListID(_ context.Context, listID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, t := range r.tasks {
		if t.ListID == listID {
			delete(r.tasks, id)
			delete(r.seq, id)
		}
	}
	return nil
}
