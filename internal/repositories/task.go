package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-react-tasks/backend/internal/models"
)

var (
	// ErrTaskNotFound はタスクが見つからない場合のエラーです。
	ErrTaskNotFound = errors.New("task not found")
	// ErrForbidden は他ユーザーのリソースへのアクセスを表すエラーです。
	ErrForbidden = errors.New("forbidden")
)

// MongoTaskRepository はtasksコレクションに対する操作を行います。
type MongoTaskRepository struct {
	collection *mongo.Collection
}

// NewTaskRepository は新しいMongoTaskRepositoryインスタンスを作成します。
func NewTaskRepository(db *mongo.Database) *MongoTaskRepository {
	return &MongoTaskRepository{collection: db.Collection("tasks")}
}

// Create は新しいタスクを挿入します。
// Completed はゼロ値 (false) のまま保存されます。
func (r *MongoTaskRepository) Create(ctx context.Context, t *models.Task) (*models.Task, error) {
	t.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, t)
	if err != nil {
		log.Printf("Failed to insert task: %v", err)
		return nil, fmt.Errorf("could not insert task: %w", err)
	}

	t.ID = result.InsertedID.(primitive.ObjectID)
	return t, nil
}

// FindByUserID は指定ユーザーのタスクを作成日時の降順で取得します。
func (r *MongoTaskRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		log.Printf("Failed to query tasks: %v", err)
		return nil, fmt.Errorf("could not query tasks: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := []*models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		log.Printf("Failed to decode tasks: %v", err)
		return nil, fmt.Errorf("could not decode tasks: %w", err)
	}
	return tasks, nil
}

// FindByID は指定されたIDのタスクを取得します。
func (r *MongoTaskRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var t models.Task
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTaskNotFound
		}
		log.Printf("Failed to query task by ID: %v", err)
		return nil, fmt.Errorf("could not query task: %w", err)
	}
	return &t, nil
}

// Update は指定されたIDのタスクを部分更新し、更新後のタスクを返します。
// nilのフィールドは変更されません。
func (r *MongoTaskRepository) Update(ctx context.Context, id primitive.ObjectID, req *models.TaskUpdateRequest) (*models.Task, error) {
	set := bson.M{}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Detail != nil {
		set["detail"] = *req.Detail
	}
	if req.DueDate != nil {
		set["dueDate"] = *req.DueDate
	}
	if req.Completed != nil {
		set["completed"] = *req.Completed
	}
	if len(set) == 0 {
		// 変更なし。現在のドキュメントをそのまま返す
		return r.FindByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t models.Task
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTaskNotFound
		}
		log.Printf("Failed to update task: %v", err)
		return nil, fmt.Errorf("could not update task: %w", err)
	}
	return &t, nil
}

// Delete は指定されたIDのタスクを削除します。
func (r *MongoTaskRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Printf("Failed to delete task: %v", err)
		return fmt.Errorf("could not delete task: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// DeleteByListID は指定リストに属するタスクをすべて削除します。
// リスト削除のカスケード処理で使用します。
func (r *MongoTaskRepository) DeleteByListID(ctx context.Context, listID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"listId": listID})
	if err != nil {
		log.Printf("Failed to delete tasks by list ID: %v", err)
		return fmt.Errorf("could not delete tasks: %w", err)
	}
	return nil
}
