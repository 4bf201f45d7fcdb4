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

// ErrListNotFound はリストが見つからない場合のエラーです。
var ErrListNotFound = errors.New("list not found")

// MongoListRepository はlistsコレクションに対する操作を行います。
type MongoListRepository struct {
	collection *mongo.Collection
}

// NewListRepository は新しいMongoListRepositoryインスタンスを作成します。
func NewListRepository(db *mongo.Database) *MongoListRepository {
	return &MongoListRepository{collection: db.Collection("lists")}
}

// Create は新しいリストを挿入します。
func (r *MongoListRepository) Create(ctx context.Context, l *models.List) (*models.List, error) {
	l.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, l)
	if err != nil {
		log.Printf("Failed to insert list: %v", err)
		return nil, fmt.Errorf("could not insert list: %w", err)
	}

	l.ID = result.InsertedID.(primitive.ObjectID)
	return l, nil
}

// FindByUserID は指定ユーザーのリストを作成日時の降順で取得します。
func (r *MongoListRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.List, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		log.Printf("Failed to query lists: %v", err)
		return nil, fmt.Errorf("could not query lists: %w", err)
	}
	defer cursor.Close(ctx)

	lists := []*models.List{}
	if err := cursor.All(ctx, &lists); err != nil {
		log.Printf("Failed to decode lists: %v", err)
		return nil, fmt.Errorf("could not decode lists: %w", err)
	}
	return lists, nil
}

// FindByID は指定されたIDのリストを取得します。
func (r *MongoListRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.List, error) {
	var l models.List
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrListNotFound
		}
		log.Printf("Failed to query list by ID: %v", err)
		return nil, fmt.Errorf("could not query list: %w", err)
	}
	return &l, nil
}

// Delete は指定されたIDのリストを削除します。
func (r *MongoListRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Printf("Failed to delete list: %v", err)
		return fmt.Errorf("could not delete list: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrListNotFound
	}
	return nil
}
