// Package database はMongoDB接続の初期化を行います。
package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect はMongoDBに接続し、データベースハンドルを返します。
// 起動時に一度だけ呼ばれ、接続できない場合はプロセスを終了します。
func Connect(uri, dbName string) *mongo.Database {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Fatal: Failed to connect to MongoDB: %v", err)
	}

	// 接続を検証 (Ping)
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatalf("Fatal: Failed to ping MongoDB: %v", err)
	}

	log.Println("Successfully connected to MongoDB!")
	return client.Database(dbName)
}
