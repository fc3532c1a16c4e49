package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	Client *mongo.Client

	ProductsCollection    *mongo.Collection
	SalesCollection       *mongo.Collection
	MobileSalesCollection *mongo.Collection
)

// Init connects to MongoDB and binds the POS collections. The connection
// URI comes from MONGODB_URI; a missing URI or unreachable server is a
// startup error, never a silent no-op.
func Init(ctx context.Context) error {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		return fmt.Errorf("MONGODB_URI is not set")
	}

	opts := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}

	dbName := os.Getenv("MONGODB_DB")
	if dbName == "" {
		dbName = "jlinkpos"
	}

	Client = client
	ProductsCollection = client.Database(dbName).Collection("products")
	SalesCollection = client.Database(dbName).Collection("sales")
	MobileSalesCollection = client.Database(dbName).Collection("mobile_sales")
	return nil
}

// Close disconnects the client during shutdown.
func Close(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}
