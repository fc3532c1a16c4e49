package sales

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore persists sales in the primary collection and mirrors each
// record into the mobile-sync collection a companion app consumes.
type MongoStore struct {
	sales  *mongo.Collection
	mobile *mongo.Collection
}

func NewMongoStore(sales, mobile *mongo.Collection) *MongoStore {
	return &MongoStore{sales: sales, mobile: mobile}
}

func (s *MongoStore) Insert(ctx context.Context, sale SaleRecord) error {
	_, err := s.sales.InsertOne(ctx, sale)
	return err
}

// mirrorDoc is the denormalized copy for the mobile app, stamped with the
// sync time.
type mirrorDoc struct {
	SaleRecord `bson:",inline"`
	SyncedAt   time.Time `bson:"syncedAt"`
}

func (s *MongoStore) Mirror(ctx context.Context, sale SaleRecord) error {
	doc := mirrorDoc{SaleRecord: sale, SyncedAt: time.Now()}
	opts := options.Replace().SetUpsert(true)
	_, err := s.mobile.ReplaceOne(ctx, bson.M{"_id": sale.SaleID}, doc, opts)
	return err
}

func (s *MongoStore) List(ctx context.Context) ([]SaleRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "saleDate", Value: -1}})
	cursor, err := s.sales.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []SaleRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *MongoStore) FindByID(ctx context.Context, saleID string) (*SaleRecord, error) {
	var sale SaleRecord
	if err := s.sales.FindOne(ctx, bson.M{"_id": saleID}).Decode(&sale); err != nil {
		return nil, err
	}
	return &sale, nil
}
