package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/smartstore/store-system/internal/core/ports"
)

const (
	collectionUsers     = "users"
	collectionStores    = "stores"
	collectionProducts  = "products"
	collectionCustomers = "customers"
)

// DataManager stores each entity kind in its own collection with the entity
// key as _id, so the primary index enforces uniqueness.
type DataManager struct {
	client    *mongo.Client
	users     *mongo.Collection
	stores    *mongo.Collection
	products  *mongo.Collection
	customers *mongo.Collection
}

var _ ports.DataManager = (*DataManager)(nil)

func New(client *mongo.Client, db *mongo.Database) *DataManager {
	return &DataManager{
		client:    client,
		users:     db.Collection(collectionUsers),
		stores:    db.Collection(collectionStores),
		products:  db.Collection(collectionProducts),
		customers: db.Collection(collectionCustomers),
	}
}

func (d *DataManager) Name() string { return "mongo" }

func (d *DataManager) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return d.client.Ping(ctx, nil)
}

func (d *DataManager) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// EnsureIndexes creates the secondary indexes used by listing and lookups.
func (d *DataManager) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := d.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "role", Value: 1}},
	}); err != nil {
		return err
	}
	if _, err := d.products.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "category", Value: 1}},
	}); err != nil {
		return err
	}
	_, err := d.customers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetSparse(true),
	})
	return err
}

func findByID[T any](ctx context.Context, col *mongo.Collection, id string) (*T, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc T
	err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &doc, true, nil
}

func findAll[T any](ctx context.Context, col *mongo.Collection) ([]*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := make([]*T, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func existsByID(ctx context.Context, col *mongo.Collection, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	err := col.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func replaceByID(ctx context.Context, col *mongo.Collection, id string, doc any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := col.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	return err
}

// replaceExisting reports whether a document matched; it never upserts.
func replaceExisting(ctx context.Context, col *mongo.Collection, id string, doc any) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := col.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func removeByID(ctx context.Context, col *mongo.Collection, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
