package sink

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/wegman-software/osmclean/internal/reshape"
)

// MongoConfig describes the target collection
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	BatchSize  int
	// Drop removes the collection before loading
	Drop bool
}

// DefaultMongoConfig targets mapdb.map_docs on a local server
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		URI:        "mongodb://localhost:27017",
		Database:   "mapdb",
		Collection: "map_docs",
		BatchSize:  DefaultBatchSize,
	}
}

// inserter is the subset of *mongo.Collection used by the sink
type inserter interface {
	InsertMany(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error)
}

// Mongo inserts documents in batches with InsertMany
type Mongo struct {
	client    *mongo.Client
	coll      inserter
	batchSize int
	pending   []interface{}
	inserted  int64
}

// OpenMongo connects to the server and prepares the collection
func OpenMongo(ctx context.Context, cfg MongoConfig) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to reach MongoDB: %w", err)
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	if cfg.Drop {
		if err := coll.Drop(ctx); err != nil {
			client.Disconnect(context.Background())
			return nil, fmt.Errorf("failed to drop collection %s.%s: %w", cfg.Database, cfg.Collection, err)
		}
	}

	s := newMongo(coll, cfg.BatchSize)
	s.client = client
	return s, nil
}

func newMongo(coll inserter, batchSize int) *Mongo {
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	return &Mongo{coll: coll, batchSize: batchSize}
}

// Inserted returns the number of documents acknowledged by the server
func (m *Mongo) Inserted() int64 {
	return m.inserted
}

func (m *Mongo) Write(ctx context.Context, doc *reshape.Document) error {
	m.pending = append(m.pending, ToBSON(doc))
	if len(m.pending) >= m.batchSize {
		return m.Flush(ctx)
	}
	return nil
}

func (m *Mongo) Flush(ctx context.Context) error {
	if len(m.pending) == 0 {
		return nil
	}
	res, err := m.coll.InsertMany(ctx, m.pending)
	if res != nil {
		m.inserted += int64(len(res.InsertedIDs))
	}
	m.pending = m.pending[:0]
	if err != nil {
		return fmt.Errorf("failed to insert documents: %w", err)
	}
	return nil
}

func (m *Mongo) Close() error {
	if m.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

// ToBSON converts a document to an ordered bson.D
func ToBSON(doc *reshape.Document) bson.D {
	keys := doc.Keys()
	d := make(bson.D, 0, len(keys))
	for _, k := range keys {
		v, _ := doc.Get(k)
		d = append(d, bson.E{Key: k, Value: bsonValue(v)})
	}
	return d
}

func bsonValue(v reshape.Value) interface{} {
	switch x := v.(type) {
	case reshape.String:
		return string(x)
	case reshape.Float:
		return float64(x)
	case reshape.List:
		a := make(bson.A, len(x))
		for i, item := range x {
			a[i] = bsonValue(item)
		}
		return a
	case *reshape.Document:
		return ToBSON(x)
	}
	return nil
}
