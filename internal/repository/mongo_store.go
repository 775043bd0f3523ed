package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"portfolio-contact/internal/domain"
)

const connectTimeout = 10 * time.Second

// collectionAPI is the subset of *mongo.Collection used by MongoStore.
type collectionAPI interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
	FindOneAndDelete(ctx context.Context, filter interface{}, opts ...*options.FindOneAndDeleteOptions) *mongo.SingleResult
}

type mongoMessage struct {
	ID      primitive.ObjectID `bson:"_id"`
	Name    string             `bson:"name"`
	Email   string             `bson:"email"`
	Message string             `bson:"message"`
	Date    time.Time          `bson:"date"`
}

func (m mongoMessage) toDomain() domain.Message {
	return domain.Message{
		ID:      m.ID.Hex(),
		Name:    m.Name,
		Email:   m.Email,
		Message: m.Message,
		SentAt:  m.Date.UTC(),
	}
}

// MongoStore keeps contact messages in a MongoDB collection.
type MongoStore struct {
	coll   collectionAPI
	client *mongo.Client
	now    func() time.Time
}

// NewMongoStore wraps an already opened collection.
func NewMongoStore(coll collectionAPI) (*MongoStore, error) {
	if coll == nil {
		return nil, errors.New("repository: collection must not be nil")
	}
	return &MongoStore{coll: coll, now: utcNow}, nil
}

// ConnectMongo dials the server, checks it with a ping and opens the collection.
func ConnectMongo(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	if strings.TrimSpace(uri) == "" {
		return nil, errors.New("repository: mongo uri must not be empty")
	}
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("repository: mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("repository: mongo ping: %w", err)
	}

	return &MongoStore{
		coll:   client.Database(database).Collection(collection),
		client: client,
		now:    utcNow,
	}, nil
}

// Insert stores a new document. BSON dates carry millisecond precision, so the
// send time is truncated before it is returned.
func (s *MongoStore) Insert(ctx context.Context, name, email, message string) (domain.Message, error) {
	doc := mongoMessage{
		ID:      primitive.NewObjectID(),
		Name:    name,
		Email:   email,
		Message: message,
		Date:    s.now().Truncate(time.Millisecond),
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return domain.Message{}, fmt.Errorf("repository: Insert: %w", err)
	}
	return doc.toDomain(), nil
}

// ListAll returns every message sorted by date, newest first.
func (s *MongoStore) ListAll(ctx context.Context) ([]domain.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("repository: ListAll find: %w", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	var docs []mongoMessage
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("repository: ListAll decode: %w", err)
	}
	msgs := make([]domain.Message, 0, len(docs))
	for _, d := range docs {
		msgs = append(msgs, d.toDomain())
	}
	return msgs, nil
}

// DeleteByID removes the document with the given hex ObjectID.
func (s *MongoStore) DeleteByID(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return false, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	err = s.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("repository: DeleteByID: %w", err)
	}
	return true, nil
}

// Close disconnects the client opened by ConnectMongo.
func (s *MongoStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("repository: mongo disconnect: %w", err)
	}
	return nil
}
