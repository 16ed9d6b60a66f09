package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/newsphere/content-service/internal/core/domain"
)

const collectionPublishers = "publishers"

type PublisherRepository struct {
	col *mongo.Collection
}

func NewPublisherRepository(db *mongo.Database) *PublisherRepository {
	return &PublisherRepository{col: db.Collection(collectionPublishers)}
}

type mongoPublisher struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
	Logo string             `bson:"logo,omitempty"`
}

func (r *PublisherRepository) Insert(ctx context.Context, p *domain.Publisher) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, mongoPublisher{Name: p.Name, Logo: p.Logo})
	if err != nil {
		return "", fmt.Errorf("insert publisher: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert publisher: unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *PublisherRepository) List(ctx context.Context) ([]*domain.Publisher, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list publishers: %w", err)
	}

	var docs []mongoPublisher
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list publishers: %w", err)
	}

	publishers := make([]*domain.Publisher, 0, len(docs))
	for _, d := range docs {
		publishers = append(publishers, &domain.Publisher{ID: d.ID.Hex(), Name: d.Name, Logo: d.Logo})
	}
	return publishers, nil
}
