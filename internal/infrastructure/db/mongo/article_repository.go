package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/newsphere/content-service/internal/core/domain"
	"github.com/newsphere/content-service/internal/core/ports"
)

const collectionArticles = "articles"

type ArticleRepository struct {
	col *mongo.Collection
}

func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{col: db.Collection(collectionArticles)}
}

// mongoArticle is the stored shape. isApproved mirrors status == approved and
// is always written in the same update as status.
type mongoArticle struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Description   string             `bson:"description"`
	Publisher     string             `bson:"publisher"`
	Tags          []string           `bson:"tags,omitempty"`
	Image         string             `bson:"image,omitempty"`
	AuthorEmail   string             `bson:"authorEmail"`
	AuthorName    string             `bson:"authorName,omitempty"`
	AuthorImage   string             `bson:"authorImage,omitempty"`
	Status        string             `bson:"status"`
	IsApproved    bool               `bson:"isApproved"`
	IsPremium     bool               `bson:"isPremium"`
	ViewCount     int64              `bson:"viewCount"`
	DeclineReason string             `bson:"declineReason,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt"`
}

func (m *mongoArticle) toDomain() *domain.Article {
	return &domain.Article{
		ID:            m.ID.Hex(),
		Title:         m.Title,
		Description:   m.Description,
		Publisher:     m.Publisher,
		Tags:          m.Tags,
		Image:         m.Image,
		AuthorEmail:   m.AuthorEmail,
		AuthorName:    m.AuthorName,
		AuthorImage:   m.AuthorImage,
		Status:        domain.ArticleStatus(m.Status),
		IsPremium:     m.IsPremium,
		ViewCount:     m.ViewCount,
		DeclineReason: m.DeclineReason,
		CreatedAt:     m.CreatedAt,
	}
}

// articleID parses a client-supplied id, rejecting malformed values before
// they reach a query.
func articleID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid article id", domain.ErrValidation)
	}
	return oid, nil
}

func (r *ArticleRepository) Insert(ctx context.Context, a *domain.Article) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoArticle{
		Title:       a.Title,
		Description: a.Description,
		Publisher:   a.Publisher,
		Tags:        a.Tags,
		Image:       a.Image,
		AuthorEmail: a.AuthorEmail,
		AuthorName:  a.AuthorName,
		AuthorImage: a.AuthorImage,
		Status:      string(a.Status),
		IsApproved:  a.Status == domain.StatusApproved,
		IsPremium:   a.IsPremium,
		ViewCount:   a.ViewCount,
		CreatedAt:   a.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert article: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert article: unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id string) (*domain.Article, error) {
	oid, err := articleID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoArticle
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, fmt.Errorf("find article: %w", err)
	}
	return m.toDomain(), nil
}

func (r *ArticleRepository) List(ctx context.Context, f ports.ArticleFilter) ([]*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	if f.OwnerEmail != "" {
		filter["authorEmail"] = f.OwnerEmail
	}
	if f.Publisher != "" {
		filter["publisher"] = f.Publisher
	}
	if len(f.Tags) > 0 {
		filter["tags"] = bson.M{"$in": f.Tags}
	}
	if f.TitleQuery != "" {
		filter["title"] = bson.M{"$regex": primitive.Regex{Pattern: regexp.QuoteMeta(f.TitleQuery), Options: "i"}}
	}

	opts := options.Find()
	if f.SortByViews {
		opts.SetSort(bson.D{{Key: "viewCount", Value: -1}})
	} else {
		opts.SetSort(bson.D{{Key: "createdAt", Value: -1}})
	}
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	var docs []mongoArticle
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	articles := make([]*domain.Article, 0, len(docs))
	for i := range docs {
		articles = append(articles, docs[i].toDomain())
	}
	return articles, nil
}

// SetStatus moves an article between statuses with a precondition on the
// current status, so the status and its derived isApproved projection change
// together in one atomic update.
func (r *ArticleRepository) SetStatus(ctx context.Context, id string, from, to domain.ArticleStatus, reason string) (bool, error) {
	oid, err := articleID(id)
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"status":     string(to),
		"isApproved": to == domain.StatusApproved,
	}
	update := bson.M{"$set": set}
	if to == domain.StatusDeclined {
		set["declineReason"] = reason
	} else {
		update["$unset"] = bson.M{"declineReason": ""}
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid, "status": string(from)}, update)
	if err != nil {
		return false, fmt.Errorf("set article status: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *ArticleRepository) UpdateContent(ctx context.Context, id string, fields ports.ContentUpdate) error {
	oid, err := articleID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"title":       fields.Title,
			"description": fields.Description,
			"publisher":   fields.Publisher,
			"tags":        fields.Tags,
			"image":       fields.Image,
			"isPremium":   fields.IsPremium,
			"status":      string(domain.StatusPending),
			"isApproved":  false,
		},
		"$unset": bson.M{"declineReason": ""},
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

// IncrementViews bumps the view counter server-side, never read-modify-write.
func (r *ArticleRepository) IncrementViews(ctx context.Context, id string) error {
	oid, err := articleID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"viewCount": 1}})
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	oid, err := articleID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing the listing and trending queries.
func (r *ArticleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "authorEmail", Value: 1}}},
		{Keys: bson.D{{Key: "viewCount", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
