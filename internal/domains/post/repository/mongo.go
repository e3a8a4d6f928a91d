package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blog-api/internal/domains/post/model"
)

// postDocument is the persisted form of a BlogPost in MongoDB
type postDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Content     string             `bson:"content"`
	Author      authorDocument     `bson:"author"`
	PublishDate time.Time          `bson:"publishDate"`
}

type authorDocument struct {
	FirstName string `bson:"firstName"`
	LastName  string `bson:"lastName"`
}

func toPostDocument(p *model.BlogPost) postDocument {
	return postDocument{
		Title:       p.Title,
		Content:     p.Content,
		Author:      authorDocument{FirstName: p.Author.FirstName, LastName: p.Author.LastName},
		PublishDate: p.PublishDate,
	}
}

func (d postDocument) toModel() *model.BlogPost {
	return &model.BlogPost{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Content:     d.Content,
		Author:      model.Author{FirstName: d.Author.FirstName, LastName: d.Author.LastName},
		PublishDate: d.PublishDate.UTC(),
	}
}

// toSetDocument builds the $set body for an update; only named fields appear.
func toSetDocument(u model.PostUpdate) bson.D {
	set := bson.D{}
	if u.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *u.Title})
	}
	if u.Content != nil {
		set = append(set, bson.E{Key: "content", Value: *u.Content})
	}
	if u.Author != nil {
		set = append(set, bson.E{Key: "author", Value: authorDocument{
			FirstName: u.Author.FirstName,
			LastName:  u.Author.LastName,
		}})
	}
	return set
}

// mongoRepository implements RepositoryInterface over a single collection
type mongoRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoRepository creates a repository backed by the given collection
func NewMongoRepository(coll *mongo.Collection) RepositoryInterface {
	return &mongoRepository{
		coll: coll,
		now:  mongoNow,
	}
}

// MongoDB stores dates with millisecond precision; truncate so the value
// returned from an insert equals the value read back later.
func mongoNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func (r *mongoRepository) prepare(p *model.BlogPost) postDocument {
	doc := toPostDocument(p)
	doc.ID = primitive.NewObjectID()
	if doc.PublishDate.IsZero() {
		doc.PublishDate = r.now()
	} else {
		doc.PublishDate = doc.PublishDate.UTC().Truncate(time.Millisecond)
	}
	return doc
}

func (r *mongoRepository) InsertOne(ctx context.Context, p *model.BlogPost) (*model.BlogPost, error) {
	doc := r.prepare(p)
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("%w: failed to insert blog post: %w", model.ErrStorage, err)
	}
	return doc.toModel(), nil
}

func (r *mongoRepository) InsertMany(ctx context.Context, posts []*model.BlogPost) ([]*model.BlogPost, error) {
	if len(posts) == 0 {
		return []*model.BlogPost{}, nil
	}

	docs := make([]interface{}, 0, len(posts))
	created := make([]*model.BlogPost, 0, len(posts))
	for _, p := range posts {
		doc := r.prepare(p)
		docs = append(docs, doc)
		created = append(created, doc.toModel())
	}

	if _, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return nil, fmt.Errorf("%w: failed to insert blog posts: %w", model.ErrStorage, err)
	}
	return created, nil
}

func (r *mongoRepository) FindAll(ctx context.Context) ([]*model.BlogPost, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list blog posts: %w", model.ErrStorage, err)
	}
	defer cursor.Close(ctx)

	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: failed to decode blog posts: %w", model.ErrStorage, err)
	}

	posts := make([]*model.BlogPost, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, d.toModel())
	}
	return posts, nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id string) (*model.BlogPost, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.ErrPostNotFound
	}

	var doc postDocument
	err = r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("%w: failed to get blog post by id: %w", model.ErrStorage, err)
	}
	return doc.toModel(), nil
}

func (r *mongoRepository) UpdateByID(ctx context.Context, id string, update model.PostUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.ErrPostNotFound
	}
	filter := bson.D{{Key: "_id", Value: oid}}

	// An empty $set is rejected by the server; an empty update only has to
	// confirm the document exists.
	if update.IsEmpty() {
		n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
		if err != nil {
			return fmt.Errorf("%w: failed to check blog post: %w", model.ErrStorage, err)
		}
		if n == 0 {
			return model.ErrPostNotFound
		}
		return nil
	}

	res, err := r.coll.UpdateOne(ctx, filter, bson.D{{Key: "$set", Value: toSetDocument(update)}})
	if err != nil {
		return fmt.Errorf("%w: failed to update blog post: %w", model.ErrStorage, err)
	}
	if res.MatchedCount == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

func (r *mongoRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return false, fmt.Errorf("%w: failed to delete blog post: %w", model.ErrStorage, err)
	}
	return res.DeletedCount > 0, nil
}

func (r *mongoRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("%w: failed to count blog posts: %w", model.ErrStorage, err)
	}
	return n, nil
}

func (r *mongoRepository) DropAll(ctx context.Context) error {
	if err := r.coll.Drop(ctx); err != nil {
		return fmt.Errorf("%w: failed to drop blog posts: %w", model.ErrStorage, err)
	}
	return nil
}
