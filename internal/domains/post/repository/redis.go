package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"

	"blog-api/internal/domains/post/model"
)

// Optimistic WATCH retries for UpdateByID before giving up.
const redisUpdateAttempts = 3

type redisAuthor struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// redisDocument is the JSON value stored under blogpost:<id>
type redisDocument struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Content     string      `json:"content"`
	Author      redisAuthor `json:"author"`
	PublishDate time.Time   `json:"publishDate"`
}

func toRedisDocument(p *model.BlogPost) redisDocument {
	return redisDocument{
		ID:          p.ID,
		Title:       p.Title,
		Content:     p.Content,
		Author:      redisAuthor{FirstName: p.Author.FirstName, LastName: p.Author.LastName},
		PublishDate: p.PublishDate,
	}
}

func (d redisDocument) toModel() *model.BlogPost {
	return &model.BlogPost{
		ID:          d.ID,
		Title:       d.Title,
		Content:     d.Content,
		Author:      model.Author{FirstName: d.Author.FirstName, LastName: d.Author.LastName},
		PublishDate: d.PublishDate.UTC(),
	}
}

// redisRepository keeps one JSON string per post plus a set of all ids
type redisRepository struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisRepository creates a repository; prefix namespaces every key.
func NewRedisRepository(client *redis.Client, prefix string) RepositoryInterface {
	return &redisRepository{
		client: client,
		prefix: prefix,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *redisRepository) postKey(id string) string {
	return r.prefix + "blogpost:" + id
}

func (r *redisRepository) indexKey() string {
	return r.prefix + "blogposts"
}

func (r *redisRepository) prepare(p *model.BlogPost) (redisDocument, []byte, error) {
	doc := toRedisDocument(p)
	doc.ID = ulid.Make().String()
	if doc.PublishDate.IsZero() {
		doc.PublishDate = r.now()
	} else {
		doc.PublishDate = doc.PublishDate.UTC()
	}
	data, err := json.Marshal(doc)
	return doc, data, err
}

func (r *redisRepository) InsertOne(ctx context.Context, p *model.BlogPost) (*model.BlogPost, error) {
	created, err := r.InsertMany(ctx, []*model.BlogPost{p})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

func (r *redisRepository) InsertMany(ctx context.Context, posts []*model.BlogPost) ([]*model.BlogPost, error) {
	created := make([]*model.BlogPost, 0, len(posts))
	if len(posts) == 0 {
		return created, nil
	}

	type entry struct {
		id   string
		data []byte
	}
	entries := make([]entry, 0, len(posts))
	for _, p := range posts {
		doc, data, err := r.prepare(p)
		if err != nil {
			return nil, fmt.Errorf("failed to encode blog post: %w", err)
		}
		entries = append(entries, entry{id: doc.ID, data: data})
		created = append(created, doc.toModel())
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, e := range entries {
			pipe.Set(ctx, r.postKey(e.id), e.data, 0)
			pipe.SAdd(ctx, r.indexKey(), e.id)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to insert blog posts: %w", model.ErrStorage, err)
	}
	return created, nil
}

func (r *redisRepository) FindAll(ctx context.Context) ([]*model.BlogPost, error) {
	ids, err := r.client.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list blog post ids: %w", model.ErrStorage, err)
	}
	posts := make([]*model.BlogPost, 0, len(ids))
	if len(ids) == 0 {
		return posts, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.postKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list blog posts: %w", model.ErrStorage, err)
	}

	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// removed between SMEMBERS and MGET
			continue
		}
		var doc redisDocument
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, fmt.Errorf("%w: failed to decode blog post: %w", model.ErrStorage, err)
		}
		posts = append(posts, doc.toModel())
	}
	return posts, nil
}

func (r *redisRepository) FindByID(ctx context.Context, id string) (*model.BlogPost, error) {
	raw, err := r.client.Get(ctx, r.postKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("%w: failed to get blog post by id: %w", model.ErrStorage, err)
	}

	var doc redisDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to decode blog post: %w", model.ErrStorage, err)
	}
	return doc.toModel(), nil
}

func (r *redisRepository) UpdateByID(ctx context.Context, id string, update model.PostUpdate) error {
	key := r.postKey(id)

	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return model.ErrPostNotFound
			}
			return err
		}

		var doc redisDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return err
		}
		p := doc.toModel()
		update.ApplyTo(p)
		data, err := json.Marshal(toRedisDocument(p))
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}

	var err error
	for attempt := 0; attempt < redisUpdateAttempts; attempt++ {
		err = r.client.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}

	switch {
	case err == nil:
		return nil
	case errors.Is(err, model.ErrPostNotFound):
		return err
	default:
		return fmt.Errorf("%w: failed to update blog post: %w", model.ErrStorage, err)
	}
}

func (r *redisRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	var del *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, r.postKey(id))
		pipe.SRem(ctx, r.indexKey(), id)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%w: failed to delete blog post: %w", model.ErrStorage, err)
	}
	return del.Val() > 0, nil
}

func (r *redisRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.client.SCard(ctx, r.indexKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: failed to count blog posts: %w", model.ErrStorage, err)
	}
	return n, nil
}

func (r *redisRepository) DropAll(ctx context.Context) error {
	ids, err := r.client.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return fmt.Errorf("%w: failed to list blog post ids: %w", model.ErrStorage, err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, r.postKey(id))
	}
	keys = append(keys, r.indexKey())

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: failed to drop blog posts: %w", model.ErrStorage, err)
	}
	return nil
}
