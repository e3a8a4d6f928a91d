package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-api/internal/domains/post/model"
	"blog-api/pkg/database"
)

// The post body lives in a JSONB document; id and publish_date are columns
// because the store owns them.
const postgresSchema = `
    CREATE TABLE IF NOT EXISTS blog_posts (
        id           UUID PRIMARY KEY,
        doc          JSONB NOT NULL,
        publish_date TIMESTAMPTZ NOT NULL
    )
`

// EnsurePostgresSchema creates the blog_posts table when missing
func EnsurePostgresSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("%w: failed to ensure blog_posts table: %w", model.ErrStorage, err)
	}
	return nil
}

type pgAuthor struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// pgDocument is the JSONB body of a row
type pgDocument struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Author  pgAuthor `json:"author"`
}

func toPgDocument(p *model.BlogPost) pgDocument {
	return pgDocument{
		Title:   p.Title,
		Content: p.Content,
		Author:  pgAuthor{FirstName: p.Author.FirstName, LastName: p.Author.LastName},
	}
}

func (d pgDocument) toModel(id uuid.UUID, publishDate time.Time) *model.BlogPost {
	return &model.BlogPost{
		ID:          id.String(),
		Title:       d.Title,
		Content:     d.Content,
		Author:      model.Author{FirstName: d.Author.FirstName, LastName: d.Author.LastName},
		PublishDate: publishDate.UTC(),
	}
}

// toPgPatch builds the object merged into doc with ||; only named keys appear.
func toPgPatch(u model.PostUpdate) map[string]any {
	patch := map[string]any{}
	if u.Title != nil {
		patch["title"] = *u.Title
	}
	if u.Content != nil {
		patch["content"] = *u.Content
	}
	if u.Author != nil {
		patch["author"] = pgAuthor{FirstName: u.Author.FirstName, LastName: u.Author.LastName}
	}
	return patch
}

// postgresRepository implements RepositoryInterface on a JSONB column
type postgresRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewPostgresRepository creates a repository over an already connected pool
func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
		now:  func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

const insertPostQuery = `
    INSERT INTO blog_posts (id, doc, publish_date)
    VALUES ($1, $2, $3)
`

func (r *postgresRepository) prepare(p *model.BlogPost) (uuid.UUID, pgDocument, time.Time) {
	publishDate := p.PublishDate
	if publishDate.IsZero() {
		publishDate = r.now()
	} else {
		publishDate = publishDate.UTC().Truncate(time.Microsecond)
	}
	return uuid.New(), toPgDocument(p), publishDate
}

func (r *postgresRepository) InsertOne(ctx context.Context, p *model.BlogPost) (*model.BlogPost, error) {
	id, doc, publishDate := r.prepare(p)

	if _, err := r.pool.Exec(ctx, insertPostQuery, id, doc, publishDate); err != nil {
		return nil, fmt.Errorf("%w: failed to insert blog post: %w", model.ErrStorage, err)
	}
	return doc.toModel(id, publishDate), nil
}

func (r *postgresRepository) InsertMany(ctx context.Context, posts []*model.BlogPost) ([]*model.BlogPost, error) {
	if len(posts) == 0 {
		return []*model.BlogPost{}, nil
	}

	created, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) ([]*model.BlogPost, error) {
		created := make([]*model.BlogPost, 0, len(posts))
		batch := &pgx.Batch{}
		for _, p := range posts {
			id, doc, publishDate := r.prepare(p)
			batch.Queue(insertPostQuery, id, doc, publishDate)
			created = append(created, doc.toModel(id, publishDate))
		}

		br := tx.SendBatch(ctx, batch)
		for range posts {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return nil, err
			}
		}
		return created, br.Close()
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to insert blog posts: %w", model.ErrStorage, err)
	}
	return created, nil
}

func (r *postgresRepository) FindAll(ctx context.Context) ([]*model.BlogPost, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, doc, publish_date FROM blog_posts`)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list blog posts: %w", model.ErrStorage, err)
	}
	defer rows.Close()

	posts := []*model.BlogPost{}
	for rows.Next() {
		var (
			id          uuid.UUID
			doc         pgDocument
			publishDate time.Time
		)
		if err := rows.Scan(&id, &doc, &publishDate); err != nil {
			return nil, fmt.Errorf("%w: failed to scan blog post: %w", model.ErrStorage, err)
		}
		posts = append(posts, doc.toModel(id, publishDate))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate blog posts: %w", model.ErrStorage, err)
	}
	return posts, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id string) (*model.BlogPost, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, model.ErrPostNotFound
	}

	var (
		doc         pgDocument
		publishDate time.Time
	)
	err = r.pool.QueryRow(ctx,
		`SELECT doc, publish_date FROM blog_posts WHERE id = $1`,
		uid,
	).Scan(&doc, &publishDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("%w: failed to get blog post by id: %w", model.ErrStorage, err)
	}
	return doc.toModel(uid, publishDate), nil
}

func (r *postgresRepository) UpdateByID(ctx context.Context, id string, update model.PostUpdate) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return model.ErrPostNotFound
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE blog_posts SET doc = doc || $2::jsonb WHERE id = $1`,
		uid, toPgPatch(update),
	)
	if err != nil {
		return fmt.Errorf("%w: failed to update blog post: %w", model.ErrStorage, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

func (r *postgresRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, uid)
	if err != nil {
		return false, fmt.Errorf("%w: failed to delete blog post: %w", model.ErrStorage, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM blog_posts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: failed to count blog posts: %w", model.ErrStorage, err)
	}
	return n, nil
}

func (r *postgresRepository) DropAll(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM blog_posts`); err != nil {
		return fmt.Errorf("%w: failed to drop blog posts: %w", model.ErrStorage, err)
	}
	return nil
}
