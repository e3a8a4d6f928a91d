package seed

import (
	"github.com/brianvoe/gofakeit/v6"

	"blog-api/internal/domains/post/model"
)

// Generator builds fake blog posts for seeding and tests.
// The same seed always yields the same sequence of posts; seed 0 is random.
type Generator struct {
	faker *gofakeit.Faker
}

func NewGenerator(seed int64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// Post returns one post without ID or PublishDate; the store assigns both.
func (g *Generator) Post() *model.BlogPost {
	return &model.BlogPost{
		Title:   g.faker.Sentence(6),
		Content: g.faker.Paragraph(1, 4, 12, " "),
		Author: model.Author{
			FirstName: g.faker.FirstName(),
			LastName:  g.faker.LastName(),
		},
	}
}

func (g *Generator) Posts(n int) []*model.BlogPost {
	if n < 0 {
		n = 0
	}
	posts := make([]*model.BlogPost, 0, n)
	for i := 0; i < n; i++ {
		posts = append(posts, g.Post())
	}
	return posts
}
