package model

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var nonBlank = regexp.MustCompile(`\S`)

// ========================================
// REQUEST DTOs
// ========================================

// AuthorRequest is the structured author accepted on create and update.
type AuthorRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (r AuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName,
			validation.Required.Error("firstName is required"),
			validation.Match(nonBlank).Error("firstName must not be blank"),
		),
		validation.Field(&r.LastName,
			validation.Required.Error("lastName is required"),
			validation.Match(nonBlank).Error("lastName must not be blank"),
		),
	)
}

func (r AuthorRequest) toAuthor() Author {
	return Author{
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
	}
}

// CreatePostRequest - POST /posts
type CreatePostRequest struct {
	Title       string        `json:"title"`
	Content     string        `json:"content"`
	Author      AuthorRequest `json:"author"`
	PublishDate *time.Time    `json:"publishDate,omitempty"`
}

func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Match(nonBlank).Error("title must not be blank"),
		),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.Match(nonBlank).Error("content must not be blank"),
		),
		validation.Field(&r.Author),
	)
}

// ToEntity converts the request to a BlogPost without ID.
// A zero PublishDate lets the store stamp the creation instant.
func (r CreatePostRequest) ToEntity() *BlogPost {
	p := &BlogPost{
		Title:   strings.TrimSpace(r.Title),
		Content: strings.TrimSpace(r.Content),
		Author:  r.Author.toAuthor(),
	}
	if r.PublishDate != nil {
		p.PublishDate = r.PublishDate.UTC()
	}
	return p
}

// UpdatePostRequest - PUT /posts/:id
// ID must repeat the path id; every other field is optional.
type UpdatePostRequest struct {
	ID      string         `json:"id"`
	Title   *string        `json:"title,omitempty"`
	Content *string        `json:"content,omitempty"`
	Author  *AuthorRequest `json:"author,omitempty"`
}

func (r UpdatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID,
			validation.Required.Error("id is required"),
		),
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("title must not be empty"),
			validation.Match(nonBlank).Error("title must not be blank"),
		),
		validation.Field(&r.Content,
			validation.NilOrNotEmpty.Error("content must not be empty"),
			validation.Match(nonBlank).Error("content must not be blank"),
		),
		validation.Field(&r.Author),
	)
}

// ToUpdate converts the request into the set of field overwrites.
func (r UpdatePostRequest) ToUpdate() PostUpdate {
	var u PostUpdate
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		u.Title = &title
	}
	if r.Content != nil {
		content := strings.TrimSpace(*r.Content)
		u.Content = &content
	}
	if r.Author != nil {
		author := r.Author.toAuthor()
		u.Author = &author
	}
	return u
}

// ========================================
// RESPONSE DTOs
// ========================================

// PostResponse is the wire shape of a blog post; Author is the rendered display name.
type PostResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Author      string    `json:"author"`
	PublishDate time.Time `json:"publishDate"`
}

// PostListResponse - GET /posts
type PostListResponse struct {
	BlogPosts []PostResponse `json:"blog_posts"`
}

// ToResponse converts BlogPost to PostResponse
func (p *BlogPost) ToResponse() *PostResponse {
	return &PostResponse{
		ID:          p.ID,
		Title:       p.Title,
		Content:     p.Content,
		Author:      p.Author.DisplayName(),
		PublishDate: p.PublishDate,
	}
}

// ToListResponse renders posts, always as a JSON array (never null).
func ToListResponse(posts []*BlogPost) *PostListResponse {
	items := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		items = append(items, *p.ToResponse())
	}
	return &PostListResponse{BlogPosts: items}
}
