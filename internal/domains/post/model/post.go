package model

import (
	"strings"
	"time"
)

// BlogPost is the single entity managed by the API.
// ID and PublishDate are assigned by the store and never changed by clients.
type BlogPost struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Author      Author    `json:"author"`
	PublishDate time.Time `json:"publishDate"`
}

// Author is stored as a structured value; the API only ever renders it as a display string.
type Author struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// DisplayName joins first and last name, e.g. "Sally Student".
func (a Author) DisplayName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// PostUpdate carries the fields an update overwrites. Nil means "leave as is".
type PostUpdate struct {
	Title   *string
	Content *string
	Author  *Author
}

// IsEmpty reports whether the update names no field at all.
func (u PostUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil && u.Author == nil
}

// ApplyTo overwrites the named fields of p. ID and PublishDate are never touched.
func (u PostUpdate) ApplyTo(p *BlogPost) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Content != nil {
		p.Content = *u.Content
	}
	if u.Author != nil {
		p.Author = *u.Author
	}
}
