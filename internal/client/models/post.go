package models

import "time"

// Post is a blog entry owned by its author (a username).
type Post struct {
	ID        int64     `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content"`
	Author    string    `json:"author" yaml:"author"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Edited reports whether the post changed after creation.
func (p Post) Edited() bool {
	return !p.UpdatedAt.Equal(p.CreatedAt)
}

// PostDraft is the input for creating a post.
type PostDraft struct {
	Title   string
	Content string
	Author  string
}

// PostPatch is the input for editing a post. Author and CreatedAt are kept.
type PostPatch struct {
	Title   string
	Content string
}

// Seed post shown when no collection has been persisted yet.
const (
	SeedPostID      int64 = 1
	SeedPostTitle         = "Welcome to Our Blog"
	SeedPostContent       = "This is your first blog post. Start writing amazing content!"
	SeedPostAuthor        = "Admin"
)

// SeedPost builds the welcome post stamped with now.
func SeedPost(now time.Time) Post {
	return Post{
		ID:        SeedPostID,
		Title:     SeedPostTitle,
		Content:   SeedPostContent,
		Author:    SeedPostAuthor,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FilterByAuthor returns the posts written by author, keeping order.
func FilterByAuthor(posts []Post, author string) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if p.Author == author {
			out = append(out, p)
		}
	}
	return out
}
