package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"gopkg.in/yaml.v3"
)

// PreviewLen is how much post content the home list shows, in runes.
const PreviewLen = 150

// Output formats for WritePosts.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

func formatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "..."
}

func rule(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("-", 60))
}

// renderHome writes the post list. currentUser may be empty.
func renderHome(w io.Writer, posts []models.Post, currentUser string) {
	fmt.Fprintln(w, "Latest Blog Posts")
	rule(w)

	if len(posts) == 0 {
		if currentUser != "" {
			fmt.Fprintln(w, "No blog posts yet. Be the first to create one!")
		} else {
			fmt.Fprintln(w, "No blog posts yet. Please login to create a post.")
		}
		return
	}

	for _, p := range posts {
		mine := ""
		if currentUser != "" && p.Author == currentUser {
			mine = "  [yours: edit " + fmt.Sprint(p.ID) + "]"
		}
		fmt.Fprintf(w, "#%d %s%s\n", p.ID, p.Title, mine)
		fmt.Fprintf(w, "By %s on %s\n", p.Author, formatDate(p.CreatedAt))
		fmt.Fprintln(w, truncate(p.Content, PreviewLen))
		rule(w)
	}
}

// renderPost writes the full post view.
func renderPost(w io.Writer, p models.Post, currentUser string) {
	fmt.Fprintf(w, "#%d %s\n", p.ID, p.Title)
	fmt.Fprintf(w, "By %s on %s\n", p.Author, formatDate(p.CreatedAt))
	if p.Edited() {
		fmt.Fprintf(w, "Updated on %s\n", formatDate(p.UpdatedAt))
	}
	rule(w)
	fmt.Fprintln(w, p.Content)
	if currentUser != "" && p.Author == currentUser {
		rule(w)
		fmt.Fprintf(w, "You wrote this post: edit %d | delete %d\n", p.ID, p.ID)
	}
}

// renderProfile writes the profile view for user and their posts.
func renderProfile(w io.Writer, user models.User, own []models.Post) {
	fmt.Fprintln(w, user.Username)
	fmt.Fprintln(w, user.Email)
	fmt.Fprintf(w, "%d Posts Published | Member since %s\n", len(own), formatDate(user.JoinedAt))
	rule(w)
	fmt.Fprintln(w, "Your Blog Posts")

	if len(own) == 0 {
		fmt.Fprintln(w, "You haven't written any blog posts yet. Type 'create' to write your first one.")
		return
	}

	for _, p := range own {
		fmt.Fprintf(w, "#%d %s (%s)\n", p.ID, p.Title, formatDate(p.CreatedAt))
	}
}

// WritePosts prints posts in the requested format.
func WritePosts(w io.Writer, posts []models.Post, format string) error {
	if posts == nil {
		posts = []models.Post{}
	}

	switch format {
	case FormatText, "":
		for _, p := range posts {
			renderPost(w, p, "")
			rule(w)
		}
		return nil

	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(posts)

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(posts); err != nil {
			return err
		}
		return enc.Close()

	default:
		return fmt.Errorf("invalid format %q: must be one of text, json, yaml", format)
	}
}
