package models

import (
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePostForm(t *testing.T) {
	okContent := "This content is long enough."

	tests := []struct {
		name        string
		title       string
		content     string
		wantTitle   string
		wantContent string
		wantMsg     string
	}{
		{name: "valid and trimmed", title: "  Hello World!! ", content: "\n" + okContent + "  ", wantTitle: "Hello World!!", wantContent: okContent},
		{name: "empty title", title: "   ", content: okContent, wantMsg: "please fill in all fields"},
		{name: "empty content", title: "Hello", content: "", wantMsg: "please fill in all fields"},
		{name: "short title", title: "Hey", content: okContent, wantMsg: "title must be at least 5"},
		{name: "title at minimum", title: "Hello", content: okContent, wantTitle: "Hello", wantContent: okContent},
		{name: "long title", title: strings.Repeat("t", 101), content: okContent, wantMsg: "title must be at most 100"},
		{name: "short content", title: "Hello", content: "too short", wantMsg: "content must be at least 20"},
		{name: "long content", title: "Hello", content: strings.Repeat("c", 5001), wantMsg: "content must be at most 5000"},
		{name: "runes not bytes", title: "Привет", content: strings.Repeat("ж", 20), wantTitle: "Привет", wantContent: strings.Repeat("ж", 20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, content, err := ValidatePostForm(tt.title, tt.content)
			if tt.wantMsg != "" {
				require.ErrorIs(t, err, common.ErrValidation)
				assert.Contains(t, err.Error(), tt.wantMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.wantContent, content)
		})
	}
}

func TestValidateSignupForm(t *testing.T) {
	tests := []struct {
		name                         string
		username, email, pass, again string
		wantMsg                      string
	}{
		{name: "valid", username: " alice ", email: "alice@example.com", pass: "secret1", again: "secret1"},
		{name: "missing email", username: "alice", pass: "secret1", again: "secret1", wantMsg: "fill in all fields"},
		{name: "mismatch", username: "alice", email: "a@b.c", pass: "secret1", again: "secret2", wantMsg: "do not match"},
		{name: "short password", username: "alice", email: "a@b.c", pass: "12345", again: "12345", wantMsg: "at least 6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, e, err := ValidateSignupForm(tt.username, tt.email, tt.pass, tt.again)
			if tt.wantMsg != "" {
				require.ErrorIs(t, err, common.ErrValidation)
				assert.Contains(t, err.Error(), tt.wantMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "alice", u)
			assert.Equal(t, "alice@example.com", e)
		})
	}
}

func TestSeedPostAndEdited(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p := SeedPost(now)

	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "Admin", p.Author)
	assert.False(t, p.Edited())

	p.UpdatedAt = now.Add(time.Minute)
	assert.True(t, p.Edited())
}

func TestFilterByAuthorAndFindAccount(t *testing.T) {
	posts := []Post{{ID: 3, Author: "alice"}, {ID: 2, Author: "bob"}, {ID: 1, Author: "alice"}}
	mine := FilterByAuthor(posts, "alice")
	require.Len(t, mine, 2)
	assert.Equal(t, int64(3), mine[0].ID)
	assert.Equal(t, int64(1), mine[1].ID)
	assert.Empty(t, FilterByAuthor(posts, "carol"))

	dir := []Account{{User: User{ID: 10, Username: "alice"}}}
	a, ok := FindAccount(dir, "alice")
	require.True(t, ok)
	assert.Equal(t, int64(10), a.ID)
	_, ok = FindAccount(dir, "bob")
	assert.False(t, ok)
}
