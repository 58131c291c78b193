package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/common"
)

var errUsage = errors.New("usage")

func parseID(cmd string, args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: %s <id>", errUsage, cmd)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s <id> (id must be a number)", errUsage, cmd)
	}
	return id, nil
}

// requireUser returns the signed-in user or ErrUnauthenticated.
func (a *App) requireUser() (models.User, error) {
	u := a.currentUser()
	if !a.isLoggedIn() || u == nil {
		return models.User{}, common.ErrUnauthenticated
	}
	return *u, nil
}

// ownPost looks up id and checks that the signed-in user wrote it.
func (a *App) ownPost(id int64) (models.Post, error) {
	user, err := a.requireUser()
	if err != nil {
		return models.Post{}, err
	}
	p, ok := a.posts.Get(id)
	if !ok {
		return models.Post{}, fmt.Errorf("post %d: %w", id, common.ErrPostNotFound)
	}
	if p.Author != user.Username {
		return models.Post{}, common.ErrNotAuthor
	}
	return p, nil
}

// List shows the home page.
func (a *App) List(ctx context.Context) error {
	st := a.posts.State()
	if st.Err != "" {
		a.println("Error:", st.Err)
	}

	a.outMu.Lock()
	defer a.outMu.Unlock()
	renderHome(a.out, st.Posts, a.currentUsername())
	return nil
}

// Show prints one post in full.
func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID("show", args)
	if err != nil {
		return err
	}
	p, ok := a.posts.Get(id)
	if !ok {
		return fmt.Errorf("post %d: %w", id, common.ErrPostNotFound)
	}

	a.outMu.Lock()
	defer a.outMu.Unlock()
	renderPost(a.out, p, a.currentUsername())
	return nil
}

// Create asks for title and content and publishes a post as the signed-in user.
func (a *App) Create(ctx context.Context) error {
	user, err := a.requireUser()
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}

	title, content, err = models.ValidatePostForm(title, content)
	if err != nil {
		return err
	}

	p, err := a.posts.Create(ctx, models.PostDraft{Title: title, Content: content, Author: user.Username})
	if err != nil {
		return err
	}

	a.println(fmt.Sprintf("Post #%d published.", p.ID))
	return nil
}

// Edit updates one of the user's posts. Empty input keeps the current value.
func (a *App) Edit(ctx context.Context, args []string) error {
	if _, err := a.requireUser(); err != nil {
		return err
	}
	id, err := parseID("edit", args)
	if err != nil {
		return err
	}
	p, err := a.ownPost(id)
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s]", p.Title), a.out)
	if err != nil {
		return err
	}
	if title == "" {
		title = p.Title
	}

	content, err := getMultiline(a.reader, "Content (empty keeps the current text)", a.out)
	if err != nil {
		return err
	}
	if content == "" {
		content = p.Content
	}

	title, content, err = models.ValidatePostForm(title, content)
	if err != nil {
		return err
	}

	if _, err := a.posts.Update(ctx, id, models.PostPatch{Title: title, Content: content}); err != nil {
		return err
	}

	a.println(fmt.Sprintf("Post #%d updated.", id))
	return nil
}

// Delete removes one of the user's posts after confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	if _, err := a.requireUser(); err != nil {
		return err
	}
	id, err := parseID("delete", args)
	if err != nil {
		return err
	}
	p, err := a.ownPost(id)
	if err != nil {
		return err
	}

	ok, err := confirm(a.reader, fmt.Sprintf("Delete %q?", p.Title), a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.println("Cancelled.")
		return nil
	}

	if err := a.posts.Delete(ctx, id); err != nil {
		return err
	}

	a.println(fmt.Sprintf("Post #%d deleted.", id))
	return nil
}

// Profile shows the signed-in user and their posts.
func (a *App) Profile(ctx context.Context) error {
	user, err := a.requireUser()
	if err != nil {
		return err
	}

	own := models.FilterByAuthor(a.posts.State().Posts, user.Username)

	a.outMu.Lock()
	defer a.outMu.Unlock()
	renderProfile(a.out, user, own)
	return nil
}
