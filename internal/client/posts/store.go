// Package posts implements the Post Store: the blog post collection kept in
// the "blog-posts" record.
//
// Fetch simulates a network round trip; Create, Update and Delete are
// synchronous. Every mutation writes the whole collection before the
// in-memory state changes, so a failed write leaves both untouched.
package posts

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/client/repositories/records"
	"github.com/dmitrijs2005/gophblog/internal/client/state"
	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/logging"
	"github.com/dmitrijs2005/gophblog/internal/timex"
)

// IDSource hands out post ids.
type IDSource interface {
	Next() int64
	Observe(id int64)
}

type Options struct {
	Delay  time.Duration
	Now    func() time.Time
	IDs    IDSource
	Logger logging.Logger
}

type Store struct {
	repo  records.Repository
	delay time.Duration
	now   func() time.Time
	ids   IDSource
	log   logging.Logger

	state *state.Container[State, action]
	seq   state.Sequence

	mu       sync.Mutex
	hydrated bool
}

func New(repo records.Repository, opts Options) *Store {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.IDs == nil {
		opts.IDs = timex.NewIDGenerator(opts.Now)
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}

	return &Store{
		repo:  repo,
		delay: opts.Delay,
		now:   opts.Now,
		ids:   opts.IDs,
		log:   opts.Logger.With("store", "posts"),
		state: state.NewContainer(State{}, reduce),
	}
}

// State returns a snapshot; the Posts slice is a copy.
func (s *Store) State() State {
	st := s.state.Get()
	st.Posts = slices.Clone(st.Posts)
	return st
}

func (s *Store) Subscribe(fn func(State)) func() {
	return s.state.Subscribe(fn)
}

// Get looks a post up by id in the current collection.
func (s *Store) Get(id int64) (models.Post, bool) {
	for _, p := range s.state.Get().Posts {
		if p.ID == id {
			return p, true
		}
	}
	return models.Post{}, false
}

// Fetch loads the collection after the configured delay. When nothing has
// been stored yet, the welcome post is created and persisted.
func (s *Store) Fetch(ctx context.Context) error {
	s.mu.Lock()
	ticket := s.seq.Next()
	s.state.Dispatch(action{kind: actionStart})
	s.mu.Unlock()

	if err := state.Sleep(ctx, s.delay); err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.seq.IsCurrent(ticket) {
			s.state.Dispatch(action{kind: actionSettle})
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.seq.IsCurrent(ticket) {
		return common.ErrSuperseded
	}

	posts, err := s.load(ctx)
	if err != nil {
		s.log.Error(ctx, "failed to fetch posts", "error", err)
		s.state.Dispatch(action{kind: actionFailed, err: err.Error()})
		return err
	}

	s.hydrated = true
	s.log.Debug(ctx, "posts fetched", "count", len(posts))
	s.state.Dispatch(action{kind: actionLoaded, posts: posts})
	return nil
}

func (s *Store) load(ctx context.Context) ([]models.Post, error) {
	posts, ok, err := records.GetJSON[[]models.Post](ctx, s.repo, common.KeyPosts)
	if err != nil {
		return nil, err
	}

	if !ok {
		posts = []models.Post{models.SeedPost(s.now())}
		if err := records.SetJSON(ctx, s.repo, common.KeyPosts, posts); err != nil {
			return nil, fmt.Errorf("failed to persist seed post: %w", err)
		}
	}

	for _, p := range posts {
		s.ids.Observe(p.ID)
	}
	return posts, nil
}

// ensureHydrated loads storage without delay when no fetch has completed,
// so a mutation never overwrites persisted posts. Callers hold s.mu.
func (s *Store) ensureHydrated(ctx context.Context) error {
	if s.hydrated {
		return nil
	}

	posts, err := s.load(ctx)
	if err != nil {
		return err
	}

	s.hydrated = true
	s.state.Dispatch(action{kind: actionReplace, posts: posts})
	return nil
}

// commit persists next and only then publishes it.
func (s *Store) commit(ctx context.Context, next []models.Post) error {
	if err := records.SetJSON(ctx, s.repo, common.KeyPosts, next); err != nil {
		return err
	}
	s.state.Dispatch(action{kind: actionReplace, posts: next})
	return nil
}

func (s *Store) fail(ctx context.Context, msg string, err error) error {
	s.log.Error(ctx, msg, "error", err)
	s.state.Dispatch(action{kind: actionFailed, err: err.Error()})
	return err
}

// Create prepends a new post. The draft is stored as given.
func (s *Store) Create(ctx context.Context, draft models.PostDraft) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureHydrated(ctx); err != nil {
		return models.Post{}, s.fail(ctx, "failed to load posts", err)
	}

	now := s.now()
	post := models.Post{
		ID:        s.ids.Next(),
		Title:     draft.Title,
		Content:   draft.Content,
		Author:    draft.Author,
		CreatedAt: now,
		UpdatedAt: now,
	}

	current := s.state.Get().Posts
	next := make([]models.Post, 0, len(current)+1)
	next = append(next, post)
	next = append(next, current...)

	if err := s.commit(ctx, next); err != nil {
		return models.Post{}, s.fail(ctx, "failed to create post", err)
	}

	s.log.Debug(ctx, "post created", "id", post.ID, "author", post.Author)
	return post, nil
}

// Update replaces title and content of post id. Author and CreatedAt are kept.
func (s *Store) Update(ctx context.Context, id int64, patch models.PostPatch) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureHydrated(ctx); err != nil {
		return models.Post{}, s.fail(ctx, "failed to load posts", err)
	}

	current := s.state.Get().Posts
	i := slices.IndexFunc(current, func(p models.Post) bool { return p.ID == id })
	if i < 0 {
		s.log.Debug(ctx, "update of unknown post", "id", id)
		return models.Post{}, fmt.Errorf("post %d: %w", id, common.ErrPostNotFound)
	}

	post := current[i]
	post.Title = patch.Title
	post.Content = patch.Content
	post.UpdatedAt = s.now()
	if post.UpdatedAt.Before(post.CreatedAt) {
		post.UpdatedAt = post.CreatedAt
	}

	next := slices.Clone(current)
	next[i] = post

	if err := s.commit(ctx, next); err != nil {
		return models.Post{}, s.fail(ctx, "failed to update post", err)
	}

	s.log.Debug(ctx, "post updated", "id", id)
	return post, nil
}

// Delete removes post id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureHydrated(ctx); err != nil {
		return s.fail(ctx, "failed to load posts", err)
	}

	current := s.state.Get().Posts
	i := slices.IndexFunc(current, func(p models.Post) bool { return p.ID == id })
	if i < 0 {
		s.log.Debug(ctx, "delete of unknown post", "id", id)
		return fmt.Errorf("post %d: %w", id, common.ErrPostNotFound)
	}

	next := slices.Delete(slices.Clone(current), i, i+1)

	if err := s.commit(ctx, next); err != nil {
		return s.fail(ctx, "failed to delete post", err)
	}

	s.log.Debug(ctx, "post deleted", "id", id)
	return nil
}
