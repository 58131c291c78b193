package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/gophblog/internal/client/auth"
	"github.com/dmitrijs2005/gophblog/internal/client/config"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/client/posts"
	"github.com/dmitrijs2005/gophblog/internal/client/repositories/records"
	"github.com/dmitrijs2005/gophblog/internal/client/tokens"
	"github.com/dmitrijs2005/gophblog/internal/logging"
	"github.com/dmitrijs2005/gophblog/internal/timex"
)

type authStore interface {
	State() auth.State
	Subscribe(fn func(auth.State)) func()
	ClearError()
	Init(ctx context.Context) error
	Login(ctx context.Context, username, password string) error
	Signup(ctx context.Context, username, email, password string) error
	Logout(ctx context.Context) error
	Session() (models.Session, bool)
}

type postStore interface {
	State() posts.State
	Subscribe(fn func(posts.State)) func()
	Get(id int64) (models.Post, bool)
	Fetch(ctx context.Context) error
	Create(ctx context.Context, draft models.PostDraft) (models.Post, error)
	Update(ctx context.Context, id int64, patch models.PostPatch) (models.Post, error)
	Delete(ctx context.Context, id int64) error
}

type App struct {
	config *config.Config
	auth   authStore
	posts  postStore
	log    logging.Logger

	reader *bufio.Reader
	out    io.Writer

	closeFn func() error
	unsubs  []func()

	// guards out for the loading watcher
	outMu sync.Mutex
}

// NewApp opens the configured records backend and builds both stores on it.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}

	repo, closeFn, err := records.Open(ctx, c.RecordsOptions())
	if err != nil {
		log.Error(ctx, "error opening records store", "driver", c.StorageDriver, "error", err)
		return nil, err
	}

	secret, err := auth.SigningSecret(ctx, repo, c.TokenSecret)
	if err != nil {
		_ = closeFn()
		return nil, err
	}

	ids := timex.NewIDGenerator(nil)

	as := auth.New(repo, auth.Options{
		Delay:     c.AuthDelay,
		Tokens:    tokens.NewIssuer(secret, c.TokenTTL, nil),
		IDs:       ids,
		Logger:    log,
		DemoLogin: c.DemoLogin,
	})
	ps := posts.New(repo, posts.Options{
		Delay:  c.FetchDelay,
		IDs:    ids,
		Logger: log,
	})

	a := newApp(c, as, ps, log, bufio.NewReader(os.Stdin), os.Stdout)
	a.closeFn = closeFn
	return a, nil
}

func newApp(c *config.Config, as authStore, ps postStore, log logging.Logger, r *bufio.Reader, w io.Writer) *App {
	if log == nil {
		log = logging.Nop()
	}
	a := &App{
		config:  c,
		auth:    as,
		posts:   ps,
		log:     log,
		reader:  r,
		out:     w,
		closeFn: func() error { return nil },
	}
	a.watchLoading()
	return a
}

// watchLoading prints "Loading..." whenever a store starts a delayed call.
func (a *App) watchLoading() {
	authLoading := a.auth.State().Loading
	postsLoading := a.posts.State().Loading

	a.unsubs = append(a.unsubs,
		a.auth.Subscribe(func(s auth.State) {
			if s.Loading && !authLoading {
				a.println("Loading...")
			}
			authLoading = s.Loading
		}),
		a.posts.Subscribe(func(s posts.State) {
			if s.Loading && !postsLoading {
				a.println("Loading...")
			}
			postsLoading = s.Loading
		}),
	)
}

func (a *App) println(args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintln(a.out, args...)
}

// Run restores the session, loads the posts and hands over to the REPL.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	a.println("Welcome to GophBlog (type 'help' for commands)")

	if err := a.auth.Init(ctx); err != nil {
		a.log.Warn(ctx, "session restore failed", "error", err)
	}
	if err := a.posts.Fetch(ctx); err != nil {
		a.log.Error(ctx, "initial fetch failed", "error", err)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

// Close detaches the watchers and releases the records backend.
func (a *App) Close() error {
	for _, u := range a.unsubs {
		u()
	}
	a.unsubs = nil
	return a.closeFn()
}

func (a *App) isLoggedIn() bool {
	return a.auth.State().IsAuthenticated
}

func (a *App) currentUser() *models.User {
	sess, ok := a.auth.Session()
	if !ok {
		return nil
	}
	return &sess.User
}

func (a *App) currentUsername() string {
	if u := a.currentUser(); u != nil {
		return u.Username
	}
	return ""
}

func (a *App) getStatus() string {
	if name := a.currentUsername(); name != "" {
		return fmt.Sprintf("(%s)", name)
	}
	return ""
}
