// Package auth implements the Auth Store: the session of the running client
// and the local user directory it authenticates against.
//
// Login and Signup simulate a network round trip with a configurable delay.
// While a call waits, a newer Login, Signup or Logout supersedes it and the
// older call returns common.ErrSuperseded without touching state or storage.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/client/repositories/records"
	"github.com/dmitrijs2005/gophblog/internal/client/state"
	"github.com/dmitrijs2005/gophblog/internal/client/tokens"
	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/cryptox"
	"github.com/dmitrijs2005/gophblog/internal/logging"
	"github.com/dmitrijs2005/gophblog/internal/timex"
)

// Messages shown in State.Err.
const (
	MsgInvalidCredentials = "Invalid credentials"
	MsgDuplicateUsername  = "Username already exists"
)

// Fallback identity accepted when Options.DemoLogin is set.
const (
	DemoUsername = "demo"
	DemoPassword = "password"
	DemoEmail    = "demo@example.com"
	DemoUserID   = int64(1)
)

// TokenIssuer mints and verifies session tokens.
type TokenIssuer interface {
	Mint(username string) (string, error)
	Parse(token string) (string, error)
}

// IDSource hands out user ids.
type IDSource interface {
	Next() int64
	Observe(id int64)
}

type Options struct {
	Delay time.Duration
	// Tokens signs session tokens. When nil, tokens never expire and are
	// signed with the secret kept in the token-secret record.
	Tokens    TokenIssuer
	Now       func() time.Time
	IDs       IDSource
	Logger    logging.Logger
	DemoLogin bool
}

type Store struct {
	repo      records.Repository
	delay     time.Duration
	tokens    TokenIssuer
	now       func() time.Time
	ids       IDSource
	log       logging.Logger
	demoLogin bool

	state *state.Container[State, action]
	seq   state.Sequence

	// serializes read-modify-write of the records
	mu sync.Mutex

	initOnce sync.Once
	initErr  error
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
		repo:      repo,
		delay:     opts.Delay,
		tokens:    opts.Tokens,
		now:       opts.Now,
		ids:       opts.IDs,
		log:       opts.Logger.With("store", "auth"),
		demoLogin: opts.DemoLogin,
		state:     state.NewContainer(State{Loading: true}, reduce),
	}
}

func (s *Store) State() State {
	return s.state.Get()
}

// Subscribe registers fn for every state change and returns its remover.
func (s *Store) Subscribe(fn func(State)) func() {
	return s.state.Subscribe(fn)
}

// ClearError drops the error message, e.g. when the user starts typing again.
func (s *Store) ClearError() {
	s.state.Dispatch(action{kind: actionClearError})
}

// Init restores the persisted session. It runs once; later calls return
// the first result.
func (s *Store) Init(ctx context.Context) error {
	s.initOnce.Do(func() {
		s.initErr = s.restore(ctx)
	})
	return s.initErr
}

func (s *Store) restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.repo.Get(ctx, common.KeyToken)
	if err != nil {
		s.log.Error(ctx, "failed to read session token", "error", err)
		s.state.Dispatch(action{kind: actionFailed, err: err.Error()})
		return err
	}

	user, ok, err := records.GetJSON[models.User](ctx, s.repo, common.KeyCurrentUser)
	if err != nil {
		s.log.Error(ctx, "failed to read session user", "error", err)
		s.state.Dispatch(action{kind: actionFailed, err: err.Error()})
		return err
	}

	if len(token) == 0 || !ok {
		s.state.Dispatch(action{kind: actionSettle})
		return nil
	}

	issuer, err := s.issuer(ctx)
	if err != nil {
		s.log.Error(ctx, "failed to load token secret", "error", err)
		s.state.Dispatch(action{kind: actionFailed, err: err.Error()})
		return err
	}

	username, err := issuer.Parse(string(token))
	if err == nil && username != user.Username {
		err = common.ErrInvalidToken
	}
	if err != nil {
		s.log.Warn(ctx, "dropping stored session", "reason", err)
		if derr := s.clearSession(ctx); derr != nil {
			s.state.Dispatch(action{kind: actionFailed, err: derr.Error()})
			return derr
		}
		s.state.Dispatch(action{kind: actionLoggedOut})
		return nil
	}

	s.log.Debug(ctx, "session restored", "user", user.Username)
	s.state.Dispatch(action{kind: actionAuthenticated, user: user, token: string(token)})
	return nil
}

// wait runs the simulated round trip for a delayed operation. It returns
// with s.mu held on success; the caller must unlock.
func (s *Store) wait(ctx context.Context) error {
	s.mu.Lock()
	ticket := s.seq.Next()
	s.state.Dispatch(action{kind: actionStart})
	s.mu.Unlock()

	if err := state.Sleep(ctx, s.delay); err != nil {
		s.mu.Lock()
		if s.seq.IsCurrent(ticket) {
			s.state.Dispatch(action{kind: actionSettle})
		}
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	if !s.seq.IsCurrent(ticket) {
		s.mu.Unlock()
		return common.ErrSuperseded
	}
	return nil
}

// Login authenticates against the directory, then against the demo
// identity when enabled.
func (s *Store) Login(ctx context.Context, username, password string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()

	user, err := s.authenticate(ctx, username, password)
	if errors.Is(err, common.ErrInvalidCredentials) {
		s.reject(ctx, err)
		return err
	}
	if err != nil {
		s.fail(ctx, "login failed", err)
		return err
	}

	if err := s.startSession(ctx, user); err != nil {
		s.fail(ctx, "failed to persist session", err)
		return err
	}
	return nil
}

func (s *Store) authenticate(ctx context.Context, username, password string) (models.User, error) {
	dir, err := s.directory(ctx)
	if err != nil {
		return models.User{}, err
	}

	if acc, ok := models.FindAccount(dir, username); ok {
		if cryptox.CheckPassword([]byte(password), acc.Salt, acc.Verifier) {
			return acc.User, nil
		}
	}

	if s.demoLogin && username == DemoUsername && password == DemoPassword {
		return models.User{
			ID:       DemoUserID,
			Username: DemoUsername,
			Email:    DemoEmail,
			JoinedAt: s.now(),
		}, nil
	}

	return models.User{}, common.ErrInvalidCredentials
}

// Signup creates an account and signs it in.
func (s *Store) Signup(ctx context.Context, username, email, password string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()

	dir, err := s.directory(ctx)
	if err != nil {
		s.fail(ctx, "signup failed", err)
		return err
	}

	if _, exists := models.FindAccount(dir, username); exists {
		s.fail(ctx, "signup failed", common.ErrDuplicateUsername)
		return common.ErrDuplicateUsername
	}

	salt, verifier := cryptox.NewCredentials([]byte(password))
	acc := models.Account{
		User: models.User{
			ID:       s.ids.Next(),
			Username: username,
			Email:    email,
			JoinedAt: s.now(),
		},
		Salt:     salt,
		Verifier: verifier,
	}

	next := make([]models.Account, 0, len(dir)+1)
	next = append(next, dir...)
	next = append(next, acc)

	if err := records.SetJSON(ctx, s.repo, common.KeyUsers, next); err != nil {
		s.fail(ctx, "failed to persist user directory", err)
		return err
	}
	s.log.Debug(ctx, "account created", "user", username, "id", acc.ID)

	if err := s.startSession(ctx, acc.User); err != nil {
		s.fail(ctx, "failed to persist session", err)
		return err
	}
	return nil
}

// Logout removes the session records. The directory is kept. Pending
// Login and Signup calls are superseded.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq.Next()

	if err := s.clearSession(ctx); err != nil {
		s.log.Error(ctx, "failed to clear session", "error", err)
		s.state.Dispatch(action{kind: actionSettle})
		return err
	}

	s.log.Debug(ctx, "logged out")
	s.state.Dispatch(action{kind: actionLoggedOut})
	return nil
}

func (s *Store) directory(ctx context.Context) ([]models.Account, error) {
	dir, _, err := records.GetJSON[[]models.Account](ctx, s.repo, common.KeyUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to load user directory: %w", err)
	}
	for _, a := range dir {
		s.ids.Observe(a.ID)
	}
	return dir, nil
}

func (s *Store) startSession(ctx context.Context, user models.User) error {
	issuer, err := s.issuer(ctx)
	if err != nil {
		return err
	}
	token, err := issuer.Mint(user.Username)
	if err != nil {
		return err
	}

	sess := models.Session{Token: token, User: user}
	if err := s.saveSession(ctx, sess); err != nil {
		return err
	}

	s.log.Debug(ctx, "session started", "user", user.Username)
	s.state.Dispatch(action{kind: actionAuthenticated, user: sess.User, token: sess.Token})
	return nil
}

// saveSession writes the token and user records together.
func (s *Store) saveSession(ctx context.Context, sess models.Session) error {
	user, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("failed to encode session user: %w", err)
	}
	return records.SetMany(ctx, s.repo,
		records.Entry{Key: common.KeyToken, Value: []byte(sess.Token)},
		records.Entry{Key: common.KeyCurrentUser, Value: user},
	)
}

func (s *Store) clearSession(ctx context.Context) error {
	if err := s.repo.Delete(ctx, common.KeyToken); err != nil {
		return err
	}
	return s.repo.Delete(ctx, common.KeyCurrentUser)
}

// reject ends a login attempt that matched no identity: the session, if
// any, is dropped and the error is shown.
func (s *Store) reject(ctx context.Context, err error) {
	s.log.Debug(ctx, "login rejected", "error", err)
	if derr := s.clearSession(ctx); derr != nil {
		s.log.Error(ctx, "failed to clear session", "error", derr)
	}
	s.state.Dispatch(action{kind: actionAuthFailed, err: MsgInvalidCredentials})
}

// issuer returns the token issuer, building the default one from the
// stored signing secret on first use. Callers hold s.mu.
func (s *Store) issuer(ctx context.Context) (TokenIssuer, error) {
	if s.tokens != nil {
		return s.tokens, nil
	}
	secret, err := SigningSecret(ctx, s.repo, "")
	if err != nil {
		return nil, err
	}
	s.tokens = tokens.NewIssuer(secret, 0, s.now)
	return s.tokens, nil
}

// SigningSecret returns configured when it is set. Otherwise it returns the
// secret kept in the token-secret record, creating it on first use, so
// tokens survive a restart.
func SigningSecret(ctx context.Context, repo records.Repository, configured string) ([]byte, error) {
	if configured != "" {
		return []byte(configured), nil
	}

	stored, err := repo.Get(ctx, common.KeySigningSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to read token secret: %w", err)
	}
	if len(stored) > 0 {
		return stored, nil
	}

	secret, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token secret: %w", err)
	}
	if err := repo.Set(ctx, common.KeySigningSecret, []byte(secret)); err != nil {
		return nil, fmt.Errorf("failed to store token secret: %w", err)
	}
	return []byte(secret), nil
}

// Session returns the signed-in identity, if any.
func (s *Store) Session() (models.Session, bool) {
	st := s.state.Get()
	if !st.IsAuthenticated || st.User == nil {
		return models.Session{}, false
	}
	return models.Session{Token: st.Token, User: *st.User}, true
}

func (s *Store) fail(ctx context.Context, msg string, err error) {
	text := err.Error()
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		text = MsgInvalidCredentials
		s.log.Debug(ctx, msg, "error", err)
	case errors.Is(err, common.ErrDuplicateUsername):
		text = MsgDuplicateUsername
		s.log.Debug(ctx, msg, "error", err)
	default:
		s.log.Error(ctx, msg, "error", err)
	}
	s.state.Dispatch(action{kind: actionFailed, err: text})
}
