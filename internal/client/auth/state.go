package auth

import "github.com/dmitrijs2005/gophblog/internal/client/models"

// State is the snapshot views render from.
type State struct {
	IsAuthenticated bool
	User            *models.User
	Token           string
	Loading         bool
	Err             string
}

type actionKind int

const (
	actionStart actionKind = iota
	actionSettle
	actionAuthenticated
	actionFailed
	actionAuthFailed
	actionLoggedOut
	actionClearError
)

type action struct {
	kind  actionKind
	user  models.User
	token string
	err   string
}

func reduce(s State, a action) State {
	switch a.kind {
	case actionStart:
		s.Loading = true
	case actionSettle:
		s.Loading = false
	case actionAuthenticated:
		u := a.user
		s = State{IsAuthenticated: true, User: &u, Token: a.token}
	case actionFailed:
		s.Loading = false
		s.Err = a.err
	case actionAuthFailed:
		s = State{Err: a.err}
	case actionLoggedOut:
		s = State{Err: s.Err}
	case actionClearError:
		s.Err = ""
	}
	return s
}
