package posts

import "github.com/dmitrijs2005/gophblog/internal/client/models"

// State is the snapshot views render from. Posts are newest first.
type State struct {
	Posts   []models.Post
	Loading bool
	Err     string
}

type actionKind int

const (
	actionStart actionKind = iota
	actionSettle
	actionLoaded
	actionReplace
	actionFailed
)

type action struct {
	kind  actionKind
	posts []models.Post
	err   string
}

func reduce(s State, a action) State {
	switch a.kind {
	case actionStart:
		s.Loading = true
	case actionSettle:
		s.Loading = false
	case actionLoaded:
		s.Posts = a.posts
		s.Loading = false
		s.Err = ""
	case actionReplace:
		s.Posts = a.posts
		s.Err = ""
	case actionFailed:
		s.Loading = false
		s.Err = a.err
	}
	return s
}
