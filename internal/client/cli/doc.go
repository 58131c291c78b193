// Package cli is the terminal view layer of gophblog: an interactive REPL
// over the auth and post stores, the renderers for its views, and the cobra
// commands that start it.
//
// Views validate form input, check ownership before edit and delete, and
// render store state. They never write records themselves.
package cli
