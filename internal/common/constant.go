package common

// Logical record keys understood by the persistence adapter.
const (
	// KeyToken holds the raw session token string (not JSON-encoded).
	KeyToken = "token"
	// KeyCurrentUser holds the JSON-encoded public profile of the session user.
	KeyCurrentUser = "user"
	// KeyUsers holds the JSON-encoded user directory.
	KeyUsers = "users"
	// KeyPosts holds the JSON-encoded post collection, newest first.
	KeyPosts = "blog-posts"
	// KeySigningSecret holds the generated token signing secret when none
	// is configured.
	KeySigningSecret = "token-secret"
)
