// Package models defines the client-side data types shared by the stores,
// the persistence adapters and the CLI.
package models

import "time"

// User is the public profile of an account. It is what the session record
// holds and never carries credential material.
type User struct {
	ID       int64     `json:"id" yaml:"id"`
	Username string    `json:"username" yaml:"username"`
	Email    string    `json:"email" yaml:"email"`
	JoinedAt time.Time `json:"joinedAt" yaml:"joinedAt"`
}

// Account is a directory entry: a user plus the salted password verifier.
type Account struct {
	User
	Salt     []byte `json:"salt"`
	Verifier []byte `json:"verifier"`
}

// Session is the authenticated identity of the running client.
type Session struct {
	Token string
	User  User
}

// FindAccount returns the account with the given username.
func FindAccount(dir []Account, username string) (Account, bool) {
	for _, a := range dir {
		if a.Username == username {
			return a, true
		}
	}
	return Account{}, false
}
