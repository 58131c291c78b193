package models

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophblog/internal/common"
)

// Post form limits, counted in runes.
const (
	MinTitleLen   = 5
	MaxTitleLen   = 100
	MinContentLen = 20
	MaxContentLen = 5000

	MinPasswordLen = 6
)

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", common.ErrValidation, msg)
}

// ValidatePostForm checks a create/edit form and returns the trimmed values.
func ValidatePostForm(title, content string) (string, string, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)

	if title == "" || content == "" {
		return "", "", invalid("please fill in all fields")
	}

	switch n := utf8.RuneCountInString(title); {
	case n < MinTitleLen:
		return "", "", invalid(fmt.Sprintf("title must be at least %d characters long", MinTitleLen))
	case n > MaxTitleLen:
		return "", "", invalid(fmt.Sprintf("title must be at most %d characters long", MaxTitleLen))
	}

	switch n := utf8.RuneCountInString(content); {
	case n < MinContentLen:
		return "", "", invalid(fmt.Sprintf("content must be at least %d characters long", MinContentLen))
	case n > MaxContentLen:
		return "", "", invalid(fmt.Sprintf("content must be at most %d characters long", MaxContentLen))
	}

	return title, content, nil
}

// ValidateSignupForm checks the signup prompts. Username and email are
// returned trimmed; passwords are compared as typed.
func ValidateSignupForm(username, email, password, confirm string) (string, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || email == "" || password == "" || confirm == "" {
		return "", "", invalid("please fill in all fields")
	}
	if password != confirm {
		return "", "", invalid("passwords do not match")
	}
	if utf8.RuneCountInString(password) < MinPasswordLen {
		return "", "", invalid(fmt.Sprintf("password must be at least %d characters long", MinPasswordLen))
	}
	return username, email, nil
}
