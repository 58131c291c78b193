package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophblog/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Create(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Profile(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: (l)ist, show <id>, signup, login, exit"
	helpLoggedIn  = "Available commands: (l)ist, show <id>, create, edit <id>, delete <id>, profile, logout, exit"
)

// runREPL reads commands from reader until EOF, "exit" or "quit".
//
// The first token is the command, the rest are its arguments. Errors returned
// by handlers are printed and the loop continues.
//
//	Not logged in:
//	  - help            show available commands
//	  - list | l        list posts
//	  - show <id>       show a single post
//	  - signup          create an account
//	  - login           authenticate
//	  - exit | quit     leave the program
//
//	Logged in, additionally:
//	  - create          write a post
//	  - edit <id>       edit one of your posts
//	  - delete <id>     delete one of your posts
//	  - profile         your account and posts
//	  - logout          log out
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("blog%s> ", prefixSpace(statusFn())))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "signup", "register":
			cmdErr = a.Signup(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "l", "list":
			cmdErr = a.List(ctx)

		case "show":
			cmdErr = a.Show(ctx, args)

		case "create":
			cmdErr = a.Create(ctx)

		case "edit":
			cmdErr = a.Edit(ctx, args)

		case "delete":
			cmdErr = a.Delete(ctx, args)

		case "profile":
			cmdErr = a.Profile(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", describe(cmdErr))
		}

		if ctx.Err() != nil {
			return
		}
	}
}

func prefixSpace(s string) string {
	if s == "" {
		return ""
	}
	return " " + s
}

// describe turns handler errors into the text shown after "Error:".
func describe(err error) string {
	switch {
	case errors.Is(err, common.ErrUnauthenticated):
		return "please login first"
	case errors.Is(err, common.ErrValidation):
		return strings.TrimPrefix(err.Error(), common.ErrValidation.Error()+": ")
	default:
		return err.Error()
	}
}
