package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	SetProfile(ctx context.Context) error
	Add(ctx context.Context) error
	List(ctx context.Context) error
	Update(ctx context.Context) error
	Delete(ctx context.Context) error
	Summary(ctx context.Context) error
	Project(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the FinTrack CLI.
//
// It reads a line from reader, parses the first token as the
// command, and dispatches to methods on 'a'. Commands that need a session
// are refused while logged out. The loop exits on EOF or when the
// user types "exit" or "quit". Commands prompt for their arguments on the
// same reader, so no input is buffered ahead of them.
//
//	Not logged in:
//	  - help, register, login, project, exit | quit
//
//	Logged in:
//	  - help, profile, setprofile, add, (l)ist, update, delete, summary,
//	    project, logout, exit | quit
//
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("fintrack%s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		err = nil
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: profile, setprofile, add, (l)ist, update, delete, summary, project, logout, exit")
			} else {
				printlnFn("Available commands: register, login, project, exit")
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "project":
			err = a.Project(ctx)

		case "profile", "setprofile", "add", "l", "list", "update", "delete", "summary", "logout":
			if !a.isLoggedIn() {
				printlnFn("Please login first")
				continue
			}
			err = dispatch(ctx, a, cmd)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string) error {
	switch cmd {
	case "profile":
		return a.Profile(ctx)
	case "setprofile":
		return a.SetProfile(ctx)
	case "add":
		return a.Add(ctx)
	case "l", "list":
		return a.List(ctx)
	case "update":
		return a.Update(ctx)
	case "delete":
		return a.Delete(ctx)
	case "summary":
		return a.Summary(ctx)
	case "logout":
		return a.Logout(ctx)
	}
	return nil
}
