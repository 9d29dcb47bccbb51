package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs. The real
// App type satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Search(ctx context.Context, query string) error
	Trending(ctx context.Context) error
	Favorite(ctx context.Context, args []string) error
	Unfavorite(ctx context.Context, args []string) error
	ListFavorites(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	RequestReset(ctx context.Context, args []string) error
	Verify(ctx context.Context, args []string) error
}

// runREPL reads lines from readLine, parses the first token as the
// command, and dispatches to methods on a. The loop ends on EOF,
// interrupt, or the exit/quit commands. Handler errors are printed, not
// fatal; the loop stays up as long as the terminal does.
func runREPL(ctx context.Context, a execIface, statusFn func() string, readLine func() (string, error)) {
	printlnFn("MovieHub CLI (type 'help' for commands)")

	for {
		line, err := readLine()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			printlnFn("read error:", err)
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
				printlnFn("Available commands: search, trending, fav, unfav, favs, whoami, passwd, verify, logout, exit")
			} else {
				printlnFn("Available commands: register, login, reset, search, trending, exit")
			}
		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.Whoami(ctx)
		case "search":
			cmdErr = a.Search(ctx, strings.Join(args, " "))
		case "trending":
			cmdErr = a.Trending(ctx)
		case "fav":
			cmdErr = a.Favorite(ctx, args)
		case "unfav":
			cmdErr = a.Unfavorite(ctx, args)
		case "favs":
			cmdErr = a.ListFavorites(ctx)
		case "passwd":
			cmdErr = a.ChangePassword(ctx)
		case "reset":
			cmdErr = a.RequestReset(ctx, args)
		case "verify":
			cmdErr = a.Verify(ctx, args)
		case "status":
			printlnFn(statusFn())
		case "exit", "quit":
			return
		default:
			printlnFn("unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("error:", cmdErr)
		}
	}
}
