package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. *App satisfies
// it; tests use a recording stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error

	Credits(ctx context.Context) error
	History(ctx context.Context) error
	Stats(ctx context.Context) error
	Daily(ctx context.Context) error
	CompleteProfile(ctx context.Context) error

	Feed(ctx context.Context, args []string) error
	Save(ctx context.Context, args []string) error
	Saved(ctx context.Context) error
	Report(ctx context.Context, args []string) error
	Share(ctx context.Context, args []string) error

	Users(ctx context.Context) error
	Adjust(ctx context.Context, args []string) error
	AdminStats(ctx context.Context) error
	Reported(ctx context.Context) error
}

const (
	helpGuest = "Available commands: register, login, exit"
	helpUser  = "Available commands: whoami, credits, history, stats, daily, profile, " +
		"feed [twitter|reddit], save <id>, saved, report <id> [reason], share <id>, logout, exit"
	helpAdmin = "Admin commands: users, adjust <userId> <credits>, adminstats, reported"
)

var userCommands = map[string]bool{
	"whoami": true, "credits": true, "history": true, "stats": true, "daily": true, "profile": true,
	"feed": true, "save": true, "saved": true, "report": true, "share": true, "logout": true,
}

var adminCommands = map[string]bool{
	"users": true, "adjust": true, "adminstats": true, "reported": true,
}

func readLine(r *bufio.Reader) (string, bool) {
	line, err := r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", false
	}
	return line, true
}

// runREPL reads commands from r until EOF or exit. Commands that need a
// session are refused while logged out; admin commands also need the admin
// role. Handlers report their own errors, so the loop ignores them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("ch %s> ", statusFn()))
		line, ok := readLine(r)
		if !ok {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if userCommands[cmd] && !a.isLoggedIn() {
			printlnFn("Please log in first")
			continue
		}
		if adminCommands[cmd] {
			if !a.isLoggedIn() || !a.isAdmin() {
				printlnFn("Admin only")
				continue
			}
		}

		switch cmd {
		case "help":
			switch {
			case !a.isLoggedIn():
				printlnFn(helpGuest)
			case a.isAdmin():
				printlnFn(helpUser)
				printlnFn(helpAdmin)
			default:
				printlnFn(helpUser)
			}

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.Whoami(ctx)

		case "credits":
			_ = a.Credits(ctx)
		case "history":
			_ = a.History(ctx)
		case "stats":
			_ = a.Stats(ctx)
		case "daily":
			_ = a.Daily(ctx)
		case "profile":
			_ = a.CompleteProfile(ctx)

		case "feed":
			_ = a.Feed(ctx, args)
		case "save":
			_ = a.Save(ctx, args)
		case "saved":
			_ = a.Saved(ctx)
		case "report":
			_ = a.Report(ctx, args)
		case "share":
			_ = a.Share(ctx, args)

		case "users":
			_ = a.Users(ctx)
		case "adjust":
			_ = a.Adjust(ctx, args)
		case "adminstats":
			_ = a.AdminStats(ctx)
		case "reported":
			_ = a.Reported(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
