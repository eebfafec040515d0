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
	applySessionEvents(ctx context.Context)
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	ResetDevice(ctx context.Context) error
	Products(ctx context.Context, args []string) error
	Product(ctx context.Context, args []string) error
	Image(ctx context.Context, args []string) error
	Fav(ctx context.Context, args []string) error
	Favorites(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
}

// runREPL starts a read–eval–print loop over reader.
//
// Before every prompt pending session events are applied, which selects one
// of two command graphs:
//
//	Signed out:
//	  - help                   - show available commands
//	  - register               - create an account
//	  - login                  - sign in
//	  - reset                  - wipe local data on this device
//	  - exit | quit            - leave the program
//
//	Signed in:
//	  - help                   - show available commands
//	  - products [category]    - list the catalog
//	  - product <id>           - show one product
//	  - image <id> [path]      - download a product picture
//	  - fav <id>               - toggle a favorite
//	  - favorites              - open the favorites list
//	  - profile | editprofile  - show or change the account
//	  - logout                 - sign out
//	  - reset                  - sign out and wipe local data
//	  - exit | quit            - leave the program
//
// Command handlers report their own errors, so return values are ignored.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		a.applySessionEvents(ctx)

		printlnFn(fmt.Sprintf("bs %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		if a.isLoggedIn() {
			signedIn(ctx, a, cmd, args)
		} else {
			signedOut(ctx, a, cmd)
		}
	}
}

func signedOut(ctx context.Context, a execIface, cmd string) {
	switch cmd {
	case "help":
		printlnFn("Available commands: register, login, reset, exit")
	case "register":
		_ = a.Register(ctx)
	case "login":
		_ = a.Login(ctx)
	case "reset":
		_ = a.ResetDevice(ctx)
	default:
		printlnFn("Unknown command:", cmd)
	}
}

func signedIn(ctx context.Context, a execIface, cmd string, args []string) {
	switch cmd {
	case "help":
		printlnFn("Available commands: products [category], product <id>, image <id> [path], fav <id>, favorites, profile, editprofile, logout, reset, exit")
	case "products":
		_ = a.Products(ctx, args)
	case "product":
		_ = a.Product(ctx, args)
	case "image":
		_ = a.Image(ctx, args)
	case "fav":
		_ = a.Fav(ctx, args)
	case "favorites":
		_ = a.Favorites(ctx)
	case "profile":
		_ = a.Profile(ctx)
	case "editprofile":
		_ = a.EditProfile(ctx)
	case "logout":
		_ = a.Logout(ctx)
	case "reset":
		_ = a.ResetDevice(ctx)
	default:
		printlnFn("Unknown command:", cmd)
	}
}
