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
	Profile(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context) error
	Status(ctx context.Context) error
	Notes(ctx context.Context) error
	Delete(ctx context.Context) error
	Attach(ctx context.Context) error
	Detach(ctx context.Context) error
	Files(ctx context.Context) error
	Open(ctx context.Context) error
	Export(ctx context.Context, args []string) error
	Sync(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the jobtrack CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// All record commands are local-first and work without a cloud account.
// The account commands (register, login, logout, sync) only make sense
// against the configured cloud endpoint.
//
//	Local commands:
//	  - help                       — show available commands
//	  - profile [list|create|select|delete]
//	  - add                        — add a job application
//	  - (l)ist                     — list applications of the active profile
//	  - show                       — show one application with its documents
//	  - status                     — change an application's status
//	  - notes                      — edit an application's notes
//	  - delete                     — delete an application (and its documents)
//	  - attach | detach | files    — manage stored documents
//	  - open                       — save a stored document to disk
//	  - export [csv|zip]           — export records or documents
//	  - exit | quit                — leave the program
//
//	Cloud commands:
//	  - register | login | logout | sync
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("jobtrack %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn("Local commands: profile, add, (l)ist, show, status, notes, delete, attach, detach, files, open, export, exit")
			if a.isLoggedIn() {
				printlnFn("Cloud commands: sync, logout")
			} else {
				printlnFn("Cloud commands: register, login")
			}

		case "profile":
			_ = a.Profile(ctx, args)

		case "add":
			_ = a.Add(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			_ = a.Show(ctx)

		case "status":
			_ = a.Status(ctx)

		case "notes":
			_ = a.Notes(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "attach":
			_ = a.Attach(ctx)

		case "detach":
			_ = a.Detach(ctx)

		case "files":
			_ = a.Files(ctx)

		case "open":
			_ = a.Open(ctx)

		case "export":
			_ = a.Export(ctx, args)

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "sync":
			_ = a.Sync(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
