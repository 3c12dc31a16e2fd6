// Command client is a small CLI around the session package: it bootstraps a
// stored token, and can register, log in, show the current user, or log out.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mehedi609/dev-social/internal/client/alerts"
	"github.com/mehedi609/dev-social/internal/client/api"
	"github.com/mehedi609/dev-social/internal/client/session"
	"github.com/mehedi609/dev-social/internal/client/tokenstore"
)

func main() {
	serverURL := flag.String("server", "http://localhost:5000", "dev-social server URL")
	dbPath := flag.String("db", defaultDBPath(), "path to the local session database")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0o755); err != nil {
		log.Fatalf("creating session directory: %v", err)
	}
	store, err := tokenstore.Open(*dbPath)
	if err != nil {
		log.Fatalf("opening session store: %v", err)
	}
	defer store.Close()

	alertManager := alerts.NewManager()
	client := api.NewClient(*serverURL)
	sess := session.NewManager(client, store, alertManager)

	ctx := context.Background()
	if err := run(ctx, sess, args); err != nil {
		for _, alert := range alertManager.List() {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", alert.Type, alert.Msg)
		}
		log.Fatalf("%s: %v", args[0], err)
	}

	report(sess)
}

func run(ctx context.Context, sess *session.Manager, args []string) error {
	switch args[0] {
	case "register":
		if len(args) != 4 {
			return fmt.Errorf("usage: register <name> <email> <password>")
		}
		return sess.Register(ctx, args[1], args[2], args[3])
	case "login":
		if len(args) != 3 {
			return fmt.Errorf("usage: login <email> <password>")
		}
		return sess.Login(ctx, args[1], args[2])
	case "whoami":
		return sess.LoadUser(ctx)
	case "logout":
		return sess.Logout(ctx)
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func report(sess *session.Manager) {
	state := sess.State()
	if !state.IsAuthenticated {
		fmt.Println("not authenticated")
		return
	}
	fmt.Printf("authenticated as %s <%s>\n", state.User.Name, state.User.Email)
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "dev-social.db"
	}
	return filepath.Join(dir, "dev-social", "session.db")
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: client [-server URL] [-db PATH] <register|login|whoami|logout> [args]")
}
