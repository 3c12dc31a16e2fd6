package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mehedi609/dev-social/internal/config"
	authdomain "github.com/mehedi609/dev-social/internal/domain/auth"
	postdomain "github.com/mehedi609/dev-social/internal/domain/post"
	profiledomain "github.com/mehedi609/dev-social/internal/domain/profile"
	"github.com/mehedi609/dev-social/internal/httpserver"
	"github.com/mehedi609/dev-social/internal/infrastructure/github"
	"github.com/mehedi609/dev-social/internal/infrastructure/memory"
	"github.com/mehedi609/dev-social/internal/infrastructure/postgres"
	"github.com/mehedi609/dev-social/internal/infrastructure/token"
	authusecase "github.com/mehedi609/dev-social/internal/usecase/auth"
	postusecase "github.com/mehedi609/dev-social/internal/usecase/post"
	profileusecase "github.com/mehedi609/dev-social/internal/usecase/profile"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	var (
		users    authdomain.UserRepository
		profiles profiledomain.Repository
		posts    postdomain.Repository
	)

	rootCtx := context.Background()
	if cfg.DatabaseURL != "" {
		db, err := postgres.New(rootCtx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.Migrate(rootCtx); err != nil {
			log.Fatalf("failed to run database migrations: %v", err)
		}
		users = postgres.NewUserRepository(db.Pool)
		profiles = postgres.NewProfileRepository(db.Pool)
		posts = postgres.NewPostRepository(db.Pool)
	} else {
		// Demo mode: no DATABASE_URL, everything lives in process memory.
		logger.Warn("DATABASE_URL not set, using in-memory storage")
		memUsers := memory.NewUserRepository()
		users = memUsers
		profiles = memory.NewProfileRepository(memUsers)
		posts = memory.NewPostRepository()
	}

	tokenManager := token.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry, cfg.JWTIssuer)
	githubClient := github.NewClient(cfg.GithubClientID, cfg.GithubClientSecret)

	authService := authusecase.NewService(users, tokenManager)
	postService := postusecase.NewService(posts, users)
	profileService := profileusecase.NewService(profiles, users, posts, githubClient)

	server := httpserver.NewServer(cfg, tokenManager, authService, profileService, postService, logger)
	log.Printf("HTTP server listening on %s", server.Addr())

	go func() {
		if err := server.Start(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Printf("HTTP server closed: %v", err)
				return
			}
			log.Fatalf("server error: %v", err)
		}
	}()

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	} else {
		log.Printf("graceful shutdown completed")
	}
}
