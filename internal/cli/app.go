// Package cli wires the client services into an interactive terminal
// application: account management, movie search, and favorites.
package cli

import (
	"context"
	"fmt"

	"github.com/chzyer/readline"

	"github.com/moviehub-app/moviehub/internal/appwrite"
	"github.com/moviehub-app/moviehub/internal/auth"
	"github.com/moviehub-app/moviehub/internal/config"
	"github.com/moviehub-app/moviehub/internal/favorites"
	"github.com/moviehub-app/moviehub/internal/localstore"
	"github.com/moviehub-app/moviehub/internal/logging"
	"github.com/moviehub-app/moviehub/internal/tmdb"
	"github.com/moviehub-app/moviehub/internal/trending"
)

// App holds the wired services and terminal state for one CLI session.
type App struct {
	cfg   *config.Config
	log   logging.Logger
	store *localstore.Store

	auth      *auth.Service
	favorites *favorites.Service
	trending  *trending.Service
	movies    *tmdb.Client

	rl *readline.Instance
}

// NewApp opens the local store and constructs all services from cfg.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	store, err := localstore.Open(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening local store: %w", err)
	}

	remote := appwrite.New(cfg.Endpoint, cfg.ProjectID)

	authService := auth.NewService(ctx, remote,
		localstore.NewCredentialStore(store), cfg.RecoveryURL, log)
	favService := favorites.NewService(
		favorites.NewRemoteStore(remote, cfg.DatabaseID, cfg.FavoritesCollectionID),
		localstore.NewFavoritesStore(store), log)
	trendService := trending.NewService(remote,
		cfg.DatabaseID, cfg.MetricsCollectionID, cfg.PosterBaseURL, log)

	rl, err := readline.New("moviehub> ")
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}

	return &App{
		cfg:       cfg,
		log:       log,
		store:     store,
		auth:      authService,
		favorites: favService,
		trending:  trendService,
		movies:    tmdb.New(cfg.TMDBAPIKey),
		rl:        rl,
	}, nil
}

// Run restores any previous session and enters the command loop.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if user, err := a.auth.CheckSession(ctx); err == nil && user != nil {
		fmt.Printf("Welcome back, %s\n", user.Name)
		if _, err := a.favorites.LoadFavorites(ctx, user.ID); err != nil {
			a.log.Warn(ctx, "loading favorites failed", "error", err)
		}
	}

	runREPL(ctx, a, a.status, a.readLine)
}

// Close releases the terminal and the local store.
func (a *App) Close() {
	_ = a.rl.Close()
	_ = a.store.Close()
}

func (a *App) status() string {
	user := a.auth.CurrentUser()
	mode := "online"
	if !a.auth.UsingRemote() {
		mode = "offline"
	}
	if user == nil {
		return fmt.Sprintf("(%s)", mode)
	}
	return fmt.Sprintf("(%s %s)", user.Email, mode)
}

func (a *App) readLine() (string, error) {
	a.rl.SetPrompt(fmt.Sprintf("moviehub %s> ", a.status()))
	return a.rl.Readline()
}

func (a *App) isLoggedIn() bool {
	return a.auth.CurrentUser() != nil
}
