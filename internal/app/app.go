package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/database"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/repository"
	"github.com/vancomm/minesweeper/internal/session"
)

const shutdownTimeout = 30 * time.Second

type App struct {
	logger     *slog.Logger
	router     *http.ServeMux
	db         *pgxpool.Pool
	store      *session.Store
	cookies    *config.Cookies
	ws         *config.WebSocket
	migrations fs.FS
}

func New(logger *slog.Logger, migrations fs.FS) *App {
	router := http.NewServeMux()

	app := &App{
		logger:     logger,
		router:     router,
		migrations: migrations,
	}

	return app
}

func (a *App) setup(ctx context.Context) error {
	version, err := database.Migrate(a.migrations)
	if err != nil {
		return fmt.Errorf("unable to migrate db: %w", err)
	}
	a.logger.Info("database migrated", slog.Uint64("version", uint64(version)))

	db, err := database.Connect(ctx)
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	a.db = db

	jwt, err := config.NewJWT()
	if err != nil {
		return err
	}

	cookies, err := config.NewCookies(jwt)
	if err != nil {
		return err
	}
	a.cookies = cookies

	ws, err := config.NewWebSocket()
	if err != nil {
		return err
	}
	a.ws = ws

	ttl, err := config.SessionTTL()
	if err != nil {
		return err
	}
	a.store = session.NewStore(a.logger, repository.New(db), ttl)

	return nil
}

func (a *App) handler() http.Handler {
	return middleware.Wrap(
		a.mount(config.BasePath()),
		middleware.Logging(a.logger),
		middleware.Cors(config.Development()),
		middleware.Auth(a.logger, a.cookies),
	)
}

func (a *App) mount(basePath string) http.Handler {
	if basePath == "" {
		return a.router
	}
	root := http.NewServeMux()
	root.Handle(basePath+"/", http.StripPrefix(basePath, a.router))
	return root
}

// Start serves until ctx is cancelled, then drains connections and stops
// the session janitor.
func (a *App) Start(ctx context.Context) error {
	if err := a.setup(ctx); err != nil {
		return err
	}
	defer a.db.Close()

	a.loadRoutes()

	server := &http.Server{
		Addr:              config.Port(),
		Handler:           a.handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("server listening", slog.String("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return a.store.Run(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
