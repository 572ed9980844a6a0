package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/pressly/goose/v3"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/logger"

	"github.com/alr63095/ClubConnect/internal/config"
	"github.com/alr63095/ClubConnect/internal/handler"
	"github.com/alr63095/ClubConnect/internal/middleware"
	"github.com/alr63095/ClubConnect/internal/notification"
	"github.com/alr63095/ClubConnect/internal/repository"
	"github.com/alr63095/ClubConnect/internal/repository/memory"
	"github.com/alr63095/ClubConnect/internal/router"
	"github.com/alr63095/ClubConnect/internal/scheduler"
	"github.com/alr63095/ClubConnect/internal/service"
	"github.com/alr63095/ClubConnect/internal/service/ports"
)

const migrationsDir = "migrations"

type repos struct {
	clubs    ports.ClubRepo
	courts   ports.CourtRepo
	bookings ports.BookingRepo
	users    ports.UserRepo
}

type App struct {
	cfg        *config.Config
	log        logger.Logger
	db         *dbpg.DB
	httpServer *http.Server
	scanner    *scheduler.Scanner
}

func New(cfg *config.Config) (*App, error) {
	app := &App{cfg: cfg}

	log, err := logger.InitLogger(
		cfg.Logger.LogEngine(),
		"ClubConnect",
		cfg.Gin.Mode,
		logger.WithLevel(cfg.Logger.LogLevel()),
	)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	app.log = log

	r, err := app.initStorage()
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	if err = app.initServices(r); err != nil {
		return nil, fmt.Errorf("init services: %w", err)
	}

	return app, nil
}

func (a *App) initStorage() (*repos, error) {
	if a.cfg.Storage.Engine == "memory" {
		a.log.Info("using in-memory storage")
		return &repos{
			clubs:    memory.NewClubRepo(),
			courts:   memory.NewCourtRepo(),
			bookings: memory.NewBookingRepo(),
			users:    memory.NewUserRepo(),
		}, nil
	}

	if err := a.runMigrations(); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	db, err := dbpg.New(
		a.cfg.Postgres.DSN(),
		nil,
		&dbpg.Options{
			MaxOpenConns: a.cfg.Postgres.MaxOpenConns,
			MaxIdleConns: a.cfg.Postgres.MaxIdleConns,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := db.Master.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	a.db = db
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "database connected",
		logger.String("host", a.cfg.Postgres.Host),
		logger.Int("port", a.cfg.Postgres.Port),
		logger.String("database", a.cfg.Postgres.Database),
	)

	return &repos{
		clubs:    repository.NewClubRepo(db),
		courts:   repository.NewCourtRepo(db),
		bookings: repository.NewBookingRepo(db),
		users:    repository.NewUserRepo(db),
	}, nil
}

func (a *App) initServices(r *repos) error {
	n, err := notification.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.log)
	if err != nil {
		return fmt.Errorf("init notifier: %w", err)
	}

	clubService := service.NewClubService(r.clubs, r.courts, r.bookings, a.log)
	courtService := service.NewCourtService(r.courts, r.clubs, r.bookings, a.log)
	availabilityService := service.NewAvailabilityService(r.clubs, r.courts, r.bookings, a.log)
	bookingService := service.NewBookingService(r.bookings, r.courts, r.users, n, a.log)
	forumService := service.NewForumService(r.bookings, r.courts, r.clubs, r.users, a.log)
	userService := service.NewUserService(r.users)

	a.scanner = scheduler.New(
		r.bookings,
		r.courts,
		r.clubs,
		r.users,
		n,
		a.cfg.Scanner.Interval,
		a.log,
	)

	h := handler.NewHandler(
		clubService,
		courtService,
		availabilityService,
		bookingService,
		forumService,
		userService,
	)
	router := router.InitRouter(
		a.cfg.Gin.Mode,
		h,
		middleware.RequestID(),
		middleware.RequestLogger(a.log),
		middleware.Recovery(a.log),
	)

	a.httpServer = &http.Server{
		Addr:         a.cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	return nil
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.scanner.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.log.LogAttrs(ctx, logger.InfoLevel, "HTTP server starting",
			logger.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.log.LogAttrs(context.Background(), logger.InfoLevel, "shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.shutdown()
}

func (a *App) shutdown() error {
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		a.cfg.Server.WriteTimeout,
	)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "HTTP server stopped")

	if a.db != nil {
		if err := a.db.Master.Close(); err != nil {
			return fmt.Errorf("close db: %w", err)
		}
		a.log.LogAttrs(context.Background(), logger.InfoLevel, "database connection closed")
	}

	a.log.LogAttrs(context.Background(), logger.InfoLevel, "app stopped")

	return nil
}

func (a *App) runMigrations() error {
	db, err := sql.Open("postgres", a.cfg.Postgres.DSN())
	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}
	defer db.Close()

	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	a.log.Info("migrations applied successfully")
	return nil
}
