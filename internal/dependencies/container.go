package dependencies

import (
	"context"
	"fmt"
	"log/slog"

	"SiteWatch/internal/browser"
	"SiteWatch/internal/checker"
	"SiteWatch/internal/config"
	"SiteWatch/internal/denylist"
	"SiteWatch/internal/notify"
	"SiteWatch/internal/probe"
	"SiteWatch/internal/resolver"
	"SiteWatch/internal/runner"
	"SiteWatch/internal/shared/constants"
	"SiteWatch/internal/storage"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Container контейнер зависимостей
type Container struct {
	// Config
	Config *config.Config

	// Logger
	Logger *slog.Logger

	// Storage
	SiteStore   storage.SiteStore
	StatusStore storage.StatusStore
	DenyStore   storage.DenyStore

	// Core
	Denylist  *denylist.List
	Checker   *checker.Checker
	Runner    *runner.Runner
	Scheduler *runner.Scheduler
	Resolver  *resolver.Checker

	// Notifications
	Hub      *notify.Hub
	Notifier notify.Notifier

	// Connections
	DB    *pgxpool.Pool
	Redis *redis.Client
}

// NewContainer создает и инициализирует контейнер зависимостей
func NewContainer(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Container, error) {
	container := &Container{
		Config: cfg,
		Logger: log,
	}

	if err := container.initDatabase(ctx); err != nil {
		return nil, err
	}

	if err := container.initRedis(); err != nil {
		return nil, err
	}

	container.initStorage()
	container.initNotifications()
	container.initCore(ctx)

	slog.Info("Dependency container initialized successfully")
	return container, nil
}

func (c *Container) initDatabase(ctx context.Context) error {
	db, err := storage.NewPostgres(ctx, &c.Config.Database, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := storage.EnsureSchema(ctx, db); err != nil {
		return fmt.Errorf("failed to prepare schema: %w", err)
	}

	c.DB = db
	return nil
}

func (c *Container) initRedis() error {
	client, err := storage.NewRedisClient(&c.Config.Redis, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	c.Redis = client
	return nil
}

func (c *Container) initStorage() {
	c.SiteStore = storage.NewSiteStore(c.DB)
	c.StatusStore = storage.NewStatusStore(c.Redis)
	c.DenyStore = storage.NewDenyStore(c.Redis)
}

func (c *Container) initNotifications() {
	logger := c.Logger

	c.Hub = notify.NewHub(logger.With("component", "ws-hub"))
	c.Notifier = notify.Multi{
		notify.NewLogNotifier(logger.With("component", "notify")),
		notify.NewRedisNotifier(c.Redis, c.Config.Monitor.NotifyChannel, logger),
		c.Hub,
	}
}

func (c *Container) initCore(ctx context.Context) {
	logger := c.Logger

	c.Denylist = denylist.New(c.DenyStore, c.Notifier, logger.With("component", "denylist"))

	// Eager load so a single-site check arriving before the first batch
	// cycle already sees the persisted denials.
	if err := c.Denylist.Reload(ctx); err != nil {
		logger.Error("failed to load denylist at startup", "error", err)
	}

	browserTimeout := c.Config.Browser.Timeout
	if browserTimeout <= 0 {
		browserTimeout = constants.InContextTimeout
	}
	browserClient := browser.NewClient(
		c.Config.Browser.DebugURL,
		browserTimeout,
		logger.With("component", "browser"),
	)

	probeTimeout := c.Config.Monitor.ProbeTimeout
	if probeTimeout <= 0 {
		probeTimeout = constants.ProbeTimeout
	}
	direct := probe.NewDirect(probeTimeout, logger.With("component", "probe-direct"))
	inContext := probe.NewInContext(browserClient, logger.With("component", "probe-incontext"))

	c.Checker = checker.New(direct, inContext, c.Denylist, logger.With("component", "checker"))

	c.Runner = runner.New(
		c.Checker,
		c.SiteStore,
		c.StatusStore,
		c.Denylist,
		c.Notifier,
		logger.With("component", "runner"),
	)

	interval := c.Config.Monitor.CheckInterval
	if interval <= 0 {
		interval = constants.CheckInterval
	}
	c.Scheduler = runner.NewScheduler(c.Runner, interval, logger.With("component", "scheduler"))

	c.Resolver = resolver.New(
		c.Config.Monitor.DNSServer,
		constants.DNSTimeout,
		logger.With("component", "resolver"),
	)
}

// Close закрывает все соединения
func (c *Container) Close() error {
	var errs []error

	if c.DB != nil {
		c.DB.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing dependencies: %v", errs)
	}

	return nil
}
