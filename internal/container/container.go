package container

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"storefront/bot/internal/bot"
	"storefront/bot/internal/catalog"
	"storefront/bot/internal/config"
	"storefront/bot/internal/pages"
	"storefront/bot/internal/repository"
	"storefront/bot/internal/session"
	"storefront/bot/internal/telegram"
	"storefront/bot/internal/view"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config     *config.Config
	Index      *catalog.Index
	Pages      *pages.Store
	Sessions   session.Store
	Client     telegram.Client
	Journal    repository.EventJournal
	Dispatcher *bot.Dispatcher

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	// Catalog and pages are loaded once and immutable from here on.
	index, report := catalog.Load(cfg.Catalog.CategoriesPath, cfg.Catalog.ProductsDir)
	container.Index = index
	if report.SkippedFiles > 0 {
		log.Warnf("⚠️ Skipped %d unreadable product file(s)", report.SkippedFiles)
	}

	container.Pages = pages.Load(cfg.Catalog.TextsDir)

	switch cfg.Session.Backend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("✅ Connected to Redis successfully")
		container.redis = rdb
		container.Sessions = session.NewRedisStore(rdb)
	default:
		container.Sessions = session.NewMemoryStore()
	}

	if cfg.Database.Enabled {
		db, err := pgxpool.New(context.Background(),
			fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
				cfg.Database.Host,
				cfg.Database.Port,
				cfg.Database.User,
				cfg.Database.Password,
				cfg.Database.Name,
			))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		container.db = db
		container.Journal = repository.NewEventJournal(db)
		log.Info("✅ Interaction journal enabled")
	} else {
		container.Journal = repository.NewNoopJournal()
	}

	client := telegram.NewClient(cfg.Bot)
	container.Client = client

	renderer := view.NewRenderer(index, container.Pages, cfg.Bot.ContactURL)
	controller := bot.NewController(client, index, renderer, container.Sessions, container.Journal)
	container.Dispatcher = bot.NewDispatcher(client, controller, cfg.Bot.PollTimeout)

	return container, nil
}

// Run starts the update dispatcher and blocks until it stops
func (c *Container) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return c.Dispatcher.Run(ctx)
	})

	return g.Wait()
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		c.redis.Close()
	}

	log.Info("Container shut down successfully")
	return nil
}
