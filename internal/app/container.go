package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"skill-swap/internal/config"
	"skill-swap/internal/database"
	"skill-swap/internal/database/migration"
	dbpostgres "skill-swap/internal/database/postgres"
	"skill-swap/internal/database/seeder"
	"skill-swap/internal/domain/feedback"
	"skill-swap/internal/domain/request"
	"skill-swap/internal/domain/user"
	"skill-swap/internal/infrastructure/cache"
	"skill-swap/internal/pkg/jwt"
	"skill-swap/internal/repository"
	"skill-swap/internal/repository/memory"
	"skill-swap/internal/suggest"
	"skill-swap/internal/usecase/profile"
	"skill-swap/internal/usecase/swap"
	"skill-swap/internal/ws"
	"skill-swap/migrations"
)

type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Cache *cache.Redis
	Hub   *ws.Hub
	JWT   *jwt.HMACService

	Users     user.Repository
	Requests  request.Repository
	Feedbacks feedback.Repository

	Swap    *swap.Service
	Profile *profile.Service
}

func NewContainer(cfg config.Config) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	c := &Container{
		Config: cfg,
		Logger: log.New(os.Stdout, "", log.LstdFlags),
	}

	if err := c.initStorage(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}

	c.Cache = cache.NewRedis(ctx, cfg.Redis, c.Logger)
	c.Hub = ws.NewHub(c.Logger)
	c.JWT = jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.ExpiresIn, cfg.App.AppName)

	c.Swap = swap.NewService(
		c.Users, c.Requests, c.Feedbacks,
		swap.Config{RatingMin: cfg.Feedback.RatingMin, RatingMax: cfg.Feedback.RatingMax},
		ws.NewSwapNotifier(c.Hub),
		c.Logger,
	)
	c.Profile = profile.NewService(c.Users, c.Swap, c.newSuggester(), c.Logger)

	return c, nil
}

func (c *Container) initStorage(ctx context.Context) error {
	if !c.Config.UsesPostgres() {
		var seed []user.User
		if c.Config.Storage.SeedFixtures {
			seed = seeder.DemoUsers()
		}
		c.Users = memory.NewUserRepository(seed...)
		c.Requests = memory.NewRequestRepository()
		c.Feedbacks = memory.NewFeedbackRepository()
		c.Logger.Printf("storage driver=memory users=%d", len(seed))
		return nil
	}

	db, err := dbpostgres.Connect(ctx, c.Config.Database)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	c.DB = db

	if err := c.Migrate(ctx); err != nil {
		return err
	}
	if c.Config.Storage.SeedFixtures {
		if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(ctx, db); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	c.Users = repository.NewPostgresUserRepository(db)
	c.Requests = repository.NewPostgresSkillRequestRepository(db)
	c.Feedbacks = repository.NewPostgresFeedbackRepository(db)
	c.Logger.Printf("storage driver=postgres host=%s db=%s", c.Config.Database.DBHost, c.Config.Database.DBName)
	return nil
}

// Migrate applies the embedded migrations when enabled. It is a no-op for the
// in-memory driver.
func (c *Container) Migrate(ctx context.Context) error {
	if c.DB == nil || !c.Config.Database.RunMigrations {
		return nil
	}
	r := migration.Runner{FS: migrations.FS, Logger: c.Logger}
	if err := r.Run(ctx, c.DB.SQLDB()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// newSuggester builds static or Anthropic, then the Redis cache, then the
// timeout, from the inside out.
func (c *Container) newSuggester() suggest.Suggester {
	sc := c.Config.Suggest

	var s suggest.Suggester = suggest.NewStatic()
	if sc.AnthropicAPIKey != "" {
		a, err := suggest.NewAnthropic(suggest.AnthropicConfig{
			APIKey:     sc.AnthropicAPIKey,
			Model:      sc.AnthropicModel,
			BaseURL:    sc.AnthropicBaseURL,
			MaxTokens:  sc.MaxTokens,
			MaxRetries: 1,
		})
		if err != nil {
			c.Logger.Printf("suggest provider=anthropic status=disabled err=%v", err)
		} else {
			s = a
			c.Logger.Printf("suggest provider=anthropic model=%s", sc.AnthropicModel)
		}
	}

	if c.Config.Redis.Enabled() {
		ttl := sc.CacheTTL
		if ttl <= 0 {
			ttl = c.Config.Redis.TTL
		}
		s = suggest.NewCached(s, c.Cache, ttl, c.Logger)
	}

	return suggest.WithTimeout(s, sc.Timeout)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
