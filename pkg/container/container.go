// Package container wires the dependency graph: config, infrastructure,
// repositories, services and handlers, in that order.
package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"library-backend/internal/config"
	infraCache "library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/database"
	"library-backend/pkg/cache"
	"library-backend/pkg/jwt"

	"library-backend/internal/domains/author"
	authorHandler "library-backend/internal/domains/author/handler"
	authorRepo "library-backend/internal/domains/author/repository"
	authorService "library-backend/internal/domains/author/service"

	"library-backend/internal/domains/book"
	bookHandler "library-backend/internal/domains/book/handler"
	bookRepo "library-backend/internal/domains/book/repository"
	bookService "library-backend/internal/domains/book/service"

	"library-backend/internal/domains/catalog"

	"library-backend/internal/domains/user"
	userHandler "library-backend/internal/domains/user/handler"
	userRepo "library-backend/internal/domains/user/repository"
	userService "library-backend/internal/domains/user/service"
)

// Container holds every shared dependency. All members are singletons for
// the application lifetime.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	AuthorRepo author.Repository
	BookRepo   book.Repository
	UserRepo   user.Repository

	Resolver *catalog.Resolver

	AuthorService author.Service
	BookService   book.Service
	UserService   user.Service

	AuthorHandler *authorHandler.AuthorHandler
	BookHandler   *bookHandler.BookHandler
	UserHandler   *userHandler.UserHandler
}

// NewContainer builds the dependency graph. The store driver decides
// whether repositories run in memory or against postgres; redis is
// attached only when enabled and only for the postgres driver.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
	)

	switch cfg.Store.Driver {
	case "postgres":
		if err := c.initPostgres(ctx); err != nil {
			return nil, err
		}
	case "memory":
		c.AuthorRepo = authorRepo.NewMemoryRepository()
		c.BookRepo = bookRepo.NewMemoryRepository()
		c.UserRepo = userRepo.NewMemoryRepository()
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	c.Resolver = catalog.NewResolver(c.AuthorRepo, c.BookRepo)

	maxResults := cfg.Search.MaxResults
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.Resolver, maxResults)
	c.BookService = bookService.NewBookService(c.BookRepo, c.AuthorRepo, maxResults)
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, maxResults)

	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)

	return c, nil
}

func (c *Container) initPostgres(ctx context.Context) error {
	cfg := c.Config

	c.DB = database.NewPostgresDB(&database.DBConfig{
		Host:           cfg.Database.Host,
		Port:           cfg.Database.Port,
		Username:       cfg.Database.User,
		Password:       cfg.Database.Password,
		DBName:         cfg.Database.Database,
		SSLMode:        cfg.Database.SSLMode,
		MaxConns:       int32(cfg.Database.MaxConns),
		MinConns:       int32(cfg.Database.MinConns),
		MaxRetries:     3,
		RetryDelay:     time.Second,
		ConnectTimeout: 10 * time.Second,
	})
	if err := c.DB.Connect(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.DB.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("schema: %w", err)
	}

	if cfg.Redis.Enabled {
		redisClient := infraCache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisClient.Connect(ctx); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		c.Cache = redisClient
	}

	c.AuthorRepo = authorRepo.NewPostgresRepository(c.DB.Pool, c.Cache)
	c.BookRepo = bookRepo.NewPostgresRepository(c.DB.Pool, c.Cache)
	c.UserRepo = userRepo.NewPostgresRepository(c.DB.Pool)
	return nil
}

// Cleanup releases infrastructure resources in reverse order.
func (c *Container) Cleanup() {
	if closer, ok := c.Cache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Error().Err(err).Msg("closing cache")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
