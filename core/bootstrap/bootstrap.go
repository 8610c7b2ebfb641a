// Package bootstrap initializes shared infrastructure in dependency order:
// logger first, then Redis, then the optional listing database.
package bootstrap

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	backend "github.com/redis/go-redis/v9"

	coreconfig "lodgebot/core/config"
	coredatabase "lodgebot/core/database"
	"lodgebot/core/logger"
	"lodgebot/internal/store/redis"
)

// Options control the bootstrap pipeline. The function fields exist so
// tests can substitute fakes; nil means the default implementation.
type Options struct {
	Config *coreconfig.Config

	LoggerInit   func(*coreconfig.Config) error
	ConnectRedis func(coreconfig.RedisConfig) (*backend.Client, error)
	ConnectDB    func(coreconfig.DatabaseConfig) (*sqlx.DB, error)
	Migrate      func(coreconfig.DatabaseConfig) error
}

// Result exposes infrastructure initialized by the bootstrap pipeline.
// DB is nil when no database host is configured.
type Result struct {
	Redis *backend.Client
	DB    *sqlx.DB
}

// Close releases everything the pipeline opened.
func (r *Result) Close() error {
	var firstErr error
	if r.DB != nil {
		if err := r.DB.Close(); err != nil {
			firstErr = err
		}
	}
	if r.Redis != nil {
		if err := r.Redis.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Run initializes the logger, connects to Redis, and when a database is
// configured connects to it and applies migrations.
func Run(opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	connectRedis := opts.ConnectRedis
	if connectRedis == nil {
		connectRedis = redis.Connect
	}
	rdb, err := connectRedis(opts.Config.Redis)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: redis initialization failed: %w", err)
	}

	res := &Result{Redis: rdb}
	if opts.Config.Database.Host == "" {
		return res, nil
	}

	connectDB := opts.ConnectDB
	if connectDB == nil {
		connectDB = coredatabase.Connect
	}
	db, err := connectDB(opts.Config.Database)
	if err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("bootstrap: database initialization failed: %w", err)
	}

	migrate := opts.Migrate
	if migrate == nil {
		migrate = coredatabase.RunMigrations
	}
	if err := migrate(opts.Config.Database); err != nil {
		_ = db.Close()
		_ = rdb.Close()
		return nil, fmt.Errorf("bootstrap: migrations failed: %w", err)
	}

	res.DB = db
	return res, nil
}
