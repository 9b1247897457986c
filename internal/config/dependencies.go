package config

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
)

var (
	// Process-wide dependencies, initialized once at startup.
	DB          *sql.DB
	Validate    = validator.New()
	Ctx         = context.Background()
	RedisClient *redis.Client
)
