package config

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load applies the first env file found among envFiles, searching parent
// directories, then falls back to ./.env and processes the environment into
// App. Variables already set in the environment win over file values.
func Load(envFiles ...string) (*App, error) {
	logger := slog.Default()
	logger.Info("Loading configuration", "candidates", envFiles)

	if path, ok := firstEnvFile(logger, envFiles); ok {
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", path, err)
		}
		logger.Info("Environment file loaded", "path", path)
	} else if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, using process environment")
	}
	return loadFromEnv()
}

func firstEnvFile(logger *slog.Logger, envFiles []string) (string, bool) {
	for _, name := range envFiles {
		path, err := findEnvFile(name)
		if err != nil {
			logger.Debug("Environment file not found", "name", name, "error", err)
			continue
		}
		return path, true
	}
	return "", false
}

func loadFromEnv() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}

	logger := slog.Default()
	logger.Info("Configuration loaded",
		"env", cfg.Env,
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
		"db_driver", cfg.DB.Driver,
		"db", maskValue(cfg.DB.Url),
		"auth_jwt_expiry", cfg.Auth.Jwt.Expiry,
		"lock_driver", cfg.Lock.Driver,
		"eventbus_driver", cfg.EventBus.Driver,
		"redis", maskValue(cfg.Redis.URL),
		"transfer_local_fee_percent", cfg.Transfer.LocalFeePercent,
		"transfer_international_fee_percent", cfg.Transfer.InternationalFeePercent,
		"pagination_newest_first", cfg.Pagination.NewestFirst,
	)
	return &cfg, nil
}

func maskValue(key string) string {
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}
