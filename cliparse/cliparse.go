// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/funmapco/funmap/db"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	IconRoot     string
	LogMode      string
	CORSOrigin   string
	CreateSchema bool
	IPHashSalt   string
}

// Dialect is the parsed DatabaseType. ParseFlags has already validated it.
func (c Config) Dialect() db.Dialect {
	d, err := db.ParseDialect(c.DatabaseType)
	if err != nil {
		return db.MySQL
	}
	return d
}

// LoadEnv loads .env style files into the environment without overriding
// variables that are already set. Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fset := flag.NewFlagSet("funmap", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fset.IntVar(&cfg.Port, "p", 0, "Server port")
	fset.StringVar(&cfg.DatabaseURL, "d", "", "Database URL / DSN")
	fset.StringVar(&cfg.DatabaseType, "t", "", "Database type (mysql, postgres or sqlite)")

	fset.StringVar(&cfg.IconRoot, "icons", "", "Directory containing assets/icons-*")
	fset.StringVar(&cfg.LogMode, "log", "", "Log mode (dev or prod)")
	fset.StringVar(&cfg.CORSOrigin, "cors", "", "Allowed CORS origin")
	fset.BoolVar(&cfg.CreateSchema, "init-schema", false, "Create missing tables on startup")

	// Secrets (prefer env variables, but allow CLI for dev)
	fset.StringVar(&cfg.IPHashSalt, "ip-salt", "", "Salt for hashed client IPs in logs (prefer env)")

	if err := fset.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
	}
	d, err := db.ParseDialect(cfg.DatabaseType)
	if err != nil {
		return Config{}, err
	}
	cfg.DatabaseType = string(d)

	if cfg.IconRoot == "" {
		cfg.IconRoot = envOr("ICON_ROOT", ".")
	}
	if cfg.LogMode == "" {
		cfg.LogMode = envOr("LOG_MODE", "dev")
	}
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = os.Getenv("CORS_ORIGIN")
	}
	if !cfg.CreateSchema {
		if v := os.Getenv("CREATE_SCHEMA"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return Config{}, errors.New("invalid CREATE_SCHEMA env variable")
			}
			cfg.CreateSchema = b
		}
	}
	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = os.Getenv("IP_HASH_SALT")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
