// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

LoadEnv reads .env files first, then ParseFlags returns a Config struct with
all settings:

	_ = cliparse.LoadEnv()
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Driver DSN (required)
  - DatabaseType: mysql, postgres or sqlite (default: mysql)
  - IconRoot: Directory that contains assets/icons-* (default: .)
  - LogMode: dev or prod (default: dev)
  - CORSOrigin: Allowed browser origin (default: none)
  - CreateSchema: Create missing tables on startup
  - IPHashSalt: Salt for hashed client addresses in logs

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-icons        Icon root
	-log          Log mode
	-cors         CORS origin
	-init-schema  Create missing tables
	-ip-salt      IP hash salt

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	ICON_ROOT     → -icons
	LOG_MODE      → -log
	CORS_ORIGIN   → -cors
	CREATE_SCHEMA → -init-schema
	IP_HASH_SALT  → -ip-salt

CLI flags take precedence over environment variables, and variables
already in the environment take precedence over .env files.

# Validation

ParseFlags returns an error if DATABASE_URL is missing, PORT or
CREATE_SCHEMA cannot be parsed, or DATABASE_TYPE names an unsupported
database.
*/
package cliparse
