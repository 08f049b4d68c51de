package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/chirp-bdsa/chirp/config"
	"github.com/chirp-bdsa/chirp/errs"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

const (
	TypePostgres = "postgres"
	TypeSupabase = "supa"
	TypeSQLite   = "sqlite"
)

type Config struct {
	Type            string
	DSN             string
	ReplicaDSNs     []string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Logger          logger.Interface
}

// ConfigFromEnv builds the connection settings from the flat config map.
func ConfigFromEnv(env map[string]string) (Config, error) {
	cfg := Config{
		Type:            strings.ToLower(config.GetString(env, "DB_TYPE", "")),
		ReplicaDSNs:     splitReplicas(config.GetString(env, "DB_REPLICA_DSNS", "")),
		MaxOpenConns:    config.GetInt(env, "DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    config.GetInt(env, "DB_MAX_IDLE_CONNS", 25),
		ConnMaxLifetime: time.Duration(config.GetInt(env, "DB_CONN_MAX_LIFETIME_MINUTES", 30)) * time.Minute,
	}

	switch cfg.Type {
	case TypePostgres:
		cfg.DSN = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			config.GetString(env, "DB_HOST", "localhost"),
			config.GetString(env, "DB_USER", ""),
			config.GetString(env, "DB_PASSWORD", ""),
			config.GetString(env, "DB_NAME", "chirp"),
			config.GetString(env, "DB_PORT", "5432"),
			config.GetString(env, "DB_SSLMODE", "disable"),
		)
	case TypeSupabase:
		cfg.DSN = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			config.GetString(env, "SUPABASE_DB_HOST", ""),
			config.GetString(env, "SUPABASE_DB_USER", ""),
			config.GetString(env, "SUPABASE_DB_PASSWORD", ""),
			config.GetString(env, "SUPABASE_DB_NAME", ""),
			config.GetString(env, "SUPABASE_DB_PORT", "5432"),
		)
	case TypeSQLite:
		cfg.DSN = config.GetString(env, "SQLITE_PATH", "chirp.db")
		if !strings.Contains(cfg.DSN, "?") {
			cfg.DSN += "?_foreign_keys=on"
		}
	case "":
		return Config{}, errs.NewEnvironmentVariableError("DB_TYPE")
	default:
		return Config{}, errs.NewInvalidConfigError("DB_TYPE", cfg.Type)
	}

	return cfg, nil
}

// DSNs in DB_REPLICA_DSNS contain spaces, so entries are separated by ';'.
func splitReplicas(raw string) []string {
	var dsns []string
	for _, dsn := range strings.Split(raw, ";") {
		if dsn = strings.TrimSpace(dsn); dsn != "" {
			dsns = append(dsns, dsn)
		}
	}
	return dsns
}

func dialector(kind, dsn string) (gorm.Dialector, error) {
	switch kind {
	case TypePostgres, TypeSupabase:
		return postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), nil
	case TypeSQLite:
		return sqlite.Open(dsn), nil
	default:
		return nil, errs.NewInvalidConfigError("DB_TYPE", kind)
	}
}

// Open connects to the configured database. Replicas, when present, serve
// reads through dbresolver while writes and transactions stay on the primary.
func Open(cfg Config) (*gorm.DB, error) {
	primary, err := dialector(cfg.Type, cfg.DSN)
	if err != nil {
		return nil, err
	}

	gormLogger := cfg.Logger
	if gormLogger == nil {
		gormLogger = logger.Default.LogMode(logger.Warn)
	}

	db, err := gorm.Open(primary, &gorm.Config{
		PrepareStmt:    false,
		TranslateError: true,
		Logger:         gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, errs.NewDatabaseError("connect to", "database", err)
	}

	maxOpen, maxIdle := cfg.MaxOpenConns, cfg.MaxIdleConns
	if cfg.Type == TypeSQLite {
		// sqlite serialises writers; a single connection also keeps in-memory databases alive
		maxOpen, maxIdle = 1, 1
	}

	if len(cfg.ReplicaDSNs) > 0 {
		replicas := make([]gorm.Dialector, 0, len(cfg.ReplicaDSNs))
		for _, dsn := range cfg.ReplicaDSNs {
			replica, err := dialector(cfg.Type, dsn)
			if err != nil {
				return nil, err
			}
			replicas = append(replicas, replica)
		}

		resolver := dbresolver.Register(dbresolver.Config{
			Replicas:          replicas,
			Policy:            dbresolver.RandomPolicy{},
			TraceResolverMode: true,
		})
		if maxOpen > 0 {
			resolver = resolver.SetMaxOpenConns(maxOpen)
		}
		if maxIdle > 0 {
			resolver = resolver.SetMaxIdleConns(maxIdle)
		}
		if cfg.ConnMaxLifetime > 0 {
			resolver = resolver.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		}
		if err := db.Use(resolver); err != nil {
			return nil, errs.NewDatabaseError("register replicas for", "database", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errs.NewDatabaseError("configure", "database", err)
	}
	if maxOpen > 0 {
		sqlDB.SetMaxOpenConns(maxOpen)
	}
	if maxIdle > 0 {
		sqlDB.SetMaxIdleConns(maxIdle)
	}
	if cfg.ConnMaxLifetime > 0 && cfg.Type != TypeSQLite {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return db, nil
}
