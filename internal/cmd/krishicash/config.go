// Package krishicash parses CLI configuration and runs the interactive game.
package krishicash

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	entrypoint "github.com/louisbranch/krishicash/internal/platform/cmd"
	"github.com/louisbranch/krishicash/internal/platform/config"
)

// Store drivers accepted by -store.
const (
	StoreMemory   = "memory"
	StoreNone     = "none"
	StoreFile     = "file"
	StoreSQLite   = "sqlite"
	StoreBolt     = "bolt"
	StorePostgres = "postgres"
	StoreS3       = "s3"
)

// Config holds CLI configuration.
type Config struct {
	AccountID   string `env:"KRISHICASH_ACCOUNT" envDefault:"local"`
	Store       string `env:"KRISHICASH_STORE" envDefault:"file"`
	DataDir     string `env:"KRISHICASH_DATA_DIR" envDefault:"data/saves"`
	SQLitePath  string `env:"KRISHICASH_SQLITE_PATH" envDefault:"data/krishicash.db"`
	BoltPath    string `env:"KRISHICASH_BOLT_PATH" envDefault:"data/krishicash.bolt"`
	PostgresDSN string `env:"KRISHICASH_POSTGRES_DSN"`
	S3Bucket    string `env:"KRISHICASH_S3_BUCKET"`
	S3Region    string `env:"KRISHICASH_S3_REGION" envDefault:"us-east-1"`
	S3Endpoint  string `env:"KRISHICASH_S3_ENDPOINT"`
	S3PathStyle bool   `env:"KRISHICASH_S3_PATH_STYLE"`
	Seed        int64  `env:"KRISHICASH_SEED"`
	MetricsAddr string `env:"KRISHICASH_METRICS_ADDR"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.AccountID, "account", cfg.AccountID, "Account whose save is loaded and written")
	fs.StringVar(&cfg.Store, "store", cfg.Store, "Save store: memory, none, file, sqlite, bolt, postgres or s3")
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Directory for the file store")
	fs.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "Database path for the sqlite store")
	fs.StringVar(&cfg.BoltPath, "bolt-path", cfg.BoltPath, "Database path for the bolt store")
	fs.StringVar(&cfg.PostgresDSN, "postgres-dsn", cfg.PostgresDSN, "Connection string for the postgres store")
	fs.StringVar(&cfg.S3Bucket, "s3-bucket", cfg.S3Bucket, "Bucket for the s3 store")
	fs.StringVar(&cfg.S3Region, "s3-region", cfg.S3Region, "Region for the s3 store")
	fs.StringVar(&cfg.S3Endpoint, "s3-endpoint", cfg.S3Endpoint, "Custom endpoint for the s3 store (MinIO)")
	fs.BoolVar(&cfg.S3PathStyle, "s3-path-style", cfg.S3PathStyle, "Use path-style addressing for the s3 store")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Event draw seed; 0 picks a random one")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Serve Prometheus metrics on this address when set")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	if err := config.Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the selected store has what it needs to open.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.AccountID) == "" {
		errs = append(errs, errors.New("account is required"))
	}
	switch c.Store {
	case StoreMemory, StoreNone, StorePostgres:
	case StoreFile:
		if strings.TrimSpace(c.DataDir) == "" {
			errs = append(errs, errors.New("file store needs a data dir"))
		}
	case StoreSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			errs = append(errs, errors.New("sqlite store needs a database path"))
		}
	case StoreBolt:
		if strings.TrimSpace(c.BoltPath) == "" {
			errs = append(errs, errors.New("bolt store needs a database path"))
		}
	case StoreS3:
		if strings.TrimSpace(c.S3Bucket) == "" {
			errs = append(errs, errors.New("s3 store needs a bucket"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store %q", c.Store))
	}
	return errors.Join(errs...)
}
