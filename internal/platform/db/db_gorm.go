// Package db opens the gorm connection and prepares the schema.
package db

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/platform/config"
)

// Supported values of DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// retryInterval is the pause between connection attempts.
var retryInterval = 3 * time.Second

// Config holds database connection settings.
type Config struct {
	Driver        string
	User          string
	Password      string
	Name          string
	Host          string
	Port          string
	SSLMode       string
	InstanceName  string // Cloud SQL instance, connects through /cloudsql/<instance>
	SQLitePath    string
	RunMigrations bool
	ConnTimeout   time.Duration
}

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
func LoadConfigFromEnv() Config {
	return Config{
		Driver:        config.GetString("DB_DRIVER", DriverPostgres),
		User:          config.GetString("DB_USER", ""),
		Password:      config.GetString("DB_PASSWORD", ""),
		Name:          config.GetString("DB_NAME", ""),
		Host:          config.GetString("DB_HOST", "localhost"),
		Port:          config.GetString("DB_PORT", "5432"),
		SSLMode:       config.GetString("DB_SSLMODE", "disable"),
		InstanceName:  config.GetString("INSTANCE_CONNECTION_NAME", ""),
		SQLitePath:    config.GetString("DB_PATH", "stock_analysis.db"),
		RunMigrations: config.GetBool("RUN_MIGRATIONS", false),
		ConnTimeout:   config.GetDuration("DB_CONNECT_TIMEOUT", 60*time.Second),
	}
}

// BuildDSN はPostgreSQL用のDSN文字列を生成します。InstanceNameが設定されている場合はCloud SQLのUnixソケットを使用します。
func BuildDSN(cfg Config) string {
	host, port := cfg.Host, cfg.Port
	if cfg.InstanceName != "" {
		host, port = "/cloudsql/"+cfg.InstanceName, ""
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=Asia/Ho_Chi_Minh",
		host, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
	if port != "" {
		dsn += " port=" + port
	}
	return dsn
}

// ConnectWithRetry はタイムアウトまで一定間隔で接続を試行します。
func ConnectWithRetry(dsn string, timeout time.Duration, opener func(dsn string) (*gorm.DB, error)) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %v: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "interval", retryInterval)
		time.Sleep(retryInterval)
	}
}

func openPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// OpenDB connects with cfg and prepares the schema. SQLite databases are
// auto-migrated from models; PostgreSQL runs the embedded SQL migrations
// when RunMigrations is set.
func OpenDB(cfg Config, models ...any) (*gorm.DB, error) {
	switch cfg.Driver {
	case DriverSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("auto-migrate: %w", err)
		}
		return db, nil

	case DriverPostgres, "":
		db, err := ConnectWithRetry(BuildDSN(cfg), cfg.ConnTimeout, openPostgres)
		if err != nil {
			return nil, err
		}
		if cfg.RunMigrations {
			sqlDB, err := db.DB()
			if err != nil {
				return nil, err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return nil, err
			}
		}
		return db, nil
	}
	return nil, errors.New("unsupported DB_DRIVER " + cfg.Driver)
}
