package db

import (
	"fmt"
	"log/slog"
	"time"

	"backoffice/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
// 接続の寿命は呼び出し側（cmd/api）が持つ。SQLのログはlogに流す
func Connect(cfg config.Config, log *slog.Logger) (*gorm.DB, error) {
	gcfg := newGormConfig(NewLogger(log, cfg.LogLevel))

	switch cfg.DBDriver {
	case config.DriverPostgres:
		gdb, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		return gdb, nil
	case config.DriverSQLite:
		return OpenSQLite(cfg.SQLitePath, gcfg.Logger)
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.DBDriver)
	}
}

// OpenSQLite は開発・テスト用のsqliteを開く。
// 外部キーを有効にし、書き込みは1接続に絞る。
func OpenSQLite(path string, l logger.Interface) (*gorm.DB, error) {
	if l == nil {
		l = logger.Discard
	}
	gcfg := newGormConfig(l)

	dsn := path + "?_foreign_keys=on&_busy_timeout=5000"
	gdb, err := gorm.Open(sqlite.Open(dsn), gcfg)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	//DSNのオプションが効かないドライバでも外部キーを有効に
	if err := gdb.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	return gdb, nil
}

// Close releases the underlying pool.
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func newGormConfig(l logger.Interface) *gorm.Config {
	return &gorm.Config{
		//一意制約・外部キー違反を gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated に揃える
		TranslateError: true,
		Logger:         l,
	}
}

// NewLogger はgormのログをアプリと同じslog（JSON・request_id付き）に出す
func NewLogger(log *slog.Logger, level string) logger.Interface {
	return logger.NewSlogLogger(log, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormLogLevel(level),
		IgnoreRecordNotFoundError: true,
	})
}

// LOG_LEVEL→gormのログレベル（debugのときだけSQLを出す）
func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "debug":
		return logger.Info
	case "error":
		return logger.Error
	default:
		return logger.Warn
	}
}
