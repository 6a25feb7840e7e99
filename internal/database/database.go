package database

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"folio/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Manager handles database operations
type Manager struct {
	db     *gorm.DB
	driver string
	pgURL  string
}

// NewManager creates a new database manager
func NewManager(config *Config) (*Manager, error) {
	switch config.Driver {
	case DriverPostgres:
		db, err := OpenPostgres(config.DSN())
		if err != nil {
			return nil, err
		}
		return &Manager{db: db, driver: DriverPostgres, pgURL: config.MigrationURL()}, nil
	case DriverSQLite:
		if dir := filepath.Dir(config.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		db, err := OpenSQLite(config.DSN())
		if err != nil {
			return nil, err
		}
		return NewSQLiteManager(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
	}
}

// NewSQLiteManager wraps an already opened SQLite handle, e.g. an in-memory test database.
func NewSQLiteManager(db *gorm.DB) *Manager {
	return &Manager{db: db, driver: DriverSQLite}
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
}

// OpenPostgres connects to PostgreSQL with a pooled connection set.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// OpenSQLite opens a SQLite database. The pool is capped at one connection:
// SQLite has a single writer, and serializing here keeps ledger
// transactions from failing with SQLITE_BUSY.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// Migrator builds a golang-migrate instance over the embedded SQL files.
// The returned close function must be called instead of Migrate.Close: for
// SQLite the migrate driver shares the application's handle and closing it
// would close the database.
func (m *Manager) Migrator() (*migrate.Migrate, func(), error) {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	switch m.driver {
	case DriverPostgres:
		mig, err := migrate.NewWithSourceInstance("iofs", src, m.pgURL)
		if err != nil {
			_ = src.Close()
			return nil, nil, fmt.Errorf("failed to create migrate instance: %w", err)
		}
		return mig, func() { closeMigrate(mig) }, nil
	case DriverSQLite:
		sqlDB, err := m.db.DB()
		if err != nil {
			_ = src.Close()
			return nil, nil, fmt.Errorf("failed to get underlying DB: %w", err)
		}
		driver, err := sqlite3.WithInstance(sqlDB, &sqlite3.Config{})
		if err != nil {
			_ = src.Close()
			return nil, nil, fmt.Errorf("failed to create sqlite migrate driver: %w", err)
		}
		mig, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
		if err != nil {
			_ = src.Close()
			return nil, nil, fmt.Errorf("failed to create migrate instance: %w", err)
		}
		return mig, func() { closeSource(src) }, nil
	default:
		_ = src.Close()
		return nil, nil, fmt.Errorf("unsupported database driver %q", m.driver)
	}
}

// RunMigrations applies pending SQL migrations.
func (m *Manager) RunMigrations() error {
	logger.Get().Info("Running database migrations...")

	mig, closeFn, err := m.Migrator()
	if err != nil {
		return err
	}
	defer closeFn()

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Driver returns the configured storage driver name.
func (m *Manager) Driver() string {
	return m.driver
}

// Close releases the underlying connection pool.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func closeMigrate(mig *migrate.Migrate) {
	srcErr, dbErr := mig.Close()
	if srcErr != nil {
		logger.Get().Warnf("migrate source close error: %v", srcErr)
	}
	if dbErr != nil {
		logger.Get().Warnf("migrate database close error: %v", dbErr)
	}
}

func closeSource(src source.Driver) {
	if err := src.Close(); err != nil {
		logger.Get().Warnf("migrate source close error: %v", err)
	}
}
