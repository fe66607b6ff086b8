package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rxtech-lab/launchpad-drafts/internal/config"
	"github.com/rxtech-lab/launchpad-drafts/internal/models"
	"golang.org/x/sync/singleflight"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DBService owns the process-wide database handle. The handle is opened on
// first use; concurrent first callers share one in-flight open.
type DBService interface {
	// Open returns the shared handle bound to ctx, opening and migrating the
	// database if this is the first call. A failed open is not cached.
	Open(ctx context.Context) (*gorm.DB, error)
	Close() error
}

type dbService struct {
	driver  string
	dsn     string
	dialect func(dsn string) gorm.Dialector

	group singleflight.Group
	mu    sync.RWMutex
	db    *gorm.DB
	// closed is set by Close; later opens fail.
	closed bool
}

// NewDBService creates a DBService for the configured driver.
func NewDBService(cfg config.DatabaseConfig) (DBService, error) {
	switch cfg.Driver {
	case config.DriverSqlite, "":
		return NewSqliteDBService(cfg.Path), nil
	case config.DriverPostgres:
		return NewPostgresDBService(cfg.PostgresURL), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q: %w", cfg.Driver, ErrStorageUnavailable)
	}
}

// NewSqliteDBService creates a DBService backed by a SQLite file (or ":memory:").
func NewSqliteDBService(dbPath string) DBService {
	return &dbService{driver: config.DriverSqlite, dsn: dbPath, dialect: sqlite.Open}
}

// NewPostgresDBService creates a DBService backed by PostgreSQL.
func NewPostgresDBService(postgresURL string) DBService {
	return &dbService{driver: config.DriverPostgres, dsn: postgresURL, dialect: postgres.Open}
}

func (s *dbService) Open(ctx context.Context) (*gorm.DB, error) {
	s.mu.RLock()
	db, closed := s.db, s.closed
	s.mu.RUnlock()
	if closed {
		return nil, fmt.Errorf("database is closed: %w", ErrStorageUnavailable)
	}
	if db != nil {
		return db.WithContext(ctx), nil
	}

	// The open itself is not bound to any single caller's ctx, so one
	// caller giving up does not fail the others.
	ch := s.group.DoChan("open", func() (interface{}, error) {
		s.mu.RLock()
		existing := s.db
		s.mu.RUnlock()
		if existing != nil {
			return existing, nil
		}

		opened, err := s.open()
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			closeDB(opened)
			return nil, fmt.Errorf("database is closed: %w", ErrStorageUnavailable)
		}
		s.db = opened
		return opened, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*gorm.DB).WithContext(ctx), nil
	}
}

func (s *dbService) open() (*gorm.DB, error) {
	if s.dsn == "" {
		return nil, fmt.Errorf("no %s data source configured: %w", s.driver, ErrStorageUnavailable)
	}

	if s.driver == config.DriverSqlite && s.dsn != ":memory:" && !strings.HasPrefix(s.dsn, "file:") {
		// Create directory if it doesn't exist
		dir := filepath.Dir(s.dsn)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w: %w", ErrStorageUnavailable, err)
		}
	}

	// Configure GORM logger - only log errors and slow queries
	gormLogger := logger.New(
		log.New(os.Stderr, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second,  // Slow SQL threshold
			LogLevel:                  logger.Error, // Only log errors and slow queries
			IgnoreRecordNotFoundError: true,         // Ignore ErrRecordNotFound error for logger
			ParameterizedQueries:      true,         // Keep asset bytes out of the log
			Colorful:                  false,        // Disable color
		},
	)

	db, err := gorm.Open(s.dialect(s.dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, classifyError("connect to database", errors.Join(ErrStorageUnavailable, err))
	}

	if s.driver == config.DriverSqlite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql handle: %w: %w", ErrStorageUnavailable, err)
		}
		// SQLite allows one writer, and every ":memory:" connection is its own database.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	}

	if err := migrate(db); err != nil {
		closeDB(db)
		return nil, err
	}
	return db, nil
}

// migrate creates missing tables and records the schema version. Existing
// tables are left as they are.
func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.StoreMeta{},
		&models.Draft{},
		&models.DraftAsset{},
		&models.CandyMachine{},
	); err != nil {
		return classifyError("migrate database", errors.Join(ErrStorageUnavailable, err))
	}

	var meta models.StoreMeta
	err := db.Where("key = ?", models.StoreMetaSchemaVersionKey).Limit(1).Find(&meta).Error
	if err != nil {
		return classifyError("read schema version", err)
	}
	if meta.Key != "" {
		stored, err := strconv.Atoi(meta.Value)
		if err != nil {
			return fmt.Errorf("corrupt schema version %q: %w", meta.Value, ErrStorageUnavailable)
		}
		if stored > models.SchemaVersion {
			return fmt.Errorf("database schema version %d is newer than supported version %d: %w", stored, models.SchemaVersion, ErrStorageUnavailable)
		}
		if stored == models.SchemaVersion {
			return nil
		}
	}

	meta = models.StoreMeta{Key: models.StoreMetaSchemaVersionKey, Value: strconv.Itoa(models.SchemaVersion)}
	if err := db.Save(&meta).Error; err != nil {
		return classifyError("write schema version", err)
	}
	return nil
}

// Close closes the database connection
func (s *dbService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.db == nil {
		return nil
	}
	db := s.db
	s.db = nil
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
