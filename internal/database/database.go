package database

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/curator/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

// Options selects the backing store. A non-empty DSN picks Postgres unless
// ForceLocal is set; otherwise the embedded SQLite file at Path is used.
type Options struct {
	DSN        string
	Path       string
	ForceLocal bool
}

func NewDatabase(opts Options) (*Database, error) {
	var dialector gorm.Dialector
	if opts.DSN != "" && !opts.ForceLocal {
		dialector = postgres.Open(opts.DSN)
		log.Printf("Connecting to Postgres database")
	} else {
		dsn := opts.Path
		// Start write transactions immediately and wait on the file lock;
		// a deferred transaction upgrading to a write would deadlock under
		// concurrent votes instead of queueing
		if !strings.Contains(dsn, "?") {
			dsn += "?_busy_timeout=5000&_txlock=immediate"
		}
		dialector = sqlite.Open(dsn)
		log.Printf("WARNING: using embedded SQLite database at %s (development/testing)", opts.Path)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Surface unique-constraint violations as gorm.ErrDuplicatedKey
		// regardless of driver
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&entities.Book{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully")

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping verifies the underlying connection is alive.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
