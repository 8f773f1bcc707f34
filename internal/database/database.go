package database

import (
	"fmt"

	migrations "wiki-quiz/database"
	"wiki-quiz/internal/config"
	"wiki-quiz/internal/logger"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"  // postgres driver
	_ "modernc.org/sqlite" // sqlite driver
	"go.uber.org/zap"
)

// Connect opens the configured database, applies the pool settings and
// checks the connection.
func Connect(cfg *config.Config) (*sqlx.DB, error) {
	driver := cfg.DB.Driver
	db, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}

	if driver == config.DriverSQLite {
		// One writer at a time; concurrent writers only get SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	} else if cfg.DB.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	}
	if cfg.DB.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	}
	if cfg.DB.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)
	}

	logger.Get().Info("Database connection established", zap.String("driver", driver))
	return db, nil
}

// ConnectAndMigrate connects and, when db.auto_migrate is set, brings the
// schema up to date.
func ConnectAndMigrate(cfg *config.Config) (*sqlx.DB, error) {
	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	if !cfg.DB.AutoMigrate {
		return db, nil
	}

	if err := migrations.Migrate(db.DB, cfg.DB.Driver); err != nil {
		db.Close()
		return nil, err
	}
	logger.Get().Info("Database schema is up to date")
	return db, nil
}
