package database

import (
	"fmt"
	"strings"

	"github.com/olangriffin/fyp-helpdesk/internal/config"
	"github.com/olangriffin/fyp-helpdesk/internal/logging"
	"github.com/olangriffin/fyp-helpdesk/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the configured database. Postgres URLs get the postgres
// driver; anything else is treated as a sqlite file path, which is the
// default for local development.
func Connect(cfg *config.Config) error {
	dialector := openDialector(cfg.DatabaseURL)

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	logging.L().Info("database connection established")
	return nil
}

func openDialector(databaseURL string) gorm.Dialector {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return postgres.Open(databaseURL)
	}
	return sqlite.Open(databaseURL)
}

func Migrate() error {
	logging.L().Info("running database migrations")
	err := DB.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.Membership{},
		&models.Ticket{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logging.L().Info("database migrations completed")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (used for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
