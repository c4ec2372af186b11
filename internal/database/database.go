package database

import (
	"fmt"

	"github.com/arianafaustini/dial-tester/internal/config"
	logging "github.com/arianafaustini/dial-tester/internal/logging"
	"github.com/arianafaustini/dial-tester/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Init opens the Postgres connection and runs migrations. The returned
// handle is passed explicitly to the repository; there is no package-level
// database singleton.
func Init(log *zap.Logger) *gorm.DB {
	dbConf := config.Conf.Database
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		dbConf.Host, dbConf.User, dbConf.Password, dbConf.DBName, dbConf.Port)

	gormLogger := logging.NewGormZapLogger(log)
	gormLogger.LogLevel = logger.Warn

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	log.Info("Database connection established successfully.")
	runMigrations(db, log)
	return db
}

func runMigrations(db *gorm.DB, log *zap.Logger) {
	// GORM's AutoMigrate will create tables, columns, and foreign keys.
	// It will NOT create custom indexes, so we handle that separately.
	err := db.AutoMigrate(
		&models.Session{},
		&models.DataPoint{},
	)
	if err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database migrations completed successfully.")

	// The dashboard reads a session's points ordered by capture time.
	pointsIndex := `CREATE INDEX IF NOT EXISTS idx_data_points_session_time ON data_points (session_id, "timestamp");`
	if err := db.Exec(pointsIndex).Error; err != nil {
		log.Fatal("Failed to create custom index on data_points table", zap.Error(err))
	}
	log.Info("Custom indexes ensured successfully.")
}
