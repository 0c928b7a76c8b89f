package database

import (
	"fmt"
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"showhub/internal/config"
	"showhub/internal/httpapi/models"
)

// ConnectDB opens the Postgres connection and keeps the schema in sync with
// the models. The composite unique indexes on ratings, watchlist items and
// like tables are created here; the mutators rely on them.
func ConnectDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	logMode := gormlogger.Warn
	if cfg.IsDevelopment() {
		logMode = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Rating{},
		&models.WatchlistItem{},
		&models.TopFavorite{},
		&models.Review{},
		&models.ReviewLike{},
		&models.ReviewReply{},
		&models.List{},
		&models.ListItem{},
		&models.ListLike{},
		&models.ListComment{},
		&models.Suggestion{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	logger.Info("Connected to the database successfully")
	return db, nil
}
