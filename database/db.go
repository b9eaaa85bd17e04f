package database

import (
	"fmt"
	"log/slog" // use slog for structured logging

	"foodgram/internal/config"
	"foodgram/internal/http-api/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func ConnectDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	gormLogLevel := gormlogger.Warn
	if cfg.IsDevelopment() {
		gormLogLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify the connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		// close the db handle if ping fails to avoid resource leak
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrateSchema(db, logger); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	logger.Info("Connected to the database successfully")
	return db, nil
}

func migrateSchema(db *gorm.DB, logger *slog.Logger) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeTag{},
		&models.IngredientAmount{},
		&models.Favorite{},
		&models.ShoppingCart{},
		&models.Subscription{},
	)
	if err != nil {
		return err
	}

	logger.Info("Database schema migrated successfully")
	return nil
}
