package database

import (
	"fmt"
	"log"
	"strings"

	"exoticworld/dtos"
	"exoticworld/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// IsPostgresDSN reports whether dsn names a PostgreSQL database. Anything
// else is treated as a SQLite file path (or ":memory:").
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

// Connect opens the sandbox database named by dsn.
func Connect(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	if IsPostgresDSN(dsn) {
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		return nil, err
	}

	// SQLite allows one writer; serializing connections avoids "database is
	// locked" under concurrent cart writes and keeps ":memory:" a single DB.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Preference{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// Seed inserts the seed catalog when the products table is empty. It
// returns the number of products created.
func Seed(db *gorm.DB, seed *dtos.CatalogSeed) (int, error) {
	if seed == nil || len(seed.Products) == 0 {
		return 0, nil
	}

	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	products := make([]models.Product, 0, len(seed.Products))
	for _, p := range seed.Products {
		price, err := p.DecimalPrice()
		if err != nil {
			return 0, fmt.Errorf("seed product %s: %w", p.Name, err)
		}
		products = append(products, models.Product{Name: p.Name, Description: p.Description, Price: price})
	}

	if err := db.Create(&products).Error; err != nil {
		return 0, fmt.Errorf("failed to seed catalog: %w", err)
	}

	log.Printf("Seeded %d products", len(products))
	return len(products), nil
}
