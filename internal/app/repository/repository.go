package repository

import (
	"fmt"

	"github.com/Synapsr/Louez-sub011/internal/app/ds"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func New(dsn string) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Автоматическая миграция всех таблиц
	err = db.AutoMigrate(
		&ds.Store{},
		&ds.User{},
		&ds.Customer{},
		&ds.Product{},
		&ds.PricingTier{},
		&ds.Reservation{},
		&ds.ReservationItem{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{
		db: db,
	}, nil
}

// NewWithDB оборачивает готовое соединение (используется в тестах)
func NewWithDB(db *gorm.DB) *Repository {
	return &Repository{db: db}
}
