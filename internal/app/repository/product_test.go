package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProductByID_Found(t *testing.T) {
	db, mock, repo := setupMockRepo(t)
	defer db.Close()

	productRows := sqlmock.NewRows([]string{
		"id", "store_id", "name", "description", "image_url", "pricing_mode",
		"base_rate", "deposit", "stock", "min_duration_min", "max_duration_min",
	}).AddRow(5, 1, "Перфоратор", "Мощный перфоратор", nil, "day", 40.0, 100.0, 3, 0, 0)

	mock.ExpectQuery("SELECT id, store_id, name, description, image_url").
		WithArgs(uint(5)).
		WillReturnRows(productRows)

	tierRows := sqlmock.NewRows([]string{"id", "product_id", "min_periods", "discount_percent"}).
		AddRow(1, 5, 3, 10.0).
		AddRow(2, 5, 7, 25.0)

	mock.ExpectQuery(`SELECT \* FROM "pricing_tiers"`).
		WithArgs(uint(5)).
		WillReturnRows(tierRows)

	product, err := repo.GetProductByID(5)
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "Перфоратор", product.Name)
	assert.Equal(t, "day", product.PricingMode)
	assert.Equal(t, 40.0, product.BaseRate)
	// Цена "от" — базовая ставка с максимальной скидкой: 40 × 0.75
	assert.Equal(t, 30.0, product.StartingFrom)
	// Без изображения отдается заглушка
	assert.Equal(t, defaultProductImage, product.ImageURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProductByID_NotFound(t *testing.T) {
	db, mock, repo := setupMockRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, store_id, name, description, image_url").
		WithArgs(uint(99)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "store_id", "name", "description", "image_url", "pricing_mode",
			"base_rate", "deposit", "stock", "min_duration_min", "max_duration_min",
		}))

	product, err := repo.GetProductByID(99)
	require.NoError(t, err)
	assert.Nil(t, product)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductExists(t *testing.T) {
	db, mock, repo := setupMockRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "products"`).
		WithArgs(uint(5), false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ProductExists(5)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
