package database_test

import (
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"storefront-service/config"
	"storefront-service/database"
	"storefront-service/database/databasetest"
	"storefront-service/models"
)

func TestDSN(t *testing.T) {
	cfg := &config.Config{
		DBUser:     "shop",
		DBPassword: "pw",
		DBHost:     "db",
		DBPort:     "3306",
		DBName:     "storefront",
	}

	dsn := database.DSN(cfg)

	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "shop", parsed.User)
	assert.Equal(t, "pw", parsed.Passwd)
	assert.Equal(t, "db:3306", parsed.Addr)
	assert.Equal(t, "storefront", parsed.DBName)
	assert.True(t, parsed.ParseTime)
}

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, database.IsDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, database.IsDuplicateKey(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}))
	assert.False(t, database.IsDuplicateKey(&mysql.MySQLError{Number: 1048}))
	assert.False(t, database.IsDuplicateKey(errors.New("boom")))
	assert.False(t, database.IsDuplicateKey(nil))
}

func TestUniqueSKUEnforcedBySchema(t *testing.T) {
	db := databasetest.Open(t)

	require.NoError(t, db.Create(&models.Product{Title: "Tee", SKU: "TEE-1"}).Error)
	err := db.Create(&models.Product{Title: "Other", SKU: "TEE-1"}).Error

	require.Error(t, err)
	assert.True(t, database.IsDuplicateKey(err))
}

func TestOrderCreatedAtIsNotUpdated(t *testing.T) {
	db := databasetest.Open(t)

	order := models.Order{EmailOrPhone: "a@b.c", Status: models.StatusConfirmed}
	require.NoError(t, db.Create(&order).Error)
	created := order.CreatedAt

	order.Status = models.StatusShipped
	order.CreatedAt = created.AddDate(1, 0, 0)
	require.NoError(t, db.Save(&order).Error)

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.StatusShipped, reloaded.Status)
	assert.True(t, created.Equal(reloaded.CreatedAt))
}
