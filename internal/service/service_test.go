package service

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mcastellanos/tienda/internal/config"
	"github.com/mcastellanos/tienda/internal/hash"
	"github.com/mcastellanos/tienda/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func createUser(t *testing.T, db *gorm.DB, email, password string) *models.User {
	t.Helper()

	pwHash, err := hash.HashPassword(password)
	require.NoError(t, err)

	user := models.User{Email: email, PasswordHash: pwHash}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createProduct(t *testing.T, db *gorm.DB, name string, price float64) *models.Product {
	t.Helper()

	product := models.Product{Name: name, Description: "test", Price: price}
	require.NoError(t, db.Create(&product).Error)
	return &product
}
