package database

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wnt/guiverse/internal/config"
	"github.com/wnt/guiverse/internal/game"
	"github.com/wnt/guiverse/internal/models"
)

var _ game.Collection = (*Collection)(nil)

// TestConnectWithMissingConfig returns an error without dialing
func TestConnectWithMissingConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{"empty", config.Config{}},
		{"no user", config.Config{DBHost: "localhost", DBName: "guiverse", DBPort: "5432"}},
		{"no port", config.Config{DBHost: "localhost", DBName: "guiverse", DBUser: "gui"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := Connect(tt.cfg)
			assert.ErrorIs(t, err, ErrMissingConfig)
			assert.Nil(t, db)
		})
	}
}

func dbConfig(t *testing.T) config.Config {
	t.Helper()
	if os.Getenv("RUN_DB_TESTS") != "true" {
		t.Skip("Skipping database connection test. Set RUN_DB_TESTS=true to enable.")
	}

	cfg := config.Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		DBSSLMode:  "disable",
	}
	for name, v := range map[string]string{"DB_HOST": cfg.DBHost, "DB_USER": cfg.DBUser, "DB_NAME": cfg.DBName, "DB_PORT": cfg.DBPort} {
		if v == "" {
			t.Skipf("Skipping test because %s environment variable is not set", name)
		}
	}
	return cfg
}

func TestConnectWithInvalidCredentials(t *testing.T) {
	cfg := dbConfig(t)
	cfg.DBUser = "nonexistentuser"
	cfg.DBPassword = "wrongpassword"
	cfg.DBName = "nonexistentdb"

	db, err := Connect(cfg)
	assert.Error(t, err)
	assert.Nil(t, db)
}

func TestCollection(t *testing.T) {
	db, err := Connect(dbConfig(t))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, db.Exec("TRUNCATE pets, inventory_items").Error)
	require.NoError(t, seed(db))

	c := NewCollection(db)

	pets, err := c.Pets(ctx)
	require.NoError(t, err)
	require.Len(t, pets, 2)
	assert.Equal(t, "CryptoKitty", pets[0].Name)
	assert.Equal(t, []string{"Meme Lord", "DeFi Genius", "Battle Ready"}, pets[0].Traits)

	pet, err := c.AddPet(ctx, func(id int) models.Pet {
		return models.Pet{ID: id, Name: "Rex", Type: "Dragon", Level: 1, Rarity: models.RarityCommon}
	})
	require.NoError(t, err)
	assert.Equal(t, 3, pet.ID)

	updated, err := c.UpdatePet(ctx, 3, func(p *models.Pet) { p.Level = 7 })
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Level)

	_, err = c.Pet(ctx, 42)
	assert.ErrorIs(t, err, models.ErrPetNotFound)
	_, err = c.UpdatePet(ctx, 42, func(*models.Pet) {})
	assert.ErrorIs(t, err, models.ErrPetNotFound)

	require.NoError(t, c.AddItem(ctx, "Potion"))
	require.NoError(t, c.AddItem(ctx, "Armor"))
	items, err := c.Inventory(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Potion", "Armor"}, items)
}
