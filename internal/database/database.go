package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/wnt/guiverse/internal/config"
	"github.com/wnt/guiverse/internal/metrics"
	"github.com/wnt/guiverse/internal/models"
)

// ErrMissingConfig is returned when a required connection setting is empty
var ErrMissingConfig = errors.New("missing database configuration")

// Connect opens the postgres pet collection, migrates it and seeds the starter pets
func Connect(cfg config.Config) (*gorm.DB, error) {
	for name, value := range map[string]string{
		"DB_HOST": cfg.DBHost,
		"DB_USER": cfg.DBUser,
		"DB_NAME": cfg.DBName,
		"DB_PORT": cfg.DBPort,
	} {
		if value == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingConfig, name)
		}
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
	)

	gormConfig := &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Silent),
		PrepareStmt: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := migrateSchema(db); err != nil {
		return nil, err
	}
	if err := seed(db); err != nil {
		return nil, err
	}

	return db, nil
}

func migrateSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Pet{},
		&models.InventoryItem{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	db.Exec("CREATE INDEX IF NOT EXISTS idx_pets_wins_losses ON pets(wins, losses)")
	return nil
}

// seed inserts the starter pets into an empty collection
func seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Pet{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count pets: %w", err)
	}
	if count > 0 {
		return nil
	}

	pets := models.SeedPets()
	if err := db.Create(&pets).Error; err != nil {
		return fmt.Errorf("failed to seed pets: %w", err)
	}
	return nil
}

// Collection stores pets and inventory in postgres
type Collection struct {
	db *gorm.DB
}

// NewCollection wraps an open connection
func NewCollection(db *gorm.DB) *Collection {
	return &Collection{db: db}
}

func (c *Collection) Pets(ctx context.Context) ([]models.Pet, error) {
	var pets []models.Pet
	err := c.db.WithContext(ctx).Order("id").Find(&pets).Error
	record("list_pets", err)
	return pets, err
}

func (c *Collection) Pet(ctx context.Context, id int) (models.Pet, error) {
	var pet models.Pet
	err := c.db.WithContext(ctx).First(&pet, id).Error
	record("get_pet", err)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Pet{}, models.ErrPetNotFound
	}
	return pet, err
}

// AddPet holds a table lock so concurrent mints get distinct ids
func (c *Collection) AddPet(ctx context.Context, build func(id int) models.Pet) (models.Pet, error) {
	var pet models.Pet
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("LOCK TABLE pets IN SHARE ROW EXCLUSIVE MODE").Error; err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.Pet{}).Count(&count).Error; err != nil {
			return err
		}
		pet = build(int(count) + 1)
		return tx.Create(&pet).Error
	})
	record("add_pet", err)
	return pet, err
}

func (c *Collection) UpdatePet(ctx context.Context, id int, update func(*models.Pet)) (models.Pet, error) {
	var pet models.Pet
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&pet, id).Error; err != nil {
			return err
		}
		update(&pet)
		return tx.Save(&pet).Error
	})
	record("update_pet", err)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Pet{}, models.ErrPetNotFound
	}
	return pet, err
}

func (c *Collection) Inventory(ctx context.Context) ([]string, error) {
	var names []string
	err := c.db.WithContext(ctx).Model(&models.InventoryItem{}).Order("position").Pluck("name", &names).Error
	record("list_inventory", err)
	if names == nil {
		names = []string{}
	}
	return names, err
}

func (c *Collection) AddItem(ctx context.Context, name string) error {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("LOCK TABLE inventory_items IN SHARE ROW EXCLUSIVE MODE").Error; err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.InventoryItem{}).Count(&count).Error; err != nil {
			return err
		}
		return tx.Create(&models.InventoryItem{Position: int(count), Name: name}).Error
	})
	record("add_item", err)
	return err
}

func record(operation string, err error) {
	status := metrics.Status(err)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		status = "not_found"
	}
	metrics.RecordStorageOperation("db_"+operation, status)
}
