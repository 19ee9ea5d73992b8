package game

import (
	"context"
	"sync"

	"github.com/wnt/guiverse/internal/models"
)

// Collection holds the pets and the inventory
type Collection interface {
	Pets(ctx context.Context) ([]models.Pet, error)
	Pet(ctx context.Context, id int) (models.Pet, error)
	// AddPet assigns the next id (collection length + 1) and stores build(id)
	AddPet(ctx context.Context, build func(id int) models.Pet) (models.Pet, error)
	UpdatePet(ctx context.Context, id int, update func(*models.Pet)) (models.Pet, error)
	Inventory(ctx context.Context) ([]string, error)
	AddItem(ctx context.Context, name string) error
}

// MemoryCollection is an in-process Collection
type MemoryCollection struct {
	mu    sync.RWMutex
	pets  []models.Pet
	items []string
}

// NewMemoryCollection creates a collection holding seed
func NewMemoryCollection(seed []models.Pet) *MemoryCollection {
	pets := make([]models.Pet, len(seed))
	for i, p := range seed {
		pets[i] = p.Clone()
	}
	return &MemoryCollection{pets: pets}
}

func (c *MemoryCollection) Pets(context.Context) ([]models.Pet, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	pets := make([]models.Pet, len(c.pets))
	for i, p := range c.pets {
		pets[i] = p.Clone()
	}
	return pets, nil
}

func (c *MemoryCollection) Pet(_ context.Context, id int) (models.Pet, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i := c.index(id)
	if i < 0 {
		return models.Pet{}, ErrPetNotFound
	}
	return c.pets[i].Clone(), nil
}

func (c *MemoryCollection) AddPet(_ context.Context, build func(id int) models.Pet) (models.Pet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	pet := build(len(c.pets) + 1)
	c.pets = append(c.pets, pet.Clone())
	return pet, nil
}

func (c *MemoryCollection) UpdatePet(_ context.Context, id int, update func(*models.Pet)) (models.Pet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		return models.Pet{}, ErrPetNotFound
	}
	update(&c.pets[i])
	return c.pets[i].Clone(), nil
}

func (c *MemoryCollection) Inventory(context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string{}, c.items...), nil
}

func (c *MemoryCollection) AddItem(_ context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, name)
	return nil
}

func (c *MemoryCollection) index(id int) int {
	for i := range c.pets {
		if c.pets[i].ID == id {
			return i
		}
	}
	return -1
}
