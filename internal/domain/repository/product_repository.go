// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrVersionConflict is returned when a compare-and-swap write lost the race.
	ErrVersionConflict = errors.New("version conflict")
)

// ProductRepository defines catalogue reads and the versioned stock write.
type ProductRepository interface {
	// FindByID retrieves a single product.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindByIDs retrieves the given products. Missing ids are simply absent from the result.
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Product, error)

	// UpdateStock writes the stock map and bumps the version only when the stored
	// version still equals expectedVersion. It returns ErrVersionConflict otherwise.
	UpdateStock(ctx context.Context, id uuid.UUID, expectedVersion int, stock map[string]int) error
}
