package impl

import (
	"bytes"
	"context"
	"slices"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// stockDeltas groups order lines into per-product, per-size quantity changes.
// Product ids come back sorted so concurrent writers lock rows in the same order.
func stockDeltas(items []*entity.OrderItem, sign int) ([]uuid.UUID, map[uuid.UUID]map[string]int) {
	order := make([]uuid.UUID, 0, len(items))
	deltas := make(map[uuid.UUID]map[string]int, len(items))
	for _, item := range items {
		if _, ok := deltas[item.ProductID]; !ok {
			deltas[item.ProductID] = make(map[string]int)
			order = append(order, item.ProductID)
		}
		deltas[item.ProductID][entity.StockKey(item.Size)] += sign * item.Quantity
	}

	slices.SortFunc(order, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})

	return order, deltas
}

// reserveStock decrements stock for every line with a version compare-and-swap.
func reserveStock(ctx context.Context, productRepo repository.ProductRepository, items []*entity.OrderItem, attempts int) error {
	ids, deltas := stockDeltas(items, -1)
	for _, id := range ids {
		if err := applyStockDelta(ctx, productRepo, id, deltas[id], attempts); err != nil {
			return err
		}
	}

	return nil
}

// releaseStock gives the quantities of the lines back.
func releaseStock(ctx context.Context, productRepo repository.ProductRepository, items []*entity.OrderItem, attempts int) error {
	ids, deltas := stockDeltas(items, 1)
	for _, id := range ids {
		if err := applyStockDelta(ctx, productRepo, id, deltas[id], attempts); err != nil {
			return err
		}
	}

	return nil
}

// applyStockDelta re-reads the product and retries while the version keeps moving,
// giving up with ErrStockConflict after attempts tries.
func applyStockDelta(ctx context.Context, productRepo repository.ProductRepository, productID uuid.UUID, delta map[string]int, attempts int) error {
	if attempts < 1 {
		attempts = 1
	}

	for range attempts {
		product, err := productRepo.FindByID(ctx, productID)
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound.WithMessagef("Product %s not found", productID)
		}
		if err != nil {
			return errors.Wrap(err, "failed to load product for stock update")
		}

		stock := product.CloneStock()
		for key, change := range delta {
			current, exists := stock[key]
			if change < 0 && (!exists || current+change < 0) {
				return domainerrors.ErrInsufficientStock.
					WithMessagef("Insufficient stock for %s in size %s", product.Name, key).
					WithDetails(StockDetails{ProductID: productID, Size: key, Available: current, Requested: -change})
			}
			stock[key] = current + change
		}

		err = productRepo.UpdateStock(ctx, productID, product.Version, stock)
		if errors.Is(err, repository.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return errors.Wrap(err, "failed to update product stock")
		}

		return nil
	}

	return domainerrors.ErrStockConflict.WithDetails(map[string]any{"productId": productID})
}
