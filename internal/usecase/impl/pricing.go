// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// moneyTolerance absorbs currency rounding on client-submitted amounts.
var moneyTolerance = decimal.RequireFromString("0.01")

// PriceMismatchDetails tells the client which authoritative price to resync to.
type PriceMismatchDetails struct {
	ProductID     uuid.UUID       `json:"productId"`
	ExpectedPrice decimal.Decimal `json:"expectedPrice"`
	ReceivedPrice decimal.Decimal `json:"receivedPrice"`
}

// StockDetails describes a failed stock check.
type StockDetails struct {
	ProductID uuid.UUID `json:"productId"`
	Size      string    `json:"size"`
	Available int       `json:"available"`
	Requested int       `json:"requested"`
}

// lineKey identifies a cart or checkout line.
type lineKey struct {
	productID uuid.UUID
	size      string
}

func withinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(moneyTolerance)
}

// validateItems re-prices the items from the product table and checks stock.
// Every call reads the products again; results are never cached between calls.
func validateItems(ctx context.Context, productRepo repository.ProductRepository, items []usecase.ItemInput) (*usecase.PricedCart, map[uuid.UUID]*entity.Product, error) {
	priced := &usecase.PricedCart{
		Items: make([]*usecase.PricedItem, 0, len(items)),
		Total: decimal.Zero,
	}
	if len(items) == 0 {
		return priced, map[uuid.UUID]*entity.Product{}, nil
	}

	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}

	products, err := productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load products")
	}

	// Quantities requested so far per (product, stock key), so repeated lines share one budget.
	requested := make(map[uuid.UUID]map[string]int, len(ids))
	total := decimal.Zero

	for _, item := range items {
		if item.Quantity < 1 {
			return nil, nil, domainerrors.ErrValidationFailed.WithMessagef("Quantity must be at least 1")
		}

		product, ok := products[item.ProductID]
		if !ok {
			return nil, nil, domainerrors.ErrProductNotFound.
				WithMessagef("Product %s not found", item.ProductID).
				WithDetails(map[string]any{"productId": item.ProductID})
		}

		if !withinTolerance(item.Price, product.Price) {
			return nil, nil, domainerrors.ErrPriceMismatch.
				WithMessagef("Price mismatch for product %s: expected %s, got %s",
					product.Name, product.Price.StringFixed(2), item.Price.StringFixed(2)).
				WithDetails(PriceMismatchDetails{
					ProductID:     product.ID,
					ExpectedPrice: product.Price,
					ReceivedPrice: item.Price,
				})
		}

		if product.HasSizes() && item.Size == "" {
			return nil, nil, domainerrors.ErrSizeRequired.WithMessagef("Size is required for %s", product.Name)
		}

		key := entity.StockKey(item.Size)
		if requested[product.ID] == nil {
			requested[product.ID] = make(map[string]int)
		}
		requested[product.ID][key] += item.Quantity

		available, exists := product.Available(item.Size)
		if !exists || available < requested[product.ID][key] {
			return nil, nil, domainerrors.ErrInsufficientStock.
				WithMessagef("Insufficient stock for %s in size %s", product.Name, key).
				WithDetails(StockDetails{
					ProductID: product.ID,
					Size:      key,
					Available: available,
					Requested: requested[product.ID][key],
				})
		}

		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		priced.Items = append(priced.Items, &usecase.PricedItem{
			ProductID: product.ID,
			Name:      product.Name,
			Image:     product.PrimaryImage(),
			Quantity:  item.Quantity,
			Price:     product.Price,
			Size:      item.Size,
		})
	}

	// Round once at the end so per-line rounding never accumulates.
	priced.Total = total.Round(2)

	return priced, products, nil
}

// discountedTotal applies a percentage discount and rounds to 2 decimals.
func discountedTotal(total, discountPercent decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(discountPercent.Div(decimal.NewFromInt(100)))

	return total.Mul(factor).Round(2)
}
