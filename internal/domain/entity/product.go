package entity

import (
	"time"

	"storefront/internal/domain/constants"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalogue item. Price is the only trusted source for totals.
type Product struct {
	ID          uuid.UUID
	Name        string
	Price       decimal.Decimal
	MRP         decimal.Decimal
	Sizes       []string
	StockBySize map[string]int
	Images      []string
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StockKey maps an optional size to its stockBySize key.
func StockKey(size string) string {
	if size == "" {
		return constants.DefaultStockKey
	}

	return size
}

// HasSizes reports whether a size must be chosen for this product.
func (p *Product) HasSizes() bool {
	return len(p.Sizes) > 0
}

// Available returns the stock for a size and whether the key exists at all.
func (p *Product) Available(size string) (int, bool) {
	qty, ok := p.StockBySize[StockKey(size)]

	return qty, ok
}

// TotalStock sums every size bucket.
func (p *Product) TotalStock() int {
	total := 0
	for _, qty := range p.StockBySize {
		total += qty
	}

	return total
}

// PrimaryImage returns the first image or a placeholder.
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return constants.PlaceholderImage
	}

	return p.Images[0]
}

// CloneStock returns a copy of stockBySize that can be mutated safely.
func (p *Product) CloneStock() map[string]int {
	out := make(map[string]int, len(p.StockBySize))
	for k, v := range p.StockBySize {
		out[k] = v
	}

	return out
}
