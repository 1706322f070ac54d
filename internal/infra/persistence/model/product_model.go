// Package model contains the GORM persistence models. They are exported so the
// GORM Gen tool can read them from cmd/gen.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID          uuid.UUID                          `gorm:"type:uuid;primaryKey"`
	Name        string                             `gorm:"type:varchar(200);not null"`
	Price       decimal.Decimal                    `gorm:"type:numeric(10,2);not null"`
	MRP         decimal.Decimal                    `gorm:"column:mrp;type:numeric(10,2);not null"`
	Sizes       datatypes.JSONSlice[string]        `gorm:"type:jsonb;not null"`
	StockBySize datatypes.JSONType[map[string]int] `gorm:"type:jsonb;not null"`
	Images      datatypes.JSONSlice[string]        `gorm:"type:jsonb;not null"`
	Version     int                                `gorm:"not null;default:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
