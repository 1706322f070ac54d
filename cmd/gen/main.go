package main

import (
	"storefront/internal/infra/persistence/model"

	"gorm.io/gen"
)

// Generates typed query helpers for the persistence models into internal/infra/persistence/postgres/query.
func main() {
	models := []any{
		model.UserModel{},
		model.LoginAttemptModel{},
		model.ProductModel{},
		model.CartModel{},
		model.CartItemModel{},
		model.OfferCodeModel{},
		model.UserOfferCodeModel{},
		model.OrderModel{},
		model.OrderItemModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
		Mode:    gen.WithDefaultQuery | gen.WithQueryInterface,
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
