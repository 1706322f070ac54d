// Package handler contains the HTTP handlers of the API server.
package handler

import (
	"storefront/internal/delivery/api/middleware"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ItemRequest is one client-submitted cart or checkout line.
type ItemRequest struct {
	ProductID uuid.UUID       `json:"productId" validate:"required"`
	Quantity  int             `json:"quantity" validate:"gte=1"`
	Price     decimal.Decimal `json:"price" validate:"gt=0"`
	Size      string          `json:"size" validate:"max=16"`
}

func (r ItemRequest) toInput() usecase.ItemInput {
	return usecase.ItemInput{
		ProductID: r.ProductID,
		Quantity:  r.Quantity,
		Price:     r.Price,
		Size:      r.Size,
	}
}

func toItemInputs(items []ItemRequest) []usecase.ItemInput {
	inputs := make([]usecase.ItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, item.toInput())
	}

	return inputs
}

// bindAndValidate decodes the request into req and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithMessagef("Invalid request body")
	}

	return errors.WithStack(c.Validate(req))
}

// requireUserID returns the caller set by the auth middleware.
func requireUserID(c echo.Context) (uuid.UUID, error) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return uuid.Nil, domainerrors.ErrUnauthorized
	}

	return userID, nil
}
