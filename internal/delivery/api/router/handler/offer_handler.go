package handler

import (
	"log/slog"

	"storefront/internal/delivery/api/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// OfferHandlerParams holds dependencies for OfferHandler, injected by Fx.
type OfferHandlerParams struct {
	fx.In

	OfferUC usecase.OfferUsecase
	Logger  *slog.Logger
}

// OfferHandler serves offer code previews.
type OfferHandler struct {
	offerUC usecase.OfferUsecase
	logger  *slog.Logger
}

// NewOfferHandler is the constructor for OfferHandler.
func NewOfferHandler(params OfferHandlerParams) *OfferHandler {
	return &OfferHandler{
		offerUC: params.OfferUC,
		logger:  params.Logger,
	}
}

// ApplyOfferRequest is the body of POST /api/offers/apply.
type ApplyOfferRequest struct {
	Code      string          `json:"code" validate:"required,max=32"`
	CartTotal decimal.Decimal `json:"cartTotal" validate:"gt=0"`
	Items     []ItemRequest   `json:"items" validate:"min=1,dive"`
}

// ApplyOffer previews a discount. Redemption only happens at order creation.
func (h *OfferHandler) ApplyOffer(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req ApplyOfferRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	preview, err := h.offerUC.ApplyOfferCode(c.Request().Context(), userID, usecase.ApplyOfferInput{
		Code:      req.Code,
		Items:     toItemInputs(req.Items),
		CartTotal: req.CartTotal,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, preview)
}
