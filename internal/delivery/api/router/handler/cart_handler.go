package handler

import (
	"log/slog"

	"storefront/internal/delivery/api/response"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// CartHandlerParams holds dependencies for CartHandler, injected by Fx.
type CartHandlerParams struct {
	fx.In

	CartUC usecase.CartUsecase
	Logger *slog.Logger
}

// CartHandler serves the server-side cart.
type CartHandler struct {
	cartUC usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler.
func NewCartHandler(params CartHandlerParams) *CartHandler {
	return &CartHandler{
		cartUC: params.CartUC,
		logger: params.Logger,
	}
}

// SyncCartRequest replaces the whole cart. An empty list empties it.
type SyncCartRequest struct {
	CartItems []ItemRequest `json:"cartItems" validate:"dive"`
}

// UpdateCartItemRequest sets the quantity of one line.
type UpdateCartItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"gte=0"`
	Size      string    `json:"size" validate:"max=16"`
}

// RemoveCartItemRequest names the line to delete.
type RemoveCartItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Size      string    `json:"size" validate:"max=16"`
}

// ValidateCartRequest is a checkout cart with an optional offer code.
type ValidateCartRequest struct {
	Items     []ItemRequest `json:"items" validate:"min=1,dive"`
	OfferCode string        `json:"offerCode" validate:"max=32"`
}

// CartResponse is the cart as shown to its owner.
type CartResponse struct {
	CartItems []*usecase.PricedItem `json:"cartItems"`
	Total     decimal.Decimal       `json:"total"`
}

func toCartResponse(view *usecase.CartView) CartResponse {
	items := view.Items
	if items == nil {
		items = []*usecase.PricedItem{}
	}

	return CartResponse{CartItems: items, Total: view.Total}
}

// GetCart handles GET /api/cart.
func (h *CartHandler) GetCart(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	view, err := h.cartUC.GetCart(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toCartResponse(view))
}

// SyncCart handles POST /api/cart/sync.
func (h *CartHandler) SyncCart(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req SyncCartRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	view, err := h.cartUC.SyncCart(c.Request().Context(), userID, toItemInputs(req.CartItems))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toCartResponse(view))
}

// AddItem handles POST /api/cart/add.
func (h *CartHandler) AddItem(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req ItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	view, err := h.cartUC.AddItem(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toCartResponse(view))
}

// UpdateItem handles PUT /api/cart/update.
func (h *CartHandler) UpdateItem(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req UpdateCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	view, err := h.cartUC.UpdateItem(c.Request().Context(), userID, usecase.UpdateCartItemInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Size:      req.Size,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toCartResponse(view))
}

// RemoveItem handles DELETE /api/cart/remove. The line is named in the JSON body.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req RemoveCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	view, err := h.cartUC.RemoveItem(c.Request().Context(), userID, req.ProductID, req.Size)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toCartResponse(view))
}

// ClearCart handles DELETE /api/cart/clear.
func (h *CartHandler) ClearCart(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	if err := h.cartUC.ClearCart(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, CartResponse{CartItems: []*usecase.PricedItem{}, Total: decimal.Zero})
}

// ValidateCart handles POST /api/cart/validate.
func (h *CartHandler) ValidateCart(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req ValidateCartRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	validation, err := h.cartUC.ValidateCart(c.Request().Context(), userID, toItemInputs(req.Items), req.OfferCode)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, validation)
}
