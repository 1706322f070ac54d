package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// cartService implements the CartUsecase interface.
type cartService struct {
	txManager   repository.TransactionManager
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	offerRepo   repository.OfferCodeRepository
	ledger      offerLedger
	logger      *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	CartRepo    repository.CartRepository
	ProductRepo repository.ProductRepository
	OrderRepo   repository.OrderRepository
	OfferRepo   repository.OfferCodeRepository
	Logger      *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		txManager:   params.TxManager,
		cartRepo:    params.CartRepo,
		productRepo: params.ProductRepo,
		orderRepo:   params.OrderRepo,
		offerRepo:   params.OfferRepo,
		ledger:      newOfferLedger(time.Now),
		logger:      params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetCart returns the persisted cart. A user without a cart gets an empty one.
func (srv *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*usecase.CartView, error) {
	cart, err := srv.cartRepo.FindByUser(ctx, userID)
	if errors.Is(err, repository.ErrCartNotFound) {
		return &usecase.CartView{Items: []*usecase.PricedItem{}, Total: decimal.Zero}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find cart")
	}

	return srv.view(ctx, cart)
}

// SyncCart replaces the server cart with the validated client cart.
func (srv *cartService) SyncCart(ctx context.Context, userID uuid.UUID, items []usecase.ItemInput) (*usecase.CartView, error) {
	priced, _, err := validateItems(ctx, srv.productRepo, items)
	if err != nil {
		return nil, err
	}

	merged := mergeLines(priced.Items)

	err = srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		cartRepo := factory.NewCartRepository()

		cart, err := cartRepo.GetOrCreate(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to get cart")
		}

		lines := make([]*entity.CartItem, 0, len(merged))
		for _, item := range merged {
			lines = append(lines, &entity.CartItem{
				ID:        uuid.New(),
				CartID:    cart.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
				Size:      item.Size,
			})
		}

		return errors.Wrap(cartRepo.ReplaceItems(ctx, cart.ID, lines), "failed to replace cart items")
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Synced cart", slog.String("userID", userID.String()), slog.Int("items", len(merged)))

	return &usecase.CartView{Items: merged, Total: priced.Total}, nil
}

// mergeLines folds repeated (product, size) lines into one, summing quantities.
// The first occurrence keeps its position.
func mergeLines(items []*usecase.PricedItem) []*usecase.PricedItem {
	merged := make([]*usecase.PricedItem, 0, len(items))
	index := make(map[lineKey]int, len(items))
	for _, item := range items {
		key := lineKey{productID: item.ProductID, size: item.Size}
		if i, ok := index[key]; ok {
			merged[i].Quantity += item.Quantity

			continue
		}

		line := *item
		index[key] = len(merged)
		merged = append(merged, &line)
	}

	return merged
}

// AddItem merges one line into the cart, checking stock for the merged quantity.
func (srv *cartService) AddItem(ctx context.Context, userID uuid.UUID, item usecase.ItemInput) (*usecase.CartView, error) {
	var cart *entity.Cart
	err := srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		cartRepo := factory.NewCartRepository()

		var err error
		cart, err = cartRepo.GetOrCreate(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to get cart")
		}

		merged := item
		if existing := cart.FindItem(item.ProductID, item.Size); existing != nil {
			merged.Quantity += existing.Quantity
		}

		priced, _, err := validateItems(ctx, factory.NewProductRepository(), []usecase.ItemInput{merged})
		if err != nil {
			return err
		}

		return errors.Wrap(cartRepo.UpsertItem(ctx, &entity.CartItem{
			ID:        uuid.New(),
			CartID:    cart.ID,
			ProductID: item.ProductID,
			Quantity:  merged.Quantity,
			Price:     priced.Items[0].Price,
			Size:      item.Size,
		}), "failed to upsert cart item")
	})
	if err != nil {
		return nil, err
	}

	return srv.GetCart(ctx, userID)
}

// UpdateItem sets the quantity of an existing line. Zero removes the line.
func (srv *cartService) UpdateItem(ctx context.Context, userID uuid.UUID, input usecase.UpdateCartItemInput) (*usecase.CartView, error) {
	if input.Quantity < 0 {
		return nil, domainerrors.ErrValidationFailed.WithMessagef("Quantity cannot be negative")
	}

	cart, err := srv.findCartWithItem(ctx, userID, input.ProductID, input.Size)
	if err != nil {
		return nil, err
	}

	if input.Quantity == 0 {
		if err := srv.cartRepo.RemoveItem(ctx, cart.ID, input.ProductID, input.Size); err != nil {
			return nil, errors.Wrap(err, "failed to remove cart item")
		}

		return srv.GetCart(ctx, userID)
	}

	product, err := srv.productRepo.FindByID(ctx, input.ProductID)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, domainerrors.ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find product")
	}

	if available, ok := product.Available(input.Size); !ok || available < input.Quantity {
		return nil, domainerrors.ErrInsufficientStock.
			WithMessagef("Insufficient stock for size %s", entity.StockKey(input.Size)).
			WithDetails(StockDetails{ProductID: product.ID, Size: entity.StockKey(input.Size), Available: available, Requested: input.Quantity})
	}

	if err := srv.cartRepo.UpdateItemQuantity(ctx, cart.ID, input.ProductID, input.Size, input.Quantity); err != nil {
		return nil, errors.Wrap(err, "failed to update cart item")
	}

	return srv.GetCart(ctx, userID)
}

// RemoveItem deletes one line.
func (srv *cartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID, size string) (*usecase.CartView, error) {
	cart, err := srv.findCartWithItem(ctx, userID, productID, size)
	if err != nil {
		return nil, err
	}

	if err := srv.cartRepo.RemoveItem(ctx, cart.ID, productID, size); err != nil {
		return nil, errors.Wrap(err, "failed to remove cart item")
	}

	return srv.GetCart(ctx, userID)
}

// ClearCart empties the cart.
func (srv *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	if err := srv.cartRepo.ClearByUser(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}

	srv.log(ctx).Info("Cleared cart", slog.String("userID", userID.String()))

	return nil
}

// ValidateCart re-prices a checkout cart and previews the optional offer code.
func (srv *cartService) ValidateCart(ctx context.Context, userID uuid.UUID, items []usecase.ItemInput, offerCode string) (*usecase.CartValidation, error) {
	if len(items) == 0 {
		return nil, domainerrors.ErrValidationFailed.WithMessagef("Cart is empty")
	}

	priced, _, err := validateItems(ctx, srv.productRepo, items)
	if err != nil {
		return nil, err
	}

	discount := decimal.Zero
	if entity.NormalizeOfferCode(offerCode) != "" {
		offer, err := srv.ledger.Check(ctx, srv.offerRepo, srv.orderRepo, userID, offerCode)
		if err != nil {
			return nil, err
		}
		discount = offer.Discount
	}

	return &usecase.CartValidation{
		Valid:    true,
		Total:    discountedTotal(priced.Total, discount),
		Items:    priced.Items,
		Discount: discount,
	}, nil
}

func (srv *cartService) findCartWithItem(ctx context.Context, userID, productID uuid.UUID, size string) (*entity.Cart, error) {
	cart, err := srv.cartRepo.FindByUser(ctx, userID)
	if errors.Is(err, repository.ErrCartNotFound) {
		return nil, domainerrors.ErrCartNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find cart")
	}

	if cart.FindItem(productID, size) == nil {
		return nil, domainerrors.ErrCartItemNotFound
	}

	return cart, nil
}

// view decorates cart lines with product names and images. Totals use the stored snapshots.
func (srv *cartService) view(ctx context.Context, cart *entity.Cart) (*usecase.CartView, error) {
	ids := make([]uuid.UUID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}

	products := map[uuid.UUID]*entity.Product{}
	if len(ids) > 0 {
		var err error
		products, err = srv.productRepo.FindByIDs(ctx, ids)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load cart products")
		}
	}

	view := &usecase.CartView{Items: make([]*usecase.PricedItem, 0, len(cart.Items))}
	total := decimal.Zero
	for _, item := range cart.Items {
		line := &usecase.PricedItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Size:      item.Size,
		}
		if product, ok := products[item.ProductID]; ok {
			line.Name = product.Name
			line.Image = product.PrimaryImage()
		} else {
			line.Image = constants.PlaceholderImage
		}

		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		view.Items = append(view.Items, line)
	}
	view.Total = total.Round(2)

	return view, nil
}
