package impl

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Order: &config.OrderConfig{
			ReservationTTL:     30 * time.Minute,
			StockRetryAttempts: 3,
			SweepBatchSize:     50,
		},
		Shipping: &config.ShippingConfig{MaxShipmentAttempts: 3},
	}
}

// memStore is an in-memory database. Transactions are serialized and roll
// back to a snapshot on error, which is enough to exercise the atomicity rules.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	products    map[uuid.UUID]*entity.Product
	orders      map[uuid.UUID]*entity.Order
	offers      map[string]*entity.OfferCode
	redemptions []*entity.UserOfferCode
	carts       map[uuid.UUID]*entity.Cart
	users       map[string]*entity.User

	// stockConflicts simulates concurrent writers: each pending conflict fails one
	// UpdateStock call for the product and bumps its version.
	stockConflicts map[uuid.UUID]int
}

func newMemStore() *memStore {
	return &memStore{
		products:       map[uuid.UUID]*entity.Product{},
		orders:         map[uuid.UUID]*entity.Order{},
		offers:         map[string]*entity.OfferCode{},
		carts:          map[uuid.UUID]*entity.Cart{},
		users:          map[string]*entity.User{},
		stockConflicts: map[uuid.UUID]int{},
	}
}

type memSnapshot struct {
	products    map[uuid.UUID]*entity.Product
	orders      map[uuid.UUID]*entity.Order
	offers      map[string]*entity.OfferCode
	redemptions []*entity.UserOfferCode
	carts       map[uuid.UUID]*entity.Cart
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := memSnapshot{
		products:    make(map[uuid.UUID]*entity.Product, len(s.products)),
		orders:      make(map[uuid.UUID]*entity.Order, len(s.orders)),
		offers:      make(map[string]*entity.OfferCode, len(s.offers)),
		redemptions: append([]*entity.UserOfferCode(nil), s.redemptions...),
		carts:       make(map[uuid.UUID]*entity.Cart, len(s.carts)),
	}
	for id, p := range s.products {
		snap.products[id] = cloneProduct(p)
	}
	for id, o := range s.orders {
		snap.orders[id] = cloneOrder(o)
	}
	for code, o := range s.offers {
		snap.offers[code] = o
	}
	for id, c := range s.carts {
		snap.carts[id] = cloneCart(c)
	}

	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = snap.products
	s.orders = snap.orders
	s.offers = snap.offers
	s.redemptions = snap.redemptions
	s.carts = snap.carts
}

// Execute implements repository.TransactionManager.
func (s *memStore) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(s); err != nil {
		s.restore(snap)

		return err
	}

	return nil
}

func (s *memStore) NewProductRepository() repository.ProductRepository {
	return &memProductRepo{s: s}
}

func (s *memStore) NewOrderRepository() repository.OrderRepository { return &memOrderRepo{s: s} }

func (s *memStore) NewOfferCodeRepository() repository.OfferCodeRepository {
	return &memOfferRepo{s: s}
}

func (s *memStore) NewCartRepository() repository.CartRepository { return &memCartRepo{s: s} }

func (s *memStore) NewUserRepository() repository.UserRepository { return &memUserRepo{s: s} }

// --- seeding and inspection helpers ---

func (s *memStore) addProduct(p *entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = cloneProduct(p)
}

func (s *memStore) addOffer(o *entity.OfferCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offers[o.Code] = o
}

func (s *memStore) addRedemption(r *entity.UserOfferCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.redemptions = append(s.redemptions, r)
}

func (s *memStore) addOrder(o *entity.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = cloneOrder(o)
}

func (s *memStore) setCart(userID uuid.UUID, items ...*entity.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := &entity.Cart{ID: uuid.New(), UserID: userID}
	for _, item := range items {
		line := *item
		line.CartID = cart.ID
		if line.ID == uuid.Nil {
			line.ID = uuid.New()
		}
		cart.Items = append(cart.Items, &line)
	}
	s.carts[userID] = cart
}

func (s *memStore) stock(productID uuid.UUID, key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.products[productID].StockBySize[key]
}

func (s *memStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.orders)
}

func (s *memStore) redemptionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.redemptions)
}

func (s *memStore) order(id uuid.UUID) *entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o, ok := s.orders[id]; ok {
		return cloneOrder(o)
	}

	return nil
}

func (s *memStore) cart(userID uuid.UUID) *entity.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.carts[userID]; ok {
		return cloneCart(c)
	}

	return nil
}

func cloneProduct(p *entity.Product) *entity.Product {
	out := *p
	out.StockBySize = p.CloneStock()
	out.Sizes = append([]string(nil), p.Sizes...)
	out.Images = append([]string(nil), p.Images...)

	return &out
}

func cloneOrder(o *entity.Order) *entity.Order {
	out := *o
	out.Items = make([]*entity.OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		line := *item
		out.Items = append(out.Items, &line)
	}

	return &out
}

func cloneCart(c *entity.Cart) *entity.Cart {
	out := *c
	out.Items = make([]*entity.CartItem, 0, len(c.Items))
	for _, item := range c.Items {
		line := *item
		out.Items = append(out.Items, &line)
	}

	return &out
}

// --- products ---

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}

	return cloneProduct(p), nil
}

func (r *memProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make(map[uuid.UUID]*entity.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			out[id] = cloneProduct(p)
		}
	}

	return out, nil
}

func (r *memProductRepo) UpdateStock(_ context.Context, id uuid.UUID, expectedVersion int, stock map[string]int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}

	if r.s.stockConflicts[id] > 0 {
		r.s.stockConflicts[id]--
		p.Version++

		return repository.ErrVersionConflict
	}

	if p.Version != expectedVersion {
		return repository.ErrVersionConflict
	}

	p.StockBySize = make(map[string]int, len(stock))
	for k, v := range stock {
		p.StockBySize[k] = v
	}
	p.Version++

	return nil
}

// --- orders ---

type memOrderRepo struct{ s *memStore }

func (r *memOrderRepo) Create(_ context.Context, order *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.orders[order.ID] = cloneOrder(order)

	return nil
}

func (r *memOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}

	return cloneOrder(o), nil
}

func (r *memOrderRepo) FindByPaymentID(_ context.Context, paymentID string) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, o := range r.s.orders {
		if o.PaymentID == paymentID {
			return cloneOrder(o), nil
		}
	}

	return nil, repository.ErrOrderNotFound
}

func applyPatch(o *entity.Order, patch repository.OrderPatch) {
	if patch.PaymentRef != nil {
		o.PaymentRef = *patch.PaymentRef
	}
	if patch.ShiprocketOrderID != nil {
		o.ShiprocketOrderID = *patch.ShiprocketOrderID
	}
	if patch.TrackingURL != nil {
		o.TrackingURL = *patch.TrackingURL
	}
	if patch.IncrementAttempts {
		o.ShippingAttempts++
	}
}

func (r *memOrderRepo) TransitionStatus(_ context.Context, id uuid.UUID, from, to entity.OrderStatus, patch repository.OrderPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[id]
	if !ok || o.Status != from {
		return repository.ErrStatusConflict
	}
	o.Status = to
	applyPatch(o, patch)

	return nil
}

func (r *memOrderRepo) UpdateShipment(_ context.Context, id uuid.UUID, patch repository.OrderPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[id]
	if !ok {
		return repository.ErrOrderNotFound
	}
	applyPatch(o, patch)

	return nil
}

func (r *memOrderRepo) CountActiveByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var count int64
	for _, o := range r.s.orders {
		if o.UserID == userID && o.Status != entity.OrderStatusCancelled {
			count++
		}
	}

	return count, nil
}

func (r *memOrderRepo) FindExpiredPending(_ context.Context, now time.Time, limit int) ([]*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*entity.Order
	for _, o := range r.s.orders {
		if o.Status == entity.OrderStatusPending && o.ReservationExpiresAt.Before(now) {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReservationExpiresAt.Before(out[j].ReservationExpiresAt) })
	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *memOrderRepo) List(_ context.Context, filter repository.OrderListFilter) ([]*entity.Order, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var all []*entity.Order
	for _, o := range r.s.orders {
		if filter.Status == nil || o.Status == *filter.Status {
			all = append(all, cloneOrder(o))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := int64(len(all))
	if filter.Offset >= len(all) {
		return []*entity.Order{}, total, nil
	}
	end := min(filter.Offset+filter.Limit, len(all))

	return all[filter.Offset:end], total, nil
}

// --- offers ---

type memOfferRepo struct{ s *memStore }

func (r *memOfferRepo) FindByCode(_ context.Context, code string) (*entity.OfferCode, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.offers[code]
	if !ok {
		return nil, repository.ErrOfferCodeNotFound
	}
	out := *o

	return &out, nil
}

func (r *memOfferRepo) HasRedeemed(_ context.Context, userID, offerCodeID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, red := range r.s.redemptions {
		if red.UserID == userID && red.OfferCodeID == offerCodeID {
			return true, nil
		}
	}

	return false, nil
}

func (r *memOfferRepo) CreateRedemption(_ context.Context, redemption *entity.UserOfferCode) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, red := range r.s.redemptions {
		if red.UserID == redemption.UserID && red.OfferCodeID == redemption.OfferCodeID {
			return repository.ErrAlreadyRedeemed
		}
	}
	r.s.redemptions = append(r.s.redemptions, redemption)

	return nil
}

func (r *memOfferRepo) DeleteRedemptionByOrder(_ context.Context, orderID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	kept := r.s.redemptions[:0:0]
	for _, red := range r.s.redemptions {
		if red.OrderID != orderID {
			kept = append(kept, red)
		}
	}
	r.s.redemptions = kept

	return nil
}

// --- carts ---

type memCartRepo struct{ s *memStore }

func (r *memCartRepo) FindByUser(_ context.Context, userID uuid.UUID) (*entity.Cart, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.carts[userID]
	if !ok {
		return nil, repository.ErrCartNotFound
	}

	return cloneCart(c), nil
}

func (r *memCartRepo) GetOrCreate(_ context.Context, userID uuid.UUID) (*entity.Cart, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.carts[userID]
	if !ok {
		c = &entity.Cart{ID: uuid.New(), UserID: userID}
		r.s.carts[userID] = c
	}

	return cloneCart(c), nil
}

func (r *memCartRepo) cartByID(cartID uuid.UUID) *entity.Cart {
	for _, c := range r.s.carts {
		if c.ID == cartID {
			return c
		}
	}

	return nil
}

func (r *memCartRepo) UpsertItem(_ context.Context, item *entity.CartItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c := r.cartByID(item.CartID)
	if c == nil {
		return repository.ErrCartNotFound
	}
	if existing := c.FindItem(item.ProductID, item.Size); existing != nil {
		existing.Quantity = item.Quantity
		existing.Price = item.Price

		return nil
	}
	line := *item
	c.Items = append(c.Items, &line)

	return nil
}

func (r *memCartRepo) UpdateItemQuantity(_ context.Context, cartID, productID uuid.UUID, size string, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c := r.cartByID(cartID)
	if c == nil {
		return repository.ErrCartNotFound
	}
	existing := c.FindItem(productID, size)
	if existing == nil {
		return repository.ErrCartItemNotFound
	}
	existing.Quantity = quantity

	return nil
}

func (r *memCartRepo) RemoveItem(_ context.Context, cartID, productID uuid.UUID, size string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c := r.cartByID(cartID)
	if c == nil {
		return repository.ErrCartNotFound
	}
	kept := c.Items[:0:0]
	for _, item := range c.Items {
		if item.ProductID != productID || item.Size != size {
			kept = append(kept, item)
		}
	}
	c.Items = kept

	return nil
}

func (r *memCartRepo) ReplaceItems(_ context.Context, cartID uuid.UUID, items []*entity.CartItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c := r.cartByID(cartID)
	if c == nil {
		return repository.ErrCartNotFound
	}
	c.Items = nil
	for _, item := range items {
		line := *item
		c.Items = append(c.Items, &line)
	}

	return nil
}

func (r *memCartRepo) ClearByUser(_ context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if c, ok := r.s.carts[userID]; ok {
		c.Items = nil
	}

	return nil
}

// --- users ---

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.ID == id {
			return u, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if u, ok := r.s.users[email]; ok {
		return u, nil
	}

	return nil, repository.ErrUserNotFound
}
