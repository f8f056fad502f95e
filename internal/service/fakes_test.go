package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mshelar/shop-service/internal/domain"
	"github.com/mshelar/shop-service/internal/repository"
	"github.com/mshelar/shop-service/pkg/payment"
)

// In-memory repository fakes shared by the service tests.

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	if user.CartItems == nil {
		user.CartItems = []domain.CartItem{}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) UpdateCart(_ context.Context, userID string, items []domain.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.CartItems = append([]domain.CartItem(nil), items...)
	return nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*domain.Product
}

func newFakeProductRepo(products ...*domain.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*domain.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.ID == "" {
		product.ID = fmt.Sprintf("product-%d", len(r.products)+1)
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) GetByIDs(_ context.Context, ids []string) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) List(_ context.Context) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) ListByCategory(_ context.Context, category string) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Product
	for _, p := range r.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListFeatured(_ context.Context) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Product
	for _, p := range r.products {
		if p.IsFeatured {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Random(_ context.Context, n int) ([]*domain.Product, error) {
	all, _ := r.List(context.Background())
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

func (r *fakeProductRepo) SetFeatured(_ context.Context, id string, featured bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.IsFeatured = featured
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.products)), nil
}

// fakeCouponRepo holds at most one coupon per user, like the unique
// user_id constraint does in Postgres.
type fakeCouponRepo struct {
	mu      sync.Mutex
	coupons map[string]*domain.Coupon
	created chan *domain.Coupon
}

func newFakeCouponRepo() *fakeCouponRepo {
	return &fakeCouponRepo{
		coupons: make(map[string]*domain.Coupon),
		created: make(chan *domain.Coupon, 8),
	}
}

func (r *fakeCouponRepo) Create(_ context.Context, coupon *domain.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.coupons[coupon.UserID]; ok {
		return repository.ErrDuplicateCoupon
	}
	coupon.ID = fmt.Sprintf("coupon-for-%s", coupon.UserID)
	clone := *coupon
	r.coupons[coupon.UserID] = &clone
	select {
	case r.created <- &clone:
	default:
	}
	return nil
}

func (r *fakeCouponRepo) GetActiveByUser(_ context.Context, userID string) (*domain.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.coupons[userID]
	if !ok || !c.IsActive {
		return nil, repository.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *fakeCouponRepo) GetActiveByCodeAndUser(_ context.Context, code, userID string) (*domain.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.coupons[userID]
	if !ok || !c.IsActive || c.Code != code {
		return nil, repository.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *fakeCouponRepo) Deactivate(_ context.Context, userID, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.coupons[userID]; ok && c.Code == code {
		c.IsActive = false
	}
	return nil
}

func (r *fakeCouponRepo) DeleteByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.coupons, userID)
	return nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*domain.Order)}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.StripeSessionID]; ok {
		return repository.ErrDuplicateOrder
	}
	order.ID = fmt.Sprintf("order-%d", len(r.orders)+1)
	order.CreatedAt = time.Now()
	clone := *order
	r.orders[order.StripeSessionID] = &clone
	return nil
}

func (r *fakeOrderRepo) GetBySessionID(_ context.Context, sessionID string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[sessionID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *fakeOrderRepo) SalesSummary(_ context.Context) (int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, o := range r.orders {
		total += o.TotalAmountCents
	}
	return int64(len(r.orders)), total, nil
}

func (r *fakeOrderRepo) DailySales(_ context.Context, start, end time.Time) (map[string]repository.DailySalesRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]repository.DailySalesRow)
	for _, o := range r.orders {
		if o.CreatedAt.Before(start) || o.CreatedAt.After(end) {
			continue
		}
		day := o.CreatedAt.Format("2006-01-02")
		row := out[day]
		row.Orders++
		row.RevenueCents += o.TotalAmountCents
		out[day] = row
	}
	return out, nil
}

// memSessionStore is an in-memory SessionStore. With failing set, every
// call errors, standing in for an unreachable Redis.
type memSessionStore struct {
	mu      sync.Mutex
	tokens  map[string]string
	failing bool
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{tokens: make(map[string]string)}
}

func (s *memSessionStore) Get(_ context.Context, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return "", errors.New("store unavailable")
	}
	token, ok := s.tokens[userID]
	if !ok {
		return "", ErrSessionNotFound
	}
	return token, nil
}

func (s *memSessionStore) Set(_ context.Context, userID, token string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return errors.New("store unavailable")
	}
	s.tokens[userID] = token
	return nil
}

func (s *memSessionStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return errors.New("store unavailable")
	}
	delete(s.tokens, userID)
	return nil
}

// fakeProvider records created sessions and serves them back by id.
type fakeProvider struct {
	mu       sync.Mutex
	sessions map[string]*payment.Session
	nextID   int
	// paymentStatus is stamped on sessions returned by GetSession.
	paymentStatus string
}

func newFakeProvider(paymentStatus string) *fakeProvider {
	return &fakeProvider{
		sessions:      make(map[string]*payment.Session),
		paymentStatus: paymentStatus,
	}
}

func (p *fakeProvider) CreateSession(_ context.Context, lines []payment.Line, percentOff int64, metadata map[string]string) (*payment.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var total int64
	for _, l := range lines {
		total += l.UnitAmountCents * l.Quantity
	}
	if percentOff > 0 {
		total = total * (100 - percentOff) / 100
	}

	p.nextID++
	session := &payment.Session{
		ID:               fmt.Sprintf("cs_test_%d", p.nextID),
		PaymentStatus:    p.paymentStatus,
		AmountTotalCents: total,
		Metadata:         metadata,
	}
	p.sessions[session.ID] = session
	return session, nil
}

func (p *fakeProvider) GetSession(_ context.Context, id string) (*payment.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	session, ok := p.sessions[id]
	if !ok {
		return nil, errors.New("no such session")
	}
	return session, nil
}
