package main

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/storefront/internal/cart"
	"github.com/MikeMC777/storefront/internal/database"
	"github.com/MikeMC777/storefront/internal/events"
	"github.com/MikeMC777/storefront/internal/order"
	"github.com/MikeMC777/storefront/internal/product"
	"github.com/MikeMC777/storefront/internal/report"
	"github.com/MikeMC777/storefront/internal/user"
)

//
// ---------- in-memory stores ----------
//

type memUsers struct {
	mu    sync.Mutex
	users map[string]*user.User
}

func newMemUsers() *memUsers { return &memUsers{users: map[string]*user.User{}} }

func (m *memUsers) Create(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.users {
		if x.Username == u.Username || x.Email == u.Email {
			return user.ErrAlreadyExist
		}
	}
	u.CreatedAt = time.Now().UTC()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrNotFound
}

func (m *memUsers) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// stubProducts implements product.Repository.
type stubProducts struct {
	mu    sync.Mutex
	items map[string]*product.Product
	order []string
}

func newStubProducts() *stubProducts {
	return &stubProducts{items: map[string]*product.Product{}}
}

func (s *stubProducts) Create(_ context.Context, p *product.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	s.items[p.ID] = &cp
	s.order = append(s.order, p.ID)
	return nil
}

func (s *stubProducts) GetByID(_ context.Context, id string) (*product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubProducts) List(_ context.Context) ([]product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []product.Product{}
	for _, id := range s.order {
		if p, ok := s.items[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubProducts) Update(_ context.Context, id string, patch product.UpdateProductRequest) (*product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	applyPatch(p, patch)
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	return &cp, nil
}

func (s *stubProducts) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

func applyPatch(p *product.Product, r product.UpdateProductRequest) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.Category != nil {
		p.Category = *r.Category
	}
	if r.Stock != nil {
		p.Stock = *r.Stock
	}
	if r.IsAvailable != nil {
		p.IsAvailable = *r.IsAvailable
	}
	if r.Image != nil {
		p.Image = *r.Image
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
}

// stubCart implements cart.Repository with the same merge-on-add rule as
// the SQL upsert.
type stubCart struct {
	mu    sync.Mutex
	items []*cart.Item
}

func (s *stubCart) List(_ context.Context, userID string) ([]cart.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []cart.Item{}
	for _, it := range s.items {
		if it.UserID == userID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (s *stubCart) Add(_ context.Context, it *cart.Item) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cur := range s.items {
		if cur.UserID == it.UserID && cur.ProductID == it.ProductID {
			if cur.Quantity+it.Quantity > database.MaxCount {
				return false, cart.ErrQuantityTooLarge
			}
			cur.Quantity += it.Quantity
			*it = *cur
			return false, nil
		}
	}
	it.CreatedAt = time.Now().UTC()
	cp := *it
	s.items = append(s.items, &cp)
	return true, nil
}

func (s *stubCart) UpdateQuantity(_ context.Context, userID, itemID string, quantity int) (*cart.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cur := range s.items {
		if cur.ID == itemID && cur.UserID == userID {
			cur.Quantity = quantity
			cp := *cur
			return &cp, nil
		}
	}
	return nil, cart.ErrNotFound
}

func (s *stubCart) Remove(_ context.Context, userID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	for _, it := range s.items {
		if !(it.ID == itemID && it.UserID == userID) {
			kept = append(kept, it)
		}
	}
	s.items = kept
	return nil
}

func (s *stubCart) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	for _, it := range s.items {
		if it.UserID != userID {
			kept = append(kept, it)
		}
	}
	s.items = kept
	return nil
}

// stubOrders implements order.Repository; Checkout clears the linked cart.
type stubOrders struct {
	mu     sync.Mutex
	carts  *stubCart
	orders []order.Order
	clock  time.Time
	fail   error
}

func newStubOrders(carts *stubCart) *stubOrders {
	return &stubOrders{carts: carts, clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (s *stubOrders) Checkout(ctx context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	s.clock = s.clock.Add(time.Minute)
	o.OrderDate = s.clock
	s.orders = append(s.orders, *o)
	return s.carts.Clear(ctx, o.UserID)
}

func (s *stubOrders) GetByID(_ context.Context, id string) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == id {
			cp := o
			return &cp, nil
		}
	}
	return nil, order.ErrNotFound
}

func (s *stubOrders) sorted(keep func(order.Order) bool) []order.Order {
	out := []order.Order{}
	for _, o := range s.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	return out
}

func (s *stubOrders) ListByUser(_ context.Context, userID string) ([]order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorted(func(o order.Order) bool { return o.UserID == userID }), nil
}

func (s *stubOrders) ListAll(_ context.Context) ([]order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorted(func(order.Order) bool { return true }), nil
}

func (s *stubOrders) UpdateStatus(_ context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = status
			return nil
		}
	}
	return order.ErrNotFound
}

// stubStats derives the dashboard numbers from the other stubs.
type stubStats struct {
	products *stubProducts
	orders   *stubOrders
	users    *memUsers
}

func (s *stubStats) Stats(ctx context.Context) (report.Stats, error) {
	ps, _ := s.products.List(ctx)
	all, _ := s.orders.ListAll(ctx)
	st := report.Stats{TotalProducts: int64(len(ps)), TotalOrders: int64(len(all)), TotalRevenue: decimal.Zero}
	for _, o := range all {
		st.TotalRevenue = st.TotalRevenue.Add(o.TotalAmount)
	}
	s.users.mu.Lock()
	for _, u := range s.users.users {
		if u.Role == "user" {
			st.TotalUsers++
		}
	}
	s.users.mu.Unlock()
	return st, nil
}

// recordingPublisher keeps every event; fail makes it return an error.
type recordingPublisher struct {
	mu   sync.Mutex
	got  []events.OrderCreated
	fail bool
}

func (p *recordingPublisher) PublishOrderCreated(_ context.Context, e events.OrderCreated) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.got = append(p.got, e)
	return nil
}

func (p *recordingPublisher) Close() {}
