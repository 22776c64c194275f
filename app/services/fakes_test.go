package services

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/barecheradouane2/ShoppingStorev1/app/models"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/apperr"
)

// In-memory store fakes. Get returns copies so mutations only become
// visible through Save, matching document-store semantics.

type fakeProductStore struct {
	mu       sync.Mutex
	items    map[primitive.ObjectID]models.Product
	saveErr  map[primitive.ObjectID]error
	saveHits int
}

func newFakeProductStore(products ...*models.Product) *fakeProductStore {
	s := &fakeProductStore{
		items:   make(map[primitive.ObjectID]models.Product),
		saveErr: make(map[primitive.ObjectID]error),
	}
	for _, p := range products {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		s.items[p.ID] = cloneProduct(*p)
	}
	return s
}

func cloneProduct(p models.Product) models.Product {
	out := p
	out.Sizes = append([]models.Size(nil), p.Sizes...)
	out.ColorVariants = make([]models.ColorVariant, len(p.ColorVariants))
	for i, v := range p.ColorVariants {
		out.ColorVariants[i] = v
		out.ColorVariants[i].Sizes = append([]models.Size(nil), v.Sizes...)
	}
	return out
}

func (s *fakeProductStore) Get(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	out := cloneProduct(p)
	return &out, nil
}

func (s *fakeProductStore) Save(_ context.Context, p *models.Product) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveHits++
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if err, ok := s.saveErr[p.ID]; ok {
		return nil, err
	}
	s.items[p.ID] = cloneProduct(*p)
	out := cloneProduct(*p)
	return &out, nil
}

func (s *fakeProductStore) Delete(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	delete(s.items, id)
	out := cloneProduct(p)
	return &out, nil
}

func (s *fakeProductStore) List(_ context.Context, _, _ int64, _ primitive.ObjectID, _ string, featured *bool) ([]models.Product, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Product
	for _, p := range s.items {
		if featured != nil && p.IsFeatured != *featured {
			continue
		}
		out = append(out, cloneProduct(p))
	}
	return out, int64(len(out)), nil
}

func (s *fakeProductStore) Stats(_ context.Context) (bson.M, error) {
	return bson.M{"totalstock": len(s.items)}, nil
}

func (s *fakeProductStore) quantity(id primitive.ObjectID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[id].Quantity
}

type fakeOrderStore struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]models.Order
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{items: make(map[primitive.ObjectID]models.Order)}
}

func cloneOrder(o models.Order) models.Order {
	out := o
	out.OrderItems = append([]models.OrderItem(nil), o.OrderItems...)
	return out
}

func (s *fakeOrderStore) Get(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.items[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	out := cloneOrder(o)
	return &out, nil
}

func (s *fakeOrderStore) Save(_ context.Context, o *models.Order) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	s.items[o.ID] = cloneOrder(*o)
	out := cloneOrder(*o)
	return &out, nil
}

func (s *fakeOrderStore) Delete(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.items[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	delete(s.items, id)
	out := cloneOrder(o)
	return &out, nil
}

func (s *fakeOrderStore) List(_ context.Context, _, _ int64, _ models.OrderStatus, _ string) ([]models.Order, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for _, o := range s.items {
		out = append(out, cloneOrder(o))
	}
	return out, int64(len(out)), nil
}

func (s *fakeOrderStore) CountByStatus(_ context.Context) (map[string]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int64)
	for _, o := range s.items {
		out[string(o.OrderStatus)]++
	}
	return out, nil
}

type fakeShippingStore struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]models.Shipping
}

func newFakeShippingStore(tiers ...*models.Shipping) *fakeShippingStore {
	s := &fakeShippingStore{items: make(map[primitive.ObjectID]models.Shipping)}
	for _, t := range tiers {
		if t.ID.IsZero() {
			t.ID = primitive.NewObjectID()
		}
		s.items[t.ID] = *t
	}
	return s
}

func (s *fakeShippingStore) Get(_ context.Context, id primitive.ObjectID) (*models.Shipping, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.items[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	out := t
	return &out, nil
}

func (s *fakeShippingStore) Save(_ context.Context, t *models.Shipping) (*models.Shipping, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	s.items[t.ID] = *t
	out := *t
	return &out, nil
}

func (s *fakeShippingStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *fakeShippingStore) List(_ context.Context) ([]models.Shipping, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Shipping
	for _, t := range s.items {
		out = append(out, t)
	}
	return out, nil
}

type fakeExpenseStore struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]models.Expense
}

func newFakeExpenseStore() *fakeExpenseStore {
	return &fakeExpenseStore{items: make(map[primitive.ObjectID]models.Expense)}
}

func (s *fakeExpenseStore) Get(_ context.Context, id primitive.ObjectID) (*models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	out := e
	return &out, nil
}

func (s *fakeExpenseStore) FindByTitle(_ context.Context, title string) (*models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.items {
		if e.Title == title {
			out := e
			return &out, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (s *fakeExpenseStore) Save(_ context.Context, e *models.Expense) (*models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	s.items[e.ID] = *e
	out := *e
	return &out, nil
}

func (s *fakeExpenseStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *fakeExpenseStore) List(_ context.Context, _, _ int64) ([]models.Expense, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Expense
	for _, e := range s.items {
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (s *fakeExpenseStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

type fakeUserStore struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{items: make(map[primitive.ObjectID]models.User)}
}

func (s *fakeUserStore) Get(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.items[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	out := u
	return &out, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.items {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (s *fakeUserStore) Save(_ context.Context, u *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.items[u.ID] = *u
	out := *u
	return &out, nil
}
