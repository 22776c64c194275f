package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/barecheradouane2/ShoppingStorev1/app/models"
	"github.com/barecheradouane2/ShoppingStorev1/app/services"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/apperr"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/router"
)

// memStore is a minimal in-memory backend for all three order-path stores.
type memStore struct {
	mu        sync.Mutex
	products  map[primitive.ObjectID]models.Product
	orders    map[primitive.ObjectID]models.Order
	shippings map[primitive.ObjectID]models.Shipping
}

func newMemStore() *memStore {
	return &memStore{
		products:  make(map[primitive.ObjectID]models.Product),
		orders:    make(map[primitive.ObjectID]models.Order),
		shippings: make(map[primitive.ObjectID]models.Shipping),
	}
}

func (m *memStore) Get(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	out := p
	return &out, nil
}

func (m *memStore) Save(_ context.Context, p *models.Product) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	m.products[p.ID] = *p
	return p, nil
}

func (m *memStore) Delete(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	return nil, apperr.ErrNotFound
}

func (m *memStore) List(_ context.Context, _, _ int64, _ primitive.ObjectID, _ string, _ *bool) ([]models.Product, int64, error) {
	return nil, 0, nil
}

func (m *memStore) Stats(_ context.Context) (bson.M, error) { return bson.M{}, nil }

type memOrders struct{ m *memStore }

func (s memOrders) Get(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	o, ok := s.m.orders[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	out := o
	return &out, nil
}

func (s memOrders) Save(_ context.Context, o *models.Order) (*models.Order, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	s.m.orders[o.ID] = *o
	return o, nil
}

func (s memOrders) Delete(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	o, ok := s.m.orders[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	delete(s.m.orders, id)
	return &o, nil
}

func (s memOrders) List(_ context.Context, _, _ int64, _ models.OrderStatus, _ string) ([]models.Order, int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []models.Order
	for _, o := range s.m.orders {
		out = append(out, o)
	}
	return out, int64(len(out)), nil
}

func (s memOrders) CountByStatus(_ context.Context) (map[string]int64, error) {
	return map[string]int64{}, nil
}

type memShippings struct{ m *memStore }

func (s memShippings) Get(_ context.Context, id primitive.ObjectID) (*models.Shipping, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	t, ok := s.m.shippings[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	out := t
	return &out, nil
}

func (s memShippings) Save(_ context.Context, t *models.Shipping) (*models.Shipping, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	s.m.shippings[t.ID] = *t
	return t, nil
}

func (s memShippings) Delete(_ context.Context, id primitive.ObjectID) error { return nil }

func (s memShippings) List(_ context.Context) ([]models.Shipping, error) { return nil, nil }

func newTestServer(t *testing.T) (*httptest.Server, *memStore, *models.Product, *models.Shipping) {
	t.Helper()

	store := newMemStore()
	product := models.Product{ID: primitive.NewObjectID(), Name: "Shirt", Price: 500, Quantity: 10}
	store.products[product.ID] = product
	tier := models.Shipping{ID: primitive.NewObjectID(), WilayaTo: "Alger", PlaceName: "Centre", DeskPrice: 300, HomePrice: 500}
	store.shippings[tier.ID] = tier

	inv := services.NewInventoryService(store)
	svc := services.NewOrderService(memOrders{store}, memShippings{store}, store, inv)
	ctl := NewOrderController(svc)

	r := router.New()
	r.Get("/orders", "orders.list", ctl.List)
	r.Post("/orders", "orders.create", ctl.Create)
	r.Get("/orders/{id}", "orders.get", ctl.Get)
	r.Put("/orders/{id}", "orders.update", ctl.Update)
	r.Delete("/orders/{id}", "orders.delete", ctl.Delete)

	srv := httptest.NewServer(r.Handler())
	t.Cleanup(srv.Close)
	return srv, store, &product, &tier
}

func orderPayload(product *models.Product, tier *models.Shipping, status string, qty int) []byte {
	body := map[string]any{
		"customerName":   "Amine B",
		"phoneNumber":    "0550123456",
		"orderStatus":    status,
		"shippingStatus": "desk",
		"shipping":       tier.ID.Hex(),
		"orderItems": []map[string]any{
			{"product": product.ID.Hex(), "quantity": qty, "price": 500},
		},
	}
	b, _ := json.Marshal(body)
	return b
}

func TestOrderCreateEndpoint(t *testing.T) {
	srv, _, product, tier := newTestServer(t)

	resp, err := http.Post(srv.URL+"/orders", "application/json",
		bytes.NewReader(orderPayload(product, tier, "pending", 2)))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var out struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 1300.0, out.Data.TotalPrice)
}

func TestOrderCreateValidationReturns422(t *testing.T) {
	srv, _, _, tier := newTestServer(t)

	body := []byte(fmt.Sprintf(`{"customerName":"","phoneNumber":"0550123456","shippingStatus":"desk","shipping":%q}`, tier.ID.Hex()))
	resp, err := http.Post(srv.URL+"/orders", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestOrderCreateBadJSONReturns400(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/orders", "application/json", bytes.NewReader([]byte("{nope")))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOrderGetUnknownReturns404(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/orders/" + primitive.NewObjectID().Hex())
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOrderDeleteConfirmedRestoresStockOverHTTP(t *testing.T) {
	srv, store, product, tier := newTestServer(t)

	resp, err := http.Post(srv.URL+"/orders", "application/json",
		bytes.NewReader(orderPayload(product, tier, "confirmed", 3)))
	require.NoError(t, err)
	var out struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()

	store.mu.Lock()
	afterCreate := store.products[product.ID].Quantity
	store.mu.Unlock()
	assert.Equal(t, 7, afterCreate)

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/orders/"+out.Data.ID.Hex(), nil)
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)

	store.mu.Lock()
	afterDelete := store.products[product.ID].Quantity
	store.mu.Unlock()
	assert.Equal(t, 10, afterDelete)
}
