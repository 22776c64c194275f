package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/barecheradouane2/ShoppingStorev1/app/models"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/apperr"
)

type orderEnv struct {
	orders    *fakeOrderStore
	products  *fakeProductStore
	shippings *fakeShippingStore
	svc       *OrderService
	product   *models.Product
	tier      *models.Shipping
}

func newOrderEnv(t *testing.T) *orderEnv {
	t.Helper()

	product := &models.Product{
		ID:       primitive.NewObjectID(),
		Name:     "Shirt",
		Price:    500,
		Quantity: 10,
		ColorVariants: []models.ColorVariant{
			{Name: "Red", Qty: 10, Sizes: []models.Size{
				{Name: "S", Qty: 5}, {Name: "M", Qty: 5},
			}},
		},
	}
	tier := &models.Shipping{
		ID: primitive.NewObjectID(), WilayaTo: "Alger", PlaceName: "Centre",
		HomePrice: 500, DeskPrice: 300, IsAvailable: true,
	}

	orders := newFakeOrderStore()
	products := newFakeProductStore(product)
	shippings := newFakeShippingStore(tier)
	inv := NewInventoryService(products)

	return &orderEnv{
		orders:    orders,
		products:  products,
		shippings: shippings,
		svc:       NewOrderService(orders, shippings, products, inv),
		product:   product,
		tier:      tier,
	}
}

func (e *orderEnv) input(status string, items ...OrderItemInput) OrderInput {
	return OrderInput{
		CustomerName:   "Amine B",
		PhoneNumber:    "0550123456",
		OrderStatus:    status,
		ShippingStatus: "desk",
		Shipping:       e.tier.ID.Hex(),
		OrderItems:     items,
	}
}

func TestCreateComputesTotalFromItemsAndTier(t *testing.T) {
	env := newOrderEnv(t)

	order, err := env.svc.Create(context.Background(), env.input("pending",
		OrderItemInput{Product: env.product.ID.Hex(), Quantity: 2, Price: 500},
		OrderItemInput{Product: env.product.ID.Hex(), Quantity: 1, Price: 500},
	))
	require.NoError(t, err)

	// 1000 + 500 line totals plus the 300 desk rate.
	assert.Equal(t, 1800.0, order.TotalPrice)
	assert.Equal(t, models.StatusPending, order.OrderStatus)
	// Pending orders never move stock.
	assert.Equal(t, 10, env.products.quantity(env.product.ID))
}

func TestRecomputeTotalEmptyOrderIsZero(t *testing.T) {
	tier := &models.Shipping{HomePrice: 500, DeskPrice: 300}
	o := &models.Order{ShippingStatus: models.ShipDesk}
	assert.Equal(t, 0.0, recomputeTotal(o, tier))
}

func TestRecomputeTotalNilRateAddsNoFee(t *testing.T) {
	o := &models.Order{
		ShippingStatus: models.ShipHome,
		OrderItems:     []models.OrderItem{{TotalItemPrice: 700}},
	}
	assert.Equal(t, 700.0, recomputeTotal(o, nil))
}

func TestCreateConfirmedDecrementsStock(t *testing.T) {
	env := newOrderEnv(t)

	_, err := env.svc.Create(context.Background(), env.input("confirmed",
		OrderItemInput{Product: env.product.ID.Hex(), Quantity: 2, Color: "Red", Size: "S"},
	))
	require.NoError(t, err)

	saved, _ := env.products.Get(context.Background(), env.product.ID)
	assert.Equal(t, 8, saved.Quantity)
	assert.Equal(t, 3, saved.ColorVariants[0].Sizes[0].Qty)
}

func TestCreateSnapshotsPriceFromProduct(t *testing.T) {
	env := newOrderEnv(t)

	order, err := env.svc.Create(context.Background(), env.input("pending",
		OrderItemInput{Product: env.product.ID.Hex(), Quantity: 2},
	))
	require.NoError(t, err)

	assert.Equal(t, 500.0, order.OrderItems[0].Price)
	assert.Equal(t, 1000.0, order.OrderItems[0].TotalItemPrice)
}

func TestCreateRejectsTotalMismatch(t *testing.T) {
	env := newOrderEnv(t)

	_, err := env.svc.Create(context.Background(), env.input("pending",
		OrderItemInput{Product: env.product.ID.Hex(), Quantity: 2, Price: 500, TotalItemPrice: 900},
	))

	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestCreateRejectsMissingFields(t *testing.T) {
	env := newOrderEnv(t)

	in := env.input("pending", OrderItemInput{Product: env.product.ID.Hex(), Quantity: 1})
	in.CustomerName = ""
	_, err := env.svc.Create(context.Background(), in)

	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "customerName")
}

func TestCreateRejectsEmptyItemList(t *testing.T) {
	env := newOrderEnv(t)

	_, err := env.svc.Create(context.Background(), env.input("pending"))

	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "orderItems")
}

func TestCreateRejectsUnknownStatus(t *testing.T) {
	env := newOrderEnv(t)

	_, err := env.svc.Create(context.Background(), env.input("refunded",
		OrderItemInput{Product: env.product.ID.Hex(), Quantity: 1},
	))

	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestCreateUnknownShippingAborts(t *testing.T) {
	env := newOrderEnv(t)

	in := env.input("pending", OrderItemInput{Product: env.product.ID.Hex(), Quantity: 1})
	in.Shipping = primitive.NewObjectID().Hex()
	_, err := env.svc.Create(context.Background(), in)

	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateEnteringConfirmedDecrements(t *testing.T) {
	env := newOrderEnv(t)

	order, err := env.svc.Create(context.Background(), env.input("pending",
		OrderItemInput{Product: env.product.ID.Hex(), Quantity: 3, Color: "Red", Size: "M"},
	))
	require.NoError(t, err)
	assert.Equal(t, 10, env.products.quantity(env.product.ID))

	_, err = env.svc.Update(context.Background(), order.ID, env.input("confirmed",
		OrderItemInput{Product: env.product.ID.Hex(), Quantity: 3, Color: "Red", Size: "M"},
	))
	require.NoError(t, err)
	assert.Equal(t, 7, env.products.quantity(env.product.ID))
}

func TestUpdateLeavingConfirmedRestocksOldItems(t *testing.T) {
	env := newOrderEnv(t)

	order, err := env.svc.Create(context.Background(), env.input("confirmed",
		OrderItemInput{Product: env.product.ID.Hex(), Quantity: 4, Color: "Red", Size: "S"},
	))
	require.NoError(t, err)
	assert.Equal(t, 6, env.products.quantity(env.product.ID))

	_, err = env.svc.Update(context.Background(), order.ID, env.input("canceled",
		OrderItemInput{Product: env.product.ID.Hex(), Quantity: 4, Color: "Red", Size: "S"},
	))
	require.NoError(t, err)
	assert.Equal(t, 10, env.products.quantity(env.product.ID))
}

func TestUpdateConfirmedItemSwapNetsCorrectly(t *testing.T) {
	env := newOrderEnv(t)

	order, err := env.svc.Create(context.Background(), env.input("confirmed",
		OrderItemInput{Product: env.product.ID.Hex(), Quantity: 2, Color: "Red", Size: "S"},
	))
	require.NoError(t, err)
	assert.Equal(t, 8, env.products.quantity(env.product.ID))

	// 2 → 5 on the same variant must net to a single decrease of 3.
	_, err = env.svc.Update(context.Background(), order.ID, env.input("confirmed",
		OrderItemInput{Product: env.product.ID.Hex(), Quantity: 5, Color: "Red", Size: "S"},
	))
	require.NoError(t, err)

	saved, _ := env.products.Get(context.Background(), env.product.ID)
	assert.Equal(t, 5, saved.Quantity)
	assert.Equal(t, 0, saved.ColorVariants[0].Sizes[0].Qty)
}

func TestUpdateConfirmedUnchangedItemsMovesNoStock(t *testing.T) {
	env := newOrderEnv(t)

	item := OrderItemInput{Product: env.product.ID.Hex(), Quantity: 2, Color: "Red", Size: "S", Price: 500}
	order, err := env.svc.Create(context.Background(), env.input("confirmed", item))
	require.NoError(t, err)
	assert.Equal(t, 8, env.products.quantity(env.product.ID))

	_, err = env.svc.Update(context.Background(), order.ID, env.input("confirmed", item))
	require.NoError(t, err)
	assert.Equal(t, 8, env.products.quantity(env.product.ID))
}

func TestUpdateBothNonConfirmedMovesNoStock(t *testing.T) {
	env := newOrderEnv(t)

	order, err := env.svc.Create(context.Background(), env.input("pending",
		OrderItemInput{Product: env.product.ID.Hex(), Quantity: 2},
	))
	require.NoError(t, err)

	_, err = env.svc.Update(context.Background(), order.ID, env.input("attempt",
		OrderItemInput{Product: env.product.ID.Hex(), Quantity: 7},
	))
	require.NoError(t, err)
	assert.Equal(t, 10, env.products.quantity(env.product.ID))
}

func TestUpdateRecomputesTotal(t *testing.T) {
	env := newOrderEnv(t)

	order, err := env.svc.Create(context.Background(), env.input("pending",
		OrderItemInput{Product: env.product.ID.Hex(), Quantity: 1, Price: 500},
	))
	require.NoError(t, err)
	assert.Equal(t, 800.0, order.TotalPrice)

	updated, err := env.svc.Update(context.Background(), order.ID, env.input("pending",
		OrderItemInput{Product: env.product.ID.Hex(), Quantity: 4, Price: 500},
	))
	require.NoError(t, err)
	assert.Equal(t, 2300.0, updated.TotalPrice)
}

func TestDeleteConfirmedRestoresStock(t *testing.T) {
	env := newOrderEnv(t)

	order, err := env.svc.Create(context.Background(), env.input("confirmed",
		OrderItemInput{Product: env.product.ID.Hex(), Quantity: 3, Color: "Red", Size: "M"},
	))
	require.NoError(t, err)
	assert.Equal(t, 7, env.products.quantity(env.product.ID))

	deleted, err := env.svc.Delete(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, deleted.ID)
	assert.Equal(t, 10, env.products.quantity(env.product.ID))

	_, err = env.orders.Get(context.Background(), order.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteNonConfirmedMovesNoStock(t *testing.T) {
	env := newOrderEnv(t)

	order, err := env.svc.Create(context.Background(), env.input("attempt",
		OrderItemInput{Product: env.product.ID.Hex(), Quantity: 3},
	))
	require.NoError(t, err)

	_, err = env.svc.Delete(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, env.products.quantity(env.product.ID))
}

func TestDeleteUnknownOrder(t *testing.T) {
	env := newOrderEnv(t)

	_, err := env.svc.Delete(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreateConfirmedWithPartialFailureStillPersists(t *testing.T) {
	env := newOrderEnv(t)
	other := &models.Product{ID: primitive.NewObjectID(), Name: "Cap", Price: 200, Quantity: 5}
	env.products.mu.Lock()
	env.products.items[other.ID] = cloneProduct(*other)
	env.products.saveErr[other.ID] = assert.AnError
	env.products.mu.Unlock()

	order, err := env.svc.Create(context.Background(), env.input("confirmed",
		OrderItemInput{Product: env.product.ID.Hex(), Quantity: 1, Color: "Red", Size: "S"},
		OrderItemInput{Product: other.ID.Hex(), Quantity: 2},
	))

	var partial *apperr.PartialStockError
	require.ErrorAs(t, err, &partial)
	require.NotNil(t, order)

	// The order was still created and the healthy item applied.
	_, gerr := env.orders.Get(context.Background(), order.ID)
	assert.NoError(t, gerr)
	assert.Equal(t, 9, env.products.quantity(env.product.ID))
}
