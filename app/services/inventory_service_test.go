package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/barecheradouane2/ShoppingStorev1/app/models"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/apperr"
)

func variantProduct() *models.Product {
	return &models.Product{
		ID:       primitive.NewObjectID(),
		Name:     "Shirt",
		Quantity: 10,
		ColorVariants: []models.ColorVariant{
			{Name: "Red", Qty: 10, Sizes: []models.Size{
				{Name: "S", Qty: 5},
				{Name: "M", Qty: 5},
			}},
		},
	}
}

func TestAdjustStockDecrementsWholeVariantPath(t *testing.T) {
	product := variantProduct()
	store := newFakeProductStore(product)
	inv := NewInventoryService(store)

	err := inv.AdjustStock(context.Background(), []models.OrderItem{
		{Product: product.ID, Quantity: 2, Color: "Red", Size: "S"},
	}, Decrease)
	require.NoError(t, err)

	saved, err := store.Get(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, saved.Quantity)
	assert.Equal(t, 8, saved.ColorVariants[0].Qty)
	assert.Equal(t, 3, saved.ColorVariants[0].Sizes[0].Qty)
	assert.Equal(t, 5, saved.ColorVariants[0].Sizes[1].Qty)
}

func TestAdjustStockFlatSizes(t *testing.T) {
	product := &models.Product{
		ID:       primitive.NewObjectID(),
		Quantity: 5,
		Sizes:    []models.Size{{Name: "S", Qty: 4}, {Name: "L", Qty: 1}},
	}
	store := newFakeProductStore(product)
	inv := NewInventoryService(store)

	err := inv.AdjustStock(context.Background(), []models.OrderItem{
		{Product: product.ID, Quantity: 3, Size: "S"},
	}, Decrease)
	require.NoError(t, err)

	saved, _ := store.Get(context.Background(), product.ID)
	assert.Equal(t, 2, saved.Quantity)
	assert.Equal(t, 1, saved.Sizes[0].Qty)
}

func TestAdjustStockIncreaseRestoresDecrease(t *testing.T) {
	product := variantProduct()
	store := newFakeProductStore(product)
	inv := NewInventoryService(store)

	items := []models.OrderItem{{Product: product.ID, Quantity: 4, Color: "Red", Size: "M"}}
	require.NoError(t, inv.AdjustStock(context.Background(), items, Decrease))
	require.NoError(t, inv.AdjustStock(context.Background(), items, Increase))

	saved, _ := store.Get(context.Background(), product.ID)
	assert.Equal(t, 10, saved.Quantity)
	assert.Equal(t, 10, saved.ColorVariants[0].Qty)
	assert.Equal(t, 5, saved.ColorVariants[0].Sizes[1].Qty)
}

func TestAdjustStockMissingProductSkipped(t *testing.T) {
	product := variantProduct()
	store := newFakeProductStore(product)
	inv := NewInventoryService(store)

	// First item references a product that no longer exists; the second
	// must still be applied and no error is returned for the skip.
	err := inv.AdjustStock(context.Background(), []models.OrderItem{
		{Product: primitive.NewObjectID(), Quantity: 1},
		{Product: product.ID, Quantity: 2, Color: "Red", Size: "S"},
	}, Decrease)
	require.NoError(t, err)

	assert.Equal(t, 8, store.quantity(product.ID))
}

func TestAdjustStockAccumulatesFailures(t *testing.T) {
	broken := variantProduct()
	healthy := variantProduct()
	store := newFakeProductStore(broken, healthy)
	store.saveErr[broken.ID] = errors.New("write conflict")
	inv := NewInventoryService(store)

	err := inv.AdjustStock(context.Background(), []models.OrderItem{
		{Product: broken.ID, Quantity: 1, Color: "Red", Size: "S"},
		{Product: healthy.ID, Quantity: 2, Color: "Red", Size: "S"},
	}, Decrease)

	var partial *apperr.PartialStockError
	require.ErrorAs(t, err, &partial)
	require.Len(t, partial.Failures, 1)
	assert.Equal(t, broken.ID.Hex(), partial.Failures[0].ProductID)
	assert.Equal(t, "decrease", partial.Direction)

	// The healthy product was still adjusted.
	assert.Equal(t, 8, store.quantity(healthy.ID))
	// The broken one kept its original count.
	assert.Equal(t, 10, store.quantity(broken.ID))
}

func TestAdjustStockUnknownColorAdjustsAggregateOnly(t *testing.T) {
	product := variantProduct()
	store := newFakeProductStore(product)
	inv := NewInventoryService(store)

	err := inv.AdjustStock(context.Background(), []models.OrderItem{
		{Product: product.ID, Quantity: 2, Color: "Green"},
	}, Decrease)
	require.NoError(t, err)

	saved, _ := store.Get(context.Background(), product.ID)
	assert.Equal(t, 8, saved.Quantity)
	assert.Equal(t, 10, saved.ColorVariants[0].Qty)
}

func TestAdjustStockConcurrentSameProduct(t *testing.T) {
	product := &models.Product{ID: primitive.NewObjectID(), Quantity: 1000}
	store := newFakeProductStore(product)
	inv := NewInventoryService(store)

	const workers = 20
	done := make(chan struct{})
	for i := 0; i < workers; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			_ = inv.AdjustStock(context.Background(), []models.OrderItem{
				{Product: product.ID, Quantity: 1},
			}, Decrease)
		}()
	}
	for i := 0; i < workers; i++ {
		<-done
	}

	// Per-product serialization makes every decrement land.
	assert.Equal(t, 1000-workers, store.quantity(product.ID))
}

func TestLockStableAndBounded(t *testing.T) {
	inv := NewInventoryService(newFakeProductStore())

	id := primitive.NewObjectID().Hex()
	assert.Same(t, inv.lock(id), inv.lock(id))

	// The lock table must not grow with the number of distinct ids.
	seen := make(map[*sync.Mutex]struct{})
	for i := 0; i < 10*lockShards; i++ {
		seen[inv.lock(primitive.NewObjectID().Hex())] = struct{}{}
	}
	assert.LessOrEqual(t, len(seen), lockShards)
}
