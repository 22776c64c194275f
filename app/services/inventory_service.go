package services

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"

	"github.com/barecheradouane2/ShoppingStorev1/app/models"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/apperr"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/collection"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/logger"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/metrics"
)

// Direction is the sign of a stock adjustment.
type Direction int

const (
	Increase Direction = 1
	Decrease Direction = -1
)

func (d Direction) String() string {
	if d == Increase {
		return "increase"
	}
	return "decrease"
}

// lockShards fixes the size of the lock table so it does not grow with
// the catalog. Distinct products can hash onto the same shard, which
// serializes slightly more than strictly needed but is always safe.
const lockShards = 128

// InventoryService applies signed quantity deltas to product variant trees.
//
// Adjustments are serialized per product id so two concurrent order
// confirmations touching the same product cannot interleave their
// read-modify-write cycles. Items referencing different products still
// proceed independently (up to shard collisions).
type InventoryService struct {
	products ProductStore
	locks    [lockShards]sync.Mutex
}

func NewInventoryService(products ProductStore) *InventoryService {
	return &InventoryService{products: products}
}

func (s *InventoryService) lock(productID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(productID)) //nolint:errcheck
	return &s.locks[h.Sum32()%lockShards]
}

// AdjustStock applies delta = direction × item.quantity to each item's
// product: to the aggregate quantity, to the matching color variant, and
// to the matching size bucket inside it (or the flat size list when the
// product has no variants).
//
// Processing is per-item and best-effort. A missing product is logged and
// skipped; other failures are accumulated and returned together as a
// PartialStockError after the remaining items were processed. A failure
// on one item never rolls back earlier items.
func (s *InventoryService) AdjustStock(ctx context.Context, items []models.OrderItem, direction Direction) error {
	var failures []apperr.ItemFailure

	for _, item := range items {
		if err := s.adjustItem(ctx, item, direction); err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				logger.WithCtx(ctx).Warn("stock adjust: product missing, skipped",
					"product", item.Product.Hex(), "direction", direction.String())
				metrics.StockAdjustments.WithLabelValues(direction.String(), "skipped").Inc()
				continue
			}
			logger.WithCtx(ctx).Error("stock adjust failed",
				"product", item.Product.Hex(), "direction", direction.String(), "error", err)
			metrics.StockAdjustments.WithLabelValues(direction.String(), "failed").Inc()
			failures = append(failures, apperr.ItemFailure{ProductID: item.Product.Hex(), Err: err})
			continue
		}
		metrics.StockAdjustments.WithLabelValues(direction.String(), "applied").Inc()
	}

	if len(failures) > 0 {
		return &apperr.PartialStockError{Direction: direction.String(), Failures: failures}
	}
	return nil
}

// adjustItem runs one load-mutate-save round trip under the product lock,
// keeping the aggregate quantity and the variant tree in the same write.
func (s *InventoryService) adjustItem(ctx context.Context, item models.OrderItem, direction Direction) error {
	l := s.lock(item.Product.Hex())
	l.Lock()
	defer l.Unlock()

	product, err := s.products.Get(ctx, item.Product)
	if err != nil {
		return err
	}

	delta := int(direction) * item.Quantity
	product.Quantity += delta
	applyVariantDelta(product, item, delta)

	if _, err := s.products.Save(ctx, product); err != nil {
		return err
	}
	return nil
}

// applyVariantDelta mutates the variant tree in place. Color and size
// names match by plain string equality. An item color that matches no
// variant leaves the variant layer untouched while the aggregate quantity
// was already adjusted; the mismatch is logged as an inconsistency signal.
func applyVariantDelta(product *models.Product, item models.OrderItem, delta int) {
	if len(product.ColorVariants) > 0 {
		vi := collection.FirstIndex(product.ColorVariants, func(v models.ColorVariant) bool {
			return v.Name == item.Color
		})
		if vi < 0 {
			if item.Color != "" {
				logger.Warn("stock adjust: color not found on product",
					"product", product.ID.Hex(), "color", item.Color)
			}
			return
		}
		product.ColorVariants[vi].Qty += delta
		if len(product.ColorVariants[vi].Sizes) > 0 {
			si := collection.FirstIndex(product.ColorVariants[vi].Sizes, func(sz models.Size) bool {
				return sz.Name == item.Size
			})
			if si >= 0 {
				product.ColorVariants[vi].Sizes[si].Qty += delta
			}
		}
		return
	}

	if len(product.Sizes) > 0 {
		si := collection.FirstIndex(product.Sizes, func(sz models.Size) bool {
			return sz.Name == item.Size
		})
		if si >= 0 {
			product.Sizes[si].Qty += delta
		}
	}
}
