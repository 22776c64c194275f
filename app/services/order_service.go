package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/barecheradouane2/ShoppingStorev1/app/models"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/apperr"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/event"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/logger"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/metrics"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/validate"
)

// OrderItemInput is one line item as submitted by a client. Price and
// totalItemPrice may be omitted; they are then snapshotted from the
// product's current retail price.
type OrderItemInput struct {
	Product        string  `json:"product" validate:"required"`
	Quantity       int     `json:"quantity" validate:"required,gte=1"`
	Color          string  `json:"color"`
	Size           string  `json:"size"`
	Price          float64 `json:"price" validate:"nullable,gte=0"`
	TotalItemPrice float64 `json:"totalItemPrice" validate:"nullable,gte=0"`
}

// OrderInput is the create/update payload. TotalPrice is deliberately
// absent: totals are always derived server side.
type OrderInput struct {
	CustomerName   string           `json:"customerName" validate:"required,min=2,max=100"`
	PhoneNumber    string           `json:"phoneNumber" validate:"required,min=8,max=20"`
	Wilaya         string           `json:"wilaya"`
	Commune        string           `json:"commune"`
	Address        string           `json:"address"`
	OrderStatus    string           `json:"orderStatus" validate:"nullable"`
	ShippingStatus string           `json:"shippingStatus" validate:"required,in=home,desk"`
	Shipping       string           `json:"shipping" validate:"required"`
	OrderItems     []OrderItemInput `json:"orderItems" validate:"required"`
	Note           string           `json:"note"`
}

// OrderService orchestrates the order lifecycle: it decides when and in
// which direction stock moves, and derives totals before every write.
type OrderService struct {
	orders    OrderStore
	shippings ShippingStore
	products  ProductStore
	inventory *InventoryService
}

func NewOrderService(orders OrderStore, shippings ShippingStore, products ProductStore, inventory *InventoryService) *OrderService {
	return &OrderService{orders: orders, shippings: shippings, products: products, inventory: inventory}
}

// recomputeTotal derives the order total from its items and shipping tier.
// An empty order totals zero; the shipping fee is only added when at least
// one item exists. A nil rate contributes no fee.
func recomputeTotal(o *models.Order, rate *models.Shipping) float64 {
	if len(o.OrderItems) == 0 {
		return 0
	}
	var total float64
	for _, item := range o.OrderItems {
		total += item.TotalItemPrice
	}
	if rate != nil {
		total += rate.Rate(o.ShippingStatus)
	}
	return total
}

// Create validates the input, decrements stock first when the order
// arrives already confirmed, then persists with a derived total.
//
// A partial stock failure does not abort creation: the order is saved and
// the failure is reported alongside it so the caller can reconcile.
func (s *OrderService) Create(ctx context.Context, in OrderInput) (*models.Order, error) {
	order, rate, err := s.assemble(ctx, in)
	if err != nil {
		return nil, err
	}

	var stockErr *apperr.PartialStockError
	if order.OrderStatus == models.StatusConfirmed {
		if err := s.inventory.AdjustStock(ctx, order.OrderItems, Decrease); err != nil {
			if !errors.As(err, &stockErr) {
				return nil, err
			}
			logger.WithCtx(ctx).Warn("order created with partial stock failure",
				"failures", len(stockErr.Failures))
		}
	}

	order.TotalPrice = recomputeTotal(order, rate)
	saved, err := s.orders.Save(ctx, order)
	if err != nil {
		return nil, err
	}

	metrics.OrderTransitions.WithLabelValues("created", string(saved.OrderStatus)).Inc()
	event.Fire(event.OrderCreated, saved)

	if stockErr != nil {
		return saved, stockErr
	}
	return saved, nil
}

// Update applies the input to an existing order and moves stock across
// the confirmation boundary:
//
//   - entering confirmed: decrease on the new item list
//   - leaving confirmed: increase on the previously stored item list
//   - staying confirmed with changed items: increase old then decrease
//     new, so swapping quantities of the same variant nets correctly
//   - otherwise: no stock movement
func (s *OrderService) Update(ctx context.Context, id primitive.ObjectID, in OrderInput) (*models.Order, error) {
	prev, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	order, rate, err := s.assemble(ctx, in)
	if err != nil {
		return nil, err
	}
	order.ID = prev.ID
	order.CreatedAt = prev.CreatedAt

	wasConfirmed := prev.OrderStatus == models.StatusConfirmed
	isConfirmed := order.OrderStatus == models.StatusConfirmed

	var stockErr *apperr.PartialStockError
	adjust := func(items []models.OrderItem, d Direction) error {
		err := s.inventory.AdjustStock(ctx, items, d)
		if err != nil && !errors.As(err, &stockErr) {
			return err
		}
		return nil
	}

	switch {
	case !wasConfirmed && isConfirmed:
		if err := adjust(order.OrderItems, Decrease); err != nil {
			return nil, err
		}
	case wasConfirmed && !isConfirmed:
		if err := adjust(prev.OrderItems, Increase); err != nil {
			return nil, err
		}
	case wasConfirmed && isConfirmed && !models.ItemsEqual(prev.OrderItems, order.OrderItems):
		// Restock before deducting so same-variant quantity swaps never
		// dip below the true available stock.
		if err := adjust(prev.OrderItems, Increase); err != nil {
			return nil, err
		}
		if err := adjust(order.OrderItems, Decrease); err != nil {
			return nil, err
		}
	}

	order.TotalPrice = recomputeTotal(order, rate)
	saved, err := s.orders.Save(ctx, order)
	if err != nil {
		return nil, err
	}

	metrics.OrderTransitions.WithLabelValues("updated", string(saved.OrderStatus)).Inc()
	event.Fire(event.OrderUpdated, saved)

	if stockErr != nil {
		return saved, stockErr
	}
	return saved, nil
}

// Delete restores stock first when the stored order is confirmed, then
// removes the record and returns it.
func (s *OrderService) Delete(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	prev, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var stockErr *apperr.PartialStockError
	if prev.OrderStatus == models.StatusConfirmed {
		if err := s.inventory.AdjustStock(ctx, prev.OrderItems, Increase); err != nil {
			if !errors.As(err, &stockErr) {
				return nil, err
			}
			logger.WithCtx(ctx).Warn("order deleted with partial restock failure",
				"order", id.Hex(), "failures", len(stockErr.Failures))
		}
	}

	deleted, err := s.orders.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	metrics.OrderTransitions.WithLabelValues("deleted", string(deleted.OrderStatus)).Inc()
	event.Fire(event.OrderDeleted, deleted)

	if stockErr != nil {
		return deleted, stockErr
	}
	return deleted, nil
}

func (s *OrderService) Get(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	return s.orders.Get(ctx, id)
}

func (s *OrderService) List(ctx context.Context, page, limit int64, status models.OrderStatus, search string) ([]models.Order, int64, error) {
	if status != "" && !status.Valid() {
		return nil, 0, apperr.Validation("orderStatus", "The selected orderStatus is invalid.")
	}
	return s.orders.List(ctx, page, limit, status, search)
}

// Stats returns order counts grouped by status.
func (s *OrderService) Stats(ctx context.Context) (map[string]int64, error) {
	return s.orders.CountByStatus(ctx)
}

// assemble validates input, resolves the shipping tier, and builds the
// order with snapshotted item prices. Shipping lookup failure aborts the
// whole operation, unlike per-item product lookups in stock adjustment.
func (s *OrderService) assemble(ctx context.Context, in OrderInput) (*models.Order, *models.Shipping, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, nil, apperr.ValidationFields(errs)
	}

	status := models.OrderStatus(in.OrderStatus)
	if status == "" {
		status = models.StatusPending
	}
	if !status.Valid() {
		return nil, nil, apperr.Validation("orderStatus", "The selected orderStatus is invalid.")
	}

	shippingID, err := primitive.ObjectIDFromHex(in.Shipping)
	if err != nil {
		return nil, nil, apperr.Validation("shipping", "The shipping field must be a valid id.")
	}
	rate, err := s.shippings.Get(ctx, shippingID)
	if err != nil {
		return nil, nil, err
	}

	items, err := s.buildItems(ctx, in.OrderItems)
	if err != nil {
		return nil, nil, err
	}

	return &models.Order{
		CustomerName:   in.CustomerName,
		PhoneNumber:    in.PhoneNumber,
		Wilaya:         in.Wilaya,
		Commune:        in.Commune,
		Address:        in.Address,
		OrderStatus:    status,
		ShippingStatus: models.ShippingStatus(in.ShippingStatus),
		Shipping:       rate.ID,
		OrderItems:     items,
		Note:           in.Note,
	}, rate, nil
}

// buildItems converts inputs to line items. When price is omitted it is
// snapshotted from the product's current retail price; a supplied
// totalItemPrice must match quantity × price exactly.
func (s *OrderService) buildItems(ctx context.Context, inputs []OrderItemInput) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(inputs))
	for i, in := range inputs {
		field := fmt.Sprintf("orderItems.%d", i)

		productID, err := primitive.ObjectIDFromHex(in.Product)
		if err != nil {
			return nil, apperr.Validation(field+".product", "The product field must be a valid id.")
		}
		if in.Quantity < 1 {
			return nil, apperr.Validation(field+".quantity", "The quantity must be at least 1.")
		}

		price := in.Price
		if price == 0 {
			product, err := s.products.Get(ctx, productID)
			if err != nil {
				return nil, err
			}
			price = product.Price
		}

		total := in.TotalItemPrice
		if total == 0 {
			total = float64(in.Quantity) * price
		} else if total != float64(in.Quantity)*price {
			return nil, apperr.Validation(field+".totalItemPrice", "The totalItemPrice must equal quantity times price.")
		}

		items = append(items, models.OrderItem{
			Product:        productID,
			Quantity:       in.Quantity,
			Color:          in.Color,
			Size:           in.Size,
			Price:          price,
			TotalItemPrice: total,
		})
	}
	return items, nil
}
