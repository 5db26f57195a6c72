package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/agrigrow/pkg/events"
	"github.com/example/agrigrow/pkg/models"
	"github.com/example/agrigrow/pkg/repository"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	fallbackPhoto = "https://via.placeholder.com/100"
	fallbackName  = "Product Not Found"
)

// OrderItemInput is one line of the client's cart snapshot.
type OrderItemInput struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Photo     string          `json:"photo"`
}

type PaymentInput struct {
	TxnID  string `json:"txnId"`
	UtrID  string `json:"utrId"`
	Status string `json:"status"`
}

type PlaceOrderInput struct {
	Items           []OrderItemInput        `json:"items"`
	DeliveryDetails *models.DeliveryDetails `json:"deliveryDetails"`
	TotalAmount     *decimal.Decimal        `json:"totalAmount"`
	Payment         *PaymentInput           `json:"payment"`
	SaveAddress     bool                    `json:"saveAddress"`
}

// OrderService runs the order workflow: placing immutable order snapshots and
// moving payment.status through its state machine.
type OrderService struct {
	orders    OrderStore
	products  ProductStore
	addresses *AddressService
	publisher Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewOrderService(orders OrderStore, products ProductStore, addresses *AddressService, publisher Publisher, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders:    orders,
		products:  products,
		addresses: addresses,
		publisher: publisherOrNop(publisher),
		logger:    logger,
		now:       time.Now,
	}
}

// Place stores a new order for userID. Saving the delivery address is best
// effort: a failure there is logged and the order stays placed.
func (s *OrderService) Place(ctx context.Context, userID string, in PlaceOrderInput) (*models.Order, error) {
	if in.Items == nil || in.DeliveryDetails == nil || in.TotalAmount == nil || in.Payment == nil {
		return nil, NewMissingFields("Missing required order information.")
	}

	order, err := buildOrder(userID, in)
	if err != nil {
		return nil, err
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, NewStoreFailure("Failed to place order.", err)
	}
	s.logger.Info("Order placed",
		zap.String("order_id", order.ID.Hex()),
		zap.String("user_id", userID),
		zap.String("total", order.TotalAmount.String()))

	if in.SaveAddress {
		if err := s.addresses.saveFromDelivery(ctx, userID, order.DeliveryDetails); err != nil {
			s.logger.Warn("Failed to save delivery address",
				zap.String("order_id", order.ID.Hex()), zap.Error(err))
		}
	}

	s.publisher.Publish(&events.OrderPlaced{
		OrderID:   order.ID.Hex(),
		UserID:    userID,
		Email:     order.DeliveryDetails.Email,
		Total:     order.TotalAmount,
		ItemCount: len(order.Items),
		At:        order.CreatedAt,
	})
	return order, nil
}

func buildOrder(userID string, in PlaceOrderInput) (*models.Order, error) {
	var problems []string

	items := make([]models.OrderItem, 0, len(in.Items))
	for i, it := range in.Items {
		item := models.OrderItem{Name: strings.TrimSpace(it.Name), Price: it.Price, Quantity: it.Quantity, Photo: it.Photo}
		if item.Quantity == 0 {
			item.Quantity = 1
		}
		if it.ProductID != "" {
			id, err := primitive.ObjectIDFromHex(it.ProductID)
			if err != nil {
				problems = append(problems, fmt.Sprintf("items.%d.productId: invalid id", i))
			} else {
				item.ProductID = &id
			}
		}
		if item.Name == "" {
			problems = append(problems, fmt.Sprintf("items.%d.name: required", i))
		}
		if item.Price.IsNegative() {
			problems = append(problems, fmt.Sprintf("items.%d.price: must not be negative", i))
		}
		if item.Quantity < 1 {
			problems = append(problems, fmt.Sprintf("items.%d.quantity: must be at least 1", i))
		}
		items = append(items, item)
	}

	d := *in.DeliveryDetails
	for _, f := range []struct{ name, value string }{
		{"name", d.Name}, {"phone", d.Phone}, {"address", d.Address}, {"city", d.City}, {"pincode", d.Pincode},
	} {
		if strings.TrimSpace(f.value) == "" {
			problems = append(problems, "deliveryDetails."+f.name+": required")
		}
	}

	payment := models.Payment{TxnID: in.Payment.TxnID, UtrID: in.Payment.UtrID, Status: models.StatusPendingVerification}
	if payment.TxnID == "" {
		problems = append(problems, "payment.txnId: required")
	}
	if payment.UtrID == "" {
		problems = append(problems, "payment.utrId: required")
	}
	if in.Payment.Status != "" {
		payment.Status = models.OrderStatus(in.Payment.Status)
		if !payment.Status.Valid() {
			problems = append(problems, fmt.Sprintf("payment.status: `%s` is not a valid enum value", in.Payment.Status))
		}
	}

	if len(problems) > 0 {
		return nil, NewValidationFailed("Order validation failed.", strings.Join(problems, "; "))
	}

	return &models.Order{
		UserID:          userID,
		Items:           items,
		DeliveryDetails: d,
		TotalAmount:     *in.TotalAmount,
		Payment:         payment,
	}, nil
}

// Transition moves an order to status. Terminal orders refuse every change.
// Entering Shipped stamps shippedAt once; entering Cancelled stamps
// cancelledAt. The write only lands if the status read is still current.
func (s *OrderService) Transition(ctx context.Context, rawID, status string) (*models.Order, error) {
	if status == "" {
		return nil, NewMissingFields("New status is required.")
	}
	id, err := parseObjectID(rawID, "order ID")
	if err != nil {
		return nil, err
	}
	to := models.OrderStatus(status)
	if !to.Valid() {
		return nil, NewValidationFailed(
			"Validation Failed. Check that the new status is in the Order schema enum.",
			fmt.Sprintf("`%s` is not a valid enum value for path `payment.status`.", status))
	}

	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		current, err := s.orders.FindByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound("Order not found.")
		}
		if err != nil {
			return nil, NewStoreFailure("Server error during order status update.", err)
		}
		if current.Payment.Status.Terminal() {
			return nil, NewInvalidTransition(fmt.Sprintf(
				"Cannot change status of an order that is already %s.", current.Payment.Status))
		}

		now := s.now()
		change := models.StatusChange{From: current.Payment.Status, To: to, At: now}
		if to == models.StatusShipped && current.ShippedAt == nil {
			change.ShippedAt = &now
		}
		if to == models.StatusCancelled {
			change.CancelledAt = &now
		}

		updated, err := s.orders.UpdateStatus(ctx, id, change)
		if errors.Is(err, repository.ErrVersionConflict) {
			s.logger.Debug("Order status changed underneath, retrying",
				zap.String("order_id", rawID), zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return nil, NewStoreFailure("Server error during order status update.", err)
		}

		s.logger.Info("Order status updated",
			zap.String("order_id", rawID),
			zap.String("from", string(change.From)),
			zap.String("to", string(to)))
		s.publisher.Publish(&events.OrderStatusChanged{
			OrderID: rawID,
			UserID:  updated.UserID,
			Email:   updated.DeliveryDetails.Email,
			From:    change.From,
			To:      to,
			At:      now,
		})
		return updated, nil
	}
	return nil, NewConflict("Order was modified concurrently, please retry.")
}

// History returns the user's orders, newest first.
func (s *OrderService) History(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewStoreFailure("Error fetching order history.", err)
	}
	return s.withCatalogFallback(ctx, orders)
}

// All returns every order, newest first.
func (s *OrderService) All(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, NewStoreFailure("Failed to fetch all orders.", err)
	}
	return s.withCatalogFallback(ctx, orders)
}

// withCatalogFallback fills in a missing item name or photo from the live
// catalog. Snapshot values always win.
func (s *OrderService) withCatalogFallback(ctx context.Context, orders []models.Order) ([]models.Order, error) {
	var ids []primitive.ObjectID
	for _, o := range orders {
		for _, it := range o.Items {
			if it.ProductID != nil && (it.Name == "" || it.Photo == "") {
				ids = append(ids, *it.ProductID)
			}
		}
	}

	var products map[primitive.ObjectID]*models.Product
	if len(ids) > 0 {
		var err error
		if products, err = s.products.FindByIDs(ctx, ids); err != nil {
			return nil, NewStoreFailure("Error fetching order history.", err)
		}
	}

	for i := range orders {
		for j := range orders[i].Items {
			it := &orders[i].Items[j]
			var live *models.Product
			if it.ProductID != nil {
				live = products[*it.ProductID]
			}
			if it.Name == "" {
				it.Name = fallbackName
				if live != nil && live.Name != "" {
					it.Name = live.Name
				}
			}
			if it.Photo == "" {
				it.Photo = fallbackPhoto
				if live != nil && live.Photo != "" {
					it.Photo = live.Photo
				}
			}
		}
	}
	return orders, nil
}
