package events

import (
	"context"
	"fmt"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/example/agrigrow/pkg/repository"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const writeTimeout = 5 * time.Second

// AuditWriter persists audit entries.
type AuditWriter interface {
	CreateAuditLog(ctx context.Context, log *repository.AuditLog) error
}

// AuditActor turns every event into an audit log document.
type AuditActor struct {
	writer AuditWriter
	logger *zap.Logger
}

func (a *AuditActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		a.logger.Info("Audit actor started")

	case *actor.Stopped:
		a.logger.Info("Audit actor stopped")

	default:
		entry, ok := auditEntry(msg)
		if !ok {
			return
		}
		wctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		if err := a.writer.CreateAuditLog(wctx, entry); err != nil {
			a.logger.Warn("Failed to write audit log",
				zap.String("action", entry.Action),
				zap.String("entity_id", entry.EntityID),
				zap.Error(err))
		}
	}
}

func auditEntry(msg interface{}) (*repository.AuditLog, bool) {
	switch e := msg.(type) {
	case *OrderPlaced:
		return &repository.AuditLog{
			Service:  "orders",
			Action:   "order_placed",
			EntityID: e.OrderID,
			Data:     bson.M{"user_id": e.UserID, "total": e.Total.String(), "items": e.ItemCount},
		}, true
	case *OrderStatusChanged:
		return &repository.AuditLog{
			Service:  "orders",
			Action:   "status_changed",
			EntityID: e.OrderID,
			Data:     bson.M{"user_id": e.UserID, "from": string(e.From), "to": string(e.To)},
		}, true
	case *PaymentSubmitted:
		return &repository.AuditLog{
			Service:  "payments",
			Action:   "payment_submitted",
			EntityID: e.EntryID,
			Data:     bson.M{"txn_id": e.TxnID, "amount": e.Amount.String()},
		}, true
	case *PaymentStatusChanged:
		return &repository.AuditLog{
			Service:  "payments",
			Action:   "status_changed",
			EntityID: e.EntryID,
			Data:     bson.M{"status": e.Status},
		}, true
	}
	return nil, false
}

type Notification struct {
	ID        string
	Recipient string
	Type      string // email, sms
	Message   string
}

// Notifier delivers customer notifications.
type Notifier interface {
	Notify(ctx context.Context, n *Notification) error
}

// LogNotifier writes notifications to the log instead of sending them.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n LogNotifier) Notify(_ context.Context, msg *Notification) error {
	n.Logger.Info("Sending notification",
		zap.String("id", msg.ID),
		zap.String("recipient", msg.Recipient),
		zap.String("type", msg.Type),
		zap.String("message", msg.Message))
	return nil
}

// NotificationActor tells customers about their orders.
type NotificationActor struct {
	notifier Notifier
	logger   *zap.Logger
}

func (a *NotificationActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		a.logger.Info("Notification actor started")

	case *OrderPlaced:
		a.send(msg.Email, fmt.Sprintf("Order %s placed. Payment pending verification.", msg.OrderID))

	case *OrderStatusChanged:
		a.send(msg.Email, fmt.Sprintf("Order %s is now %s.", msg.OrderID, msg.To))

	case *PaymentSubmitted:
		a.send(msg.Email, fmt.Sprintf("Payment %s received.", msg.TxnID))
	}
}

func (a *NotificationActor) send(recipient, message string) {
	if recipient == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	n := &Notification{ID: uuid.NewString(), Recipient: recipient, Type: "email", Message: message}
	if err := a.notifier.Notify(ctx, n); err != nil {
		a.logger.Warn("Failed to send notification", zap.String("recipient", recipient), zap.Error(err))
	}
}
