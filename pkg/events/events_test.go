package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/example/agrigrow/pkg/models"
	"github.com/example/agrigrow/pkg/repository/repositorytest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []*Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n *Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return nil
}

func TestDispatcher_AuditsAndNotifies(t *testing.T) {
	audit := repositorytest.NewAuditStore()
	notifier := &recordingNotifier{}

	d, err := NewDispatcher(audit, notifier, zap.NewNop())
	require.NoError(t, err)

	d.Publish(&OrderPlaced{OrderID: "o1", UserID: "u1", Email: "a@example.com", Total: decimal.NewFromInt(500), ItemCount: 2, At: time.Now()})
	d.Publish(&OrderStatusChanged{OrderID: "o1", UserID: "u1", From: models.StatusPendingVerification, To: models.StatusPaid, At: time.Now()})
	d.Publish("ignored")
	require.NoError(t, d.Close())

	logs, err := audit.GetAuditLogs(context.Background(), "o1", 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "status_changed", logs[0].Action)
	assert.Equal(t, "order_placed", logs[1].Action)
	assert.Equal(t, "500", logs[1].Data["total"])

	// status change had no email, so only the placement is notified
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "a@example.com", notifier.sent[0].Recipient)
	assert.Contains(t, notifier.sent[0].Message, "o1")
	assert.NotEmpty(t, notifier.sent[0].ID)
}

func TestAuditEntry_UnknownMessage(t *testing.T) {
	_, ok := auditEntry(struct{}{})
	assert.False(t, ok)

	entry, ok := auditEntry(&PaymentStatusChanged{EntryID: "p1", Status: "verified"})
	require.True(t, ok)
	assert.Equal(t, "payments", entry.Service)
	assert.Equal(t, "verified", entry.Data["status"])
}
