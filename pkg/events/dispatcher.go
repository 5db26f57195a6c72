package events

import (
	"fmt"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Dispatcher fans events out to the audit and notification actors. Publish
// only enqueues, so callers never wait on the audit store or the notifier.
type Dispatcher struct {
	system *actor.ActorSystem
	audit  *actor.PID
	notify *actor.PID
	logger *zap.Logger
}

func NewDispatcher(writer AuditWriter, notifier Notifier, logger *zap.Logger) (*Dispatcher, error) {
	system := actor.NewActorSystem()

	auditProps := actor.PropsFromProducer(func() actor.Actor {
		return &AuditActor{writer: writer, logger: logger.Named("audit-actor")}
	})
	auditPid, err := system.Root.SpawnNamed(auditProps, "audit-actor")
	if err != nil {
		return nil, fmt.Errorf("failed to spawn audit actor: %w", err)
	}

	notificationProps := actor.PropsFromProducer(func() actor.Actor {
		return &NotificationActor{notifier: notifier, logger: logger.Named("notification-actor")}
	})
	notifyPid, err := system.Root.SpawnNamed(notificationProps, "notification-actor")
	if err != nil {
		return nil, fmt.Errorf("failed to spawn notification actor: %w", err)
	}

	logger.Info("Event actors started",
		zap.String("audit_actor", auditPid.Id),
		zap.String("notification_actor", notifyPid.Id))

	return &Dispatcher{system: system, audit: auditPid, notify: notifyPid, logger: logger}, nil
}

func (d *Dispatcher) Publish(event interface{}) {
	d.system.Root.Send(d.audit, event)
	d.system.Root.Send(d.notify, event)
}

// Close stops both actors after they have drained their mailboxes.
func (d *Dispatcher) Close() error {
	return multierr.Combine(
		d.system.Root.PoisonFuture(d.audit).Wait(),
		d.system.Root.PoisonFuture(d.notify).Wait(),
	)
}
