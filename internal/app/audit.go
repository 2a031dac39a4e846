/**
 * @description
 * This file implements the gateway's audit emitter. Audit logging is a side
 * concern relative to the primary operation (deposit, loan request,
 * repayment): every emission is best-effort, and a lost audit entry never
 * rolls back or blocks the operation that produced it.
 *
 * Each entry goes to two places, independently: the event_bus service (the
 * authoritative append-only log) and a RabbitMQ topic exchange for internal
 * consumers. Failure of either leg is logged and swallowed.
 */

package app

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/icroots/roots-gateway/pkg/rabbitmq"
)

const auditRoutingKey = "roots.audit"

// AuditEmitter records audit entries without ever surfacing a failure to the
// caller.
type AuditEmitter struct {
	eventBus EventBusClient
	producer rabbitmq.Publisher
	exchange string
}

// NewAuditEmitter creates a new audit emitter. The producer may be nil when
// RabbitMQ is not configured; the event_bus leg still runs.
func NewAuditEmitter(eventBus EventBusClient, producer rabbitmq.Publisher, exchange string) *AuditEmitter {
	return &AuditEmitter{
		eventBus: eventBus,
		producer: producer,
		exchange: exchange,
	}
}

// Emit records one audit entry. Never returns an error.
func (e *AuditEmitter) Emit(ctx context.Context, message string) {
	if err := e.eventBus.Emit(ctx, message); err != nil {
		log.Printf("level=warn component=audit msg=\"event bus emit failed; continuing\" event=%q err=%v", message, err)
	}

	if e.producer == nil {
		return
	}
	event := rabbitmq.AuditEvent{
		EventID:    uuid.NewString(),
		Message:    message,
		OccurredAt: time.Now().UTC(),
	}
	if err := e.producer.Publish(ctx, e.exchange, auditRoutingKey, event); err != nil {
		log.Printf("level=warn component=audit msg=\"rabbitmq mirror failed; continuing\" event_id=%s err=%v", event.EventID, err)
	}
}
