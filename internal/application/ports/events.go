package ports

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Tipos de evento de dominio publicados después del commit.
const (
	EventSaleRegistered     = "sale.registered"
	EventPurchaseRegistered = "purchase.registered"
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventStockAdjusted      = "stock.adjusted"
	EventTenantCreated      = "tenant.created"
)

// Event evento de integración. Payload se serializa como JSON.
type Event struct {
	Type        string    `json:"type"`
	CompanyID   string    `json:"company_id"`
	AggregateID string    `json:"aggregate_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Payload     any       `json:"payload,omitempty"`
}

// EventPublisher puerto de salida hacia el bus de eventos (NATS o no-op).
// Se invoca fuera de la transacción: un fallo al publicar no deshace la operación.
type EventPublisher interface {
	Publish(ctx context.Context, evt Event) error
}

// NopPublisher descarta los eventos.
type NopPublisher struct{}

// Publish no hace nada.
func (NopPublisher) Publish(context.Context, Event) error { return nil }

// Notify publica evt y solo registra el error: la operación ya fue confirmada.
func Notify(ctx context.Context, pub EventPublisher, log zerolog.Logger, evt Event) {
	if pub == nil {
		return
	}
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now().UTC()
	}
	if err := pub.Publish(ctx, evt); err != nil {
		log.Warn().Err(err).Str("event", evt.Type).Str("aggregate_id", evt.AggregateID).Msg("no se pudo publicar el evento")
	}
}
