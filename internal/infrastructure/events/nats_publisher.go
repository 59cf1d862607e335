// Package events adaptadores del puerto ports.EventPublisher.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/jhoicas/temucosoft-retail/internal/application/ports"
	"github.com/jhoicas/temucosoft-retail/pkg/config"
)

var (
	_ ports.EventPublisher = (*NATSPublisher)(nil)
	_ ports.EventPublisher = (*LogPublisher)(nil)
)

// Conn subconjunto de *nats.Conn usado para publicar.
type Conn interface {
	Publish(subj string, data []byte) error
}

// Connect abre la conexión a NATS con reconexión automática.
func Connect(cfg config.NATSConfig, log zerolog.Logger) (*nats.Conn, error) {
	nc, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("NATS desconectado")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconectado")
		}),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			log.Error().Err(err).Msg("error NATS")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("conectar NATS: %w", err)
	}
	return nc, nil
}

// NATSPublisher publica cada evento como JSON en <prefix>.<company_id>.<tipo>.
type NATSPublisher struct {
	conn   Conn
	prefix string
}

// NewNATSPublisher construye el publicador.
func NewNATSPublisher(conn Conn, prefix string) *NATSPublisher {
	if prefix == "" {
		prefix = "retail"
	}
	return &NATSPublisher{conn: conn, prefix: prefix}
}

// Subject tema NATS del evento. Los eventos de plataforma usan "platform" como empresa.
func (p *NATSPublisher) Subject(evt ports.Event) string {
	company := evt.CompanyID
	if company == "" {
		company = "platform"
	}
	return strings.Join([]string{p.prefix, company, evt.Type}, ".")
}

// Publish serializa y publica el evento.
func (p *NATSPublisher) Publish(ctx context.Context, evt ports.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}
	if err := p.conn.Publish(p.Subject(evt), data); err != nil {
		return fmt.Errorf("publicar %s: %w", evt.Type, err)
	}
	return nil
}

// LogPublisher deja los eventos en el log cuando no hay bus configurado.
type LogPublisher struct {
	log zerolog.Logger
}

// NewLogPublisher construye el publicador de log.
func NewLogPublisher(log zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

// Publish registra el evento en nivel debug.
func (p *LogPublisher) Publish(_ context.Context, evt ports.Event) error {
	p.log.Debug().
		Str("event", evt.Type).
		Str("company_id", evt.CompanyID).
		Str("aggregate_id", evt.AggregateID).
		Msg("evento de dominio")
	return nil
}
