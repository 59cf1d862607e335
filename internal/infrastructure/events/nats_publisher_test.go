package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/temucosoft-retail/internal/application/ports"
	"github.com/jhoicas/temucosoft-retail/internal/infrastructure/events"
)

type fakeConn struct {
	subject string
	data    []byte
	err     error
}

func (f *fakeConn) Publish(subj string, data []byte) error {
	f.subject, f.data = subj, data
	return f.err
}

func TestNATSPublisher_PublicaJSONEnElTema(t *testing.T) {
	conn := &fakeConn{}
	pub := events.NewNATSPublisher(conn, "retail")

	err := pub.Publish(context.Background(), ports.Event{
		Type:        ports.EventSaleRegistered,
		CompanyID:   "c1",
		AggregateID: "s1",
		Payload:     map[string]any{"items": 2},
	})
	require.NoError(t, err)
	assert.Equal(t, "retail.c1.sale.registered", conn.subject)

	var got map[string]any
	require.NoError(t, json.Unmarshal(conn.data, &got))
	assert.Equal(t, "sale.registered", got["type"])
	assert.Equal(t, "s1", got["aggregate_id"])
}

func TestNATSPublisher_EventoDePlataforma(t *testing.T) {
	pub := events.NewNATSPublisher(&fakeConn{}, "")
	assert.Equal(t, "retail.platform.tenant.created", pub.Subject(ports.Event{Type: ports.EventTenantCreated}))
}

func TestNATSPublisher_PropagaError(t *testing.T) {
	boom := errors.New("sin conexión")
	pub := events.NewNATSPublisher(&fakeConn{err: boom}, "retail")
	err := pub.Publish(context.Background(), ports.Event{Type: ports.EventOrderCreated, CompanyID: "c1"})
	assert.ErrorIs(t, err, boom)
}
