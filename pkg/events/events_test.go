package events

import (
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAcknowledger records what dispatch does with a delivery.
type fakeAcknowledger struct {
	acks    int
	nacks   int
	requeue bool
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.acks++
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	f.nacks++
	f.requeue = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return nil
}

func delivery(ack *fakeAcknowledger, body []byte) amqp.Delivery {
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: body}
}

func TestDispatch_AcksHandledEvent(t *testing.T) {
	ack := &fakeAcknowledger{}
	body, err := json.Marshal(Event{Entity: "category", Action: "created", ID: "cat-1", Name: "Tablet"})
	require.NoError(t, err)

	var got Event
	dispatch(delivery(ack, body), func(ev Event) error {
		got = ev
		return nil
	})

	assert.Equal(t, "category", got.Entity)
	assert.Equal(t, "created", got.Action)
	assert.Equal(t, "cat-1", got.ID)
	assert.Equal(t, 1, ack.acks)
	assert.Zero(t, ack.nacks)
}

func TestDispatch_RequeuesOnHandlerFailure(t *testing.T) {
	ack := &fakeAcknowledger{}
	body, err := json.Marshal(Event{Entity: "item", Action: "deleted", ID: "item-1"})
	require.NoError(t, err)

	dispatch(delivery(ack, body), func(Event) error {
		return errors.New("downstream unavailable")
	})

	assert.Zero(t, ack.acks)
	assert.Equal(t, 1, ack.nacks)
	assert.True(t, ack.requeue, "a failed handler must requeue the message")
}

func TestDispatch_DropsUndecodableMessage(t *testing.T) {
	ack := &fakeAcknowledger{}
	called := false

	dispatch(delivery(ack, []byte("not json")), func(Event) error {
		called = true
		return nil
	})

	assert.False(t, called, "the handler must not see an undecodable message")
	assert.Equal(t, 1, ack.nacks)
	assert.False(t, ack.requeue, "a poison message must not be requeued")
}
