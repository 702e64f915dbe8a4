package consumer

import (
	"context"
	"errors"
	"testing"

	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/models"
	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/service"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
)

type fakeAcknowledger struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.acked = true
	return nil
}
func (f *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}
func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return f.Nack(tag, false, requeue)
}

type confirmFunc func(ctx context.Context, bookingID uint, status models.PaymentStatus) error

func (f confirmFunc) ConfirmPayment(ctx context.Context, bookingID uint, status models.PaymentStatus) error {
	return f(ctx, bookingID, status)
}

func delivery(routingKey, body string) (amqp.Delivery, *fakeAcknowledger) {
	ack := &fakeAcknowledger{}
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, RoutingKey: routingKey, Body: []byte(body)}, ack
}

func TestHandleMessage_AcksAppliedResult(t *testing.T) {
	var gotID uint
	var gotStatus models.PaymentStatus
	pc := NewPaymentConsumer(confirmFunc(func(ctx context.Context, id uint, status models.PaymentStatus) error {
		gotID, gotStatus = id, status
		return nil
	}))

	msg, ack := delivery("payment.completed", `{"booking_id":42,"status":"completed"}`)
	pc.handleMessage(msg)

	assert.True(t, ack.acked)
	assert.Equal(t, uint(42), gotID)
	assert.Equal(t, models.PaymentCompleted, gotStatus)
}

func TestHandleMessage_StatusFromRoutingKey(t *testing.T) {
	var gotStatus models.PaymentStatus
	pc := NewPaymentConsumer(confirmFunc(func(ctx context.Context, id uint, status models.PaymentStatus) error {
		gotStatus = status
		return nil
	}))

	msg, ack := delivery("payment.failed", `{"booking_id":42}`)
	pc.handleMessage(msg)

	assert.True(t, ack.acked)
	assert.Equal(t, models.PaymentFailed, gotStatus)
}

func TestHandleMessage_DropsPoisonMessages(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
	}{
		{"malformed body", `not json`, nil},
		{"unknown booking", `{"booking_id":1,"status":"completed"}`, service.ErrBookingNotFound},
		{"already settled", `{"booking_id":1,"status":"failed"}`, service.ErrPaymentAlreadySettled},
		{"invalid status", `{"booking_id":1,"status":"refunded"}`, service.ErrInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc := NewPaymentConsumer(confirmFunc(func(ctx context.Context, id uint, status models.PaymentStatus) error {
				return tt.err
			}))

			msg, ack := delivery("payment.completed", tt.body)
			pc.handleMessage(msg)

			assert.False(t, ack.acked)
			assert.True(t, ack.nacked)
			assert.False(t, ack.requeue)
		})
	}
}

func TestHandleMessage_RequeuesOnStorageFailure(t *testing.T) {
	pc := NewPaymentConsumer(confirmFunc(func(ctx context.Context, id uint, status models.PaymentStatus) error {
		return service.ErrStorageFailure
	}))

	msg, ack := delivery("payment.completed", `{"booking_id":1,"status":"completed"}`)
	pc.handleMessage(msg)

	assert.True(t, ack.nacked)
	assert.True(t, ack.requeue)
}

func TestStart_StopsWhenChannelCloses(t *testing.T) {
	calls := 0
	pc := NewPaymentConsumer(confirmFunc(func(ctx context.Context, id uint, status models.PaymentStatus) error {
		calls++
		if id == 2 {
			return errors.New("boom")
		}
		return nil
	}))

	msgs := make(chan amqp.Delivery, 2)
	m1, ack1 := delivery("payment.completed", `{"booking_id":1}`)
	m2, ack2 := delivery("payment.completed", `{"booking_id":2}`)
	msgs <- m1
	msgs <- m2
	close(msgs)

	<-pc.Start(msgs)

	assert.Equal(t, 2, calls)
	assert.True(t, ack1.acked)
	assert.True(t, ack2.requeue)
}
