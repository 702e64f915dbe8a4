package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/dto"
	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/models"
	"github.com/Abhi01x/EventHive-Simplifying-End-to-End-Event-Management/internal/service"
	amqp "github.com/rabbitmq/amqp091-go"
)

const handleTimeout = 10 * time.Second

type PaymentConfirmer interface {
	ConfirmPayment(ctx context.Context, bookingID uint, status models.PaymentStatus) error
}

// PaymentConsumer applies payment results from the gateway to pending bookings.
type PaymentConsumer struct {
	svc PaymentConfirmer
}

func NewPaymentConsumer(svc PaymentConfirmer) *PaymentConsumer {
	return &PaymentConsumer{svc: svc}
}

// Start handles deliveries in a goroutine. The returned channel is closed once
// msgs is closed and the last delivery is settled.
func (pc *PaymentConsumer) Start(msgs <-chan amqp.Delivery) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			pc.handleMessage(msg)
		}
		log.Println("[PaymentConsumer] channel closed, stopping consumer")
	}()
	return done
}

func (pc *PaymentConsumer) handleMessage(msg amqp.Delivery) {
	var result dto.PaymentResultMessage
	if err := json.Unmarshal(msg.Body, &result); err != nil {
		log.Printf("[PaymentConsumer] failed to unmarshal: %v", err)
		msg.Nack(false, false)
		return
	}

	// routing key carries the status when the body omits it: payment.completed
	if result.Status == "" {
		result.Status = models.PaymentStatus(strings.TrimPrefix(msg.RoutingKey, "payment."))
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	err := pc.svc.ConfirmPayment(ctx, result.BookingID, result.Status)
	switch {
	case err == nil:
		msg.Ack(false)
	case errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrPaymentAlreadySettled):
		log.Printf("[PaymentConsumer] dropping result for booking %d: %v", result.BookingID, err)
		msg.Nack(false, false)
	default:
		log.Printf("[PaymentConsumer] failed to apply result for booking %d: %v", result.BookingID, err)
		msg.Nack(false, true) // requeue
	}
}
