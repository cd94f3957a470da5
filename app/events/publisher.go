package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/entity"
)

type Type string

const (
	TypeSubscriptionCreated  Type = "subscription.created"
	TypeSubscriptionCanceled Type = "subscription.canceled"
	TypeSubscriptionExpired  Type = "subscription.expired"
)

type Event struct {
	Type           Type      `json:"type"`
	SubscriptionID int64     `json:"subscription_id"`
	UserID         int64     `json:"user_id"`
	Provider       string    `json:"provider"`
	Status         string    `json:"status"`
	ExpirationDate time.Time `json:"expiration_date"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func NewSubscriptionEvent(eventType Type, subscription *entity.Subscription, occurredAt time.Time) Event {
	return Event{
		Type:           eventType,
		SubscriptionID: subscription.ID,
		UserID:         subscription.UserID,
		Provider:       subscription.Provider.String(),
		Status:         subscription.Status.String(),
		ExpirationDate: subscription.ExpirationDate.UTC(),
		OccurredAt:     occurredAt.UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error {
	return nil
}

type channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPPublisher sends events as persistent JSON messages routed by event type.
type AMQPPublisher struct {
	ch       channel
	exchange string
}

func NewAMQPPublisher(ch channel, exchange string) *AMQPPublisher {
	return &AMQPPublisher{ch: ch, exchange: exchange}
}

func (p *AMQPPublisher) Publish(ctx context.Context, event Event) error {
	const op = "events.Publish"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = p.ch.Publish(
		p.exchange,
		string(event.Type),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			Type:         string(event.Type),
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
