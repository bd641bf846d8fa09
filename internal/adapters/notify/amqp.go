package notify

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"checkin_syria/internal/adapters/observability"
	"checkin_syria/internal/domain"
)

const RoutingKeyConfirmed = "booking.confirmed"

// Channel is the subset of *amqp.Channel the publisher needs.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher sends booking events to a RabbitMQ topic exchange.
type Publisher struct {
	conn     *amqp.Connection
	ch       Channel
	exchange string
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// NewPublisherWithChannel wraps an already-open channel.
func NewPublisherWithChannel(ch Channel, exchange string) *Publisher {
	return &Publisher{ch: ch, exchange: exchange}
}

type confirmedEvent struct {
	SubmissionID    string  `json:"submission_id"`
	RoomID          string  `json:"room_id"`
	RoomName        string  `json:"room_name"`
	HotelName       string  `json:"hotel_name,omitempty"`
	GuestName       string  `json:"guest_name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	Guests          int     `json:"guests"`
	CheckIn         string  `json:"check_in"`
	CheckOut        string  `json:"check_out"`
	Total           float64 `json:"total"`
	SpecialRequests string  `json:"special_requests,omitempty"`
	ConfirmedAt     int64   `json:"confirmed_at"`
}

func (p *Publisher) BookingConfirmed(ctx context.Context, c domain.Confirmation, d domain.Draft) error {
	observability.ObserveConfirmation()
	b, err := json.Marshal(confirmedEvent{
		SubmissionID:    c.SubmissionID,
		RoomID:          c.RoomID,
		RoomName:        c.RoomName,
		HotelName:       c.HotelName,
		GuestName:       d.FirstName + " " + d.LastName,
		Email:           d.Email,
		Phone:           d.Phone,
		Guests:          c.Guests,
		CheckIn:         c.CheckIn.String(),
		CheckOut:        c.CheckOut.String(),
		Total:           c.Total,
		SpecialRequests: d.SpecialRequests,
		ConfirmedAt:     c.ConfirmedAt.Unix(),
	})
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, p.exchange, RoutingKeyConfirmed, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    c.SubmissionID,
		Body:         b,
	})
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
