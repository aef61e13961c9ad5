package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/nhfg-leads/internal/entity"
	"github.com/xavierca1/nhfg-leads/internal/normalizer"
)

const EventNewLead = "NEW_LEAD"

// LeadEvent is broadcast once per stored lead, whatever its origin.
type LeadEvent struct {
	Type       string    `json:"type"`
	LeadID     string    `json:"lead_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Interest   string    `json:"interest,omitempty"`
	Source     string    `json:"source,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewLeadEvent(lead *entity.Lead, now time.Time) LeadEvent {
	return LeadEvent{
		Type:       EventNewLead,
		LeadID:     lead.ID,
		Name:       lead.Name,
		Email:      contactValue(lead.Email),
		Phone:      contactValue(lead.Phone),
		Interest:   deref(lead.Interest),
		Source:     deref(lead.Source),
		OccurredAt: now.UTC(),
	}
}

// contactValue drops the normalizer's fill-in values so downstream sinks
// never treat them as a reachable phone or address.
func contactValue(s *string) string {
	if s == nil || normalizer.IsPlaceholder(*s) {
		return ""
	}
	return *s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Publisher is satisfied by *amqp.Channel.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch  Publisher
	now func() time.Time
}

func NewProducer(ch Publisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch, now: time.Now}
}

func (p *RabbitMQProducer) PublishLeadCreated(ctx context.Context, lead *entity.Lead) error {
	body, err := json.Marshal(NewLeadEvent(lead, p.now()))
	if err != nil {
		return fmt.Errorf("encode lead event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         EventNewLead,
			MessageId:    lead.ID,
			Timestamp:    p.now().UTC(),
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish lead event: %w", err)
	}

	return nil
}
