package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrDeliveriesClosed = errors.New("delivery channel closed")

// Consumer is satisfied by *amqp.Channel.
type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// CRMClient mirrors a new lead into the external CRM and returns its id
// there.
type CRMClient interface {
	CreateLead(ctx context.Context, event LeadEvent) (int, error)
}

type AlertSender interface {
	SendNewLeadAlert(ctx context.Context, event LeadEvent) error
}

// Worker consumes lead events. CRM and Alerts are optional; a nil one is
// skipped.
type Worker struct {
	Channel Consumer
	CRM     CRMClient
	Alerts  AlertSender
	Logger  *zap.Logger
}

func NewWorker(ch Consumer, crm CRMClient, alerts AlertSender, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{Channel: ch, CRM: crm, Alerts: alerts, Logger: logger}
}

// Start blocks until ctx is cancelled or the broker closes the delivery
// channel.
func (w *Worker) Start(ctx context.Context) error {
	msgs, err := w.Channel.Consume(
		QueueName,
		"lead-worker",
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	w.Logger.Info("lead worker consuming", zap.String("queue", QueueName))

	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("lead worker stopped")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return ErrDeliveriesClosed
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var event LeadEvent
	if err := json.Unmarshal(d.Body, &event); err != nil || event.Type != EventNewLead {
		w.Logger.Warn("dropping malformed lead event", zap.Error(err), zap.String("type", event.Type))
		w.nack(d)
		return
	}

	log := w.Logger.With(zap.String("lead_id", event.LeadID))
	if err := w.process(ctx, event, log); err != nil {
		log.Error("lead event failed", zap.Error(err))
		w.nack(d)
		return
	}

	if err := d.Ack(false); err != nil {
		log.Warn("ack failed", zap.Error(err))
	}
}

// nack without requeue routes the event to the DLQ.
func (w *Worker) nack(d amqp.Delivery) {
	if err := d.Nack(false, false); err != nil {
		w.Logger.Warn("nack failed", zap.Error(err))
	}
}

// process settles on the CRM outcome alone. The alert is best effort: a
// failed email must not push an already synced lead into the DLQ, where a
// replay would create it in the CRM twice.
func (w *Worker) process(ctx context.Context, event LeadEvent, log *zap.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	if w.CRM != nil {
		g.Go(func() error {
			id, err := w.CRM.CreateLead(gctx, event)
			if err != nil {
				return fmt.Errorf("crm sync: %w", err)
			}
			log.Info("lead synced to crm", zap.Int("crm_lead_id", id))
			return nil
		})
	}

	if w.Alerts != nil {
		g.Go(func() error {
			// ctx, not gctx: a CRM failure should not cancel the email.
			if err := w.Alerts.SendNewLeadAlert(ctx, event); err != nil {
				log.Warn("lead alert failed", zap.Error(err))
				return nil
			}
			log.Info("lead alert sent")
			return nil
		})
	}

	return g.Wait()
}
