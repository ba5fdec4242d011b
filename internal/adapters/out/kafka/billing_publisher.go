// Package kafka publishes billing lifecycle events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"freight/internal/core/domain/model/billing"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

// messageWriter is the part of *kafkago.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Config selects the brokers and topic of the billing event stream.
type Config struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// BillingEventPublisher implements ports.BillingEventPublisher.
// Every event is keyed by billing id so that the events of one billing keep
// their order within a partition.
type BillingEventPublisher struct {
	writer  messageWriter
	topic   string
	timeout time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

// NewBillingEventPublisher connects a writer to cfg.Brokers. The connection
// is lazy; no broker is contacted until the first publish.
func NewBillingEventPublisher(cfg Config, logger *slog.Logger) (*BillingEventPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errs.NewValueIsRequiredError("kafka brokers")
	}

	writer := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.Brokers...),
		Balancer:               &kafkago.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafkago.RequireAll,
	}
	if cfg.WriteTimeout > 0 {
		writer.WriteTimeout = cfg.WriteTimeout
	}

	return NewBillingEventPublisherWithWriter(writer, cfg.Topic, cfg.WriteTimeout, logger)
}

// NewBillingEventPublisherWithWriter builds a publisher on an existing writer.
func NewBillingEventPublisherWithWriter(
	writer messageWriter,
	topic string,
	timeout time.Duration,
	logger *slog.Logger,
) (*BillingEventPublisher, error) {
	if writer == nil {
		return nil, errs.NewValueIsRequiredError("writer")
	}
	if topic == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &BillingEventPublisher{
		writer:  writer,
		topic:   topic,
		timeout: timeout,
		logger:  logger.With("component", "BillingEventPublisher"),
		now:     time.Now,
	}, nil
}

// Publish writes one event. It blocks until the brokers acknowledge or the
// write timeout passes.
func (p *BillingEventPublisher) Publish(ctx context.Context, eventType ports.BillingEventType, b *billing.Billing) error {
	if b == nil {
		return errs.NewValueIsRequiredError("billing")
	}

	value, err := json.Marshal(newBillingEvent(eventType, b, p.now().UTC()))
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	msg := kafkago.Message{
		Topic: p.topic,
		Key:   []byte(b.ID().String()),
		Value: value,
		Headers: []kafkago.Header{
			{Key: "event-type", Value: []byte(eventType)},
		},
	}
	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}

	p.logger.DebugContext(ctx, "billing event published",
		"event", string(eventType),
		"billingID", b.ID().String(),
	)
	return nil
}

// Close flushes pending writes and releases broker connections.
func (p *BillingEventPublisher) Close() error {
	return p.writer.Close()
}

type billingEvent struct {
	EventType     string          `json:"eventType"`
	OccurredAt    time.Time       `json:"occurredAt"`
	BillingID     string          `json:"billingId"`
	OrderID       string          `json:"orderId"`
	AccountID     string          `json:"accountId"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"paymentStatus"`
	TotalThb      decimal.Decimal `json:"totalThb"`
	TotalKrw      decimal.Decimal `json:"totalKrw"`
	ExchangeRate  decimal.Decimal `json:"exchangeRate"`
	RateSource    string          `json:"rateSource"`
	FinalizedAt   *time.Time      `json:"finalizedAt,omitempty"`
	Payment       *paymentEvent   `json:"payment,omitempty"`
	Version       int64           `json:"version"`
}

type paymentEvent struct {
	Method        string    `json:"method"`
	Reference     string    `json:"reference,omitempty"`
	DepositorName string    `json:"depositorName,omitempty"`
	PaidAt        time.Time `json:"paidAt"`
}

func newBillingEvent(eventType ports.BillingEventType, b *billing.Billing, occurredAt time.Time) billingEvent {
	snapshot := b.Snapshot()
	event := billingEvent{
		EventType:     string(eventType),
		OccurredAt:    occurredAt,
		BillingID:     b.ID().String(),
		OrderID:       b.OrderID().String(),
		AccountID:     b.AccountID().String(),
		Status:        b.Status().String(),
		PaymentStatus: b.PaymentStatus().String(),
		TotalThb:      snapshot.TotalThb(),
		TotalKrw:      snapshot.TotalKrw(),
		ExchangeRate:  snapshot.ExchangeRate().Rate(),
		RateSource:    snapshot.ExchangeRate().Source().String(),
		FinalizedAt:   b.FinalizedAt(),
		Version:       b.Version(),
	}

	if payment := b.Payment(); payment != nil {
		event.Payment = &paymentEvent{
			Method:        payment.Method().String(),
			Reference:     payment.Reference(),
			DepositorName: payment.DepositorName(),
			PaidAt:        payment.PaidAt(),
		}
	}

	return event
}
