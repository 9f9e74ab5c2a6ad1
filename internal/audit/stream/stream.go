// Package stream mirrors audit entries to a Kafka topic for downstream
// compliance consumers. The publisher is optional: a nil *Publisher is a
// valid no-op sink, so services emit unconditionally.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"ayushdesk/internal/domain"
)

// Publisher produces audit records to a single topic, keyed by user id so a
// user's trail stays ordered within a partition.
type Publisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// record is the wire shape written to the topic.
type record struct {
	UserID  string             `json:"userId"`
	At      time.Time          `json:"at"`
	Actor   string             `json:"actor"`
	Action  domain.AuditAction `json:"action"`
	Details string             `json:"details"`
}

// New connects to the given brokers and ensures the topic exists. Returns an
// error rather than a degraded publisher; callers decide whether a missing
// broker is fatal.
func New(ctx context.Context, brokers []string, topic string, logger *slog.Logger) (*Publisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	if err := ensureTopic(ctx, client, topic); err != nil {
		client.Close()
		return nil, err
	}
	return &Publisher{client: client, topic: topic, logger: logger}, nil
}

func ensureTopic(ctx context.Context, client *kgo.Client, topic string) error {
	adm := kadm.NewClient(client)
	resp, err := adm.CreateTopics(ctx, 1, 1, nil, topic)
	if err != nil {
		return fmt.Errorf("create topic %q: %w", topic, err)
	}
	for _, res := range resp {
		if res.Err != nil && !errors.Is(res.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %q: %w", topic, res.Err)
		}
	}
	return nil
}

// Emit publishes one audit entry asynchronously. Publish failures are logged
// and never fail the originating mutation: the in-store trail is the source
// of truth, the stream is a mirror.
func (p *Publisher) Emit(ctx context.Context, userID string, entry domain.AuditEntry) {
	if p == nil {
		return
	}
	value, err := json.Marshal(record{
		UserID:  userID,
		At:      entry.At,
		Actor:   entry.Actor,
		Action:  entry.Action,
		Details: entry.Details,
	})
	if err != nil {
		p.logger.ErrorContext(ctx, "marshal audit record", "error", err)
		return
	}
	p.client.Produce(ctx, &kgo.Record{Topic: p.topic, Key: []byte(userID), Value: value}, func(_ *kgo.Record, err error) {
		if err != nil {
			p.logger.WarnContext(ctx, "audit stream publish failed", "user_id", userID, "error", err)
		}
	})
}

// Close flushes pending records and releases the client.
func (p *Publisher) Close(ctx context.Context) {
	if p == nil {
		return
	}
	if err := p.client.Flush(ctx); err != nil {
		p.logger.Warn("audit stream flush failed", "error", err)
	}
	p.client.Close()
}
