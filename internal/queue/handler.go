package queue

import (
	"context"
	"encoding/json"

	"github.com/transparencia-lab/politigraph/backend/internal/util"
	"github.com/transparencia-lab/politigraph/backend/pkg/logger"
	"github.com/transparencia-lab/politigraph/backend/pkg/network"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rabbitmq/amqp091-go"
)

// refreshMessage is published by the ingestion pipeline after a data load.
type refreshMessage struct {
	CorrelationID string `json:"correlation_id"`
	Source        string `json:"source"`
}

// StartRefreshConsumer consumes refresh messages and flushes the cache so
// the next request recomputes against the reloaded store. It returns after
// the consumer is registered; delivery handling runs until ctx is done.
func StartRefreshConsumer(ctx context.Context, ch *amqp091.Channel, svc *network.Service) error {
	deliveries, err := util.Retry(3, func() (<-chan amqp091.Delivery, error) {
		return ch.Consume(
			RefreshQueue,
			"",    // consumer tag
			false, // autoAck
			false, // exclusive
			false, // noLocal
			false, // noWait
			nil,   // args
		)
	})
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case delivery, open := <-deliveries:
				if !open {
					logger.Warn("[Queue] Refresh consumer channel closed")
					return
				}
				handleRefresh(delivery, svc)
			}
		}
	}()

	logger.Info("[Queue] Refresh consumer started", "queue", RefreshQueue)
	return nil
}

func handleRefresh(delivery amqp091.Delivery, svc *network.Service) {
	var msg refreshMessage
	if err := json.Unmarshal(delivery.Body, &msg); err != nil {
		logger.Warn("[Queue] Dropping malformed refresh message", "err", err)
		_ = delivery.Nack(false, false)
		return
	}
	if msg.CorrelationID == "" {
		msg.CorrelationID, _ = gonanoid.New()
	}

	svc.InvalidateAll()
	logger.Info("[Queue] Cache flushed after store refresh",
		"correlation_id", msg.CorrelationID,
		"source", msg.Source,
	)
	_ = delivery.Ack(false)
}
