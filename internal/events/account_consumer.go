package events

import (
	"context"
	"errors"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/roomfinder/service-rooms/internal/platform/domain"
	"github.com/roomfinder/service-rooms/internal/platform/kafka"
	"github.com/roomfinder/service-rooms/internal/proto/events"
)

// AccountCloser purges an account and everything it owns.
// *application.AccountService satisfies it.
type AccountCloser interface {
	CloseAccount(ctx context.Context, userID uuid.UUID) error
}

// AccountEventConsumer listens to identity events and purges closed accounts.
type AccountEventConsumer struct {
	consumer *kafka.Consumer
	accounts AccountCloser
	logger   *zap.Logger
}

// NewAccountEventConsumer creates a new AccountEventConsumer.
func NewAccountEventConsumer(
	brokers []string,
	groupID string,
	accounts AccountCloser,
	logger *zap.Logger,
) *AccountEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, events.TopicAccountEvents, logger)
	return &AccountEventConsumer{
		consumer: consumer,
		accounts: accounts,
		logger:   logger,
	}
}

// Start begins consuming account events. This blocks until the context is cancelled.
func (c *AccountEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *AccountEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *AccountEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from account topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case events.AccountClosed:
		return c.handleAccountClosed(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled account event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *AccountEventConsumer) handleAccountClosed(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt events.AccountClosedEvent
	if err := cloudEvent.ParseData(&evt); err != nil || evt.UserID == uuid.Nil {
		c.logger.Error("failed to parse AccountClosedEvent data",
			zap.String("event_id", cloudEvent.ID),
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}

	c.logger.Info("processing account closed event",
		zap.String("user_id", evt.UserID.String()),
	)

	if err := c.accounts.CloseAccount(ctx, evt.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.logger.Info("account already removed",
				zap.String("user_id", evt.UserID.String()),
			)
			return nil
		}
		c.logger.Error("failed to purge closed account",
			zap.String("user_id", evt.UserID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}
