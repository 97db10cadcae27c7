package events

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/acacia-hms/service-frontdesk/internal/platform/kafka"
)

// CheckoutTaskCreator opens a cleaning task for a room that was just vacated.
type CheckoutTaskCreator interface {
	CreateCheckoutTask(ctx context.Context, roomID uuid.UUID, roomNumber string) error
}

// CheckoutEventConsumer listens to booking events and opens a housekeeping
// cleaning task whenever a guest checks out.
type CheckoutEventConsumer struct {
	consumer *kafka.Consumer
	tasks    CheckoutTaskCreator
	logger   *zap.Logger
}

// NewCheckoutEventConsumer creates a new CheckoutEventConsumer.
func NewCheckoutEventConsumer(
	brokers []string,
	groupID string,
	tasks CheckoutTaskCreator,
	logger *zap.Logger,
) *CheckoutEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, TopicBookingEvents, logger)
	return &CheckoutEventConsumer{
		consumer: consumer,
		tasks:    tasks,
		logger:   logger,
	}
}

// Start begins consuming booking events. This blocks until the context is cancelled.
func (c *CheckoutEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *CheckoutEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *CheckoutEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent kafka.CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from booking topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case BookingCheckedOut:
		return c.handleCheckedOut(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled booking event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *CheckoutEventConsumer) handleCheckedOut(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt BookingCheckedOutEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse BookingCheckedOutEvent data",
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}

	c.logger.Info("processing checkout event",
		zap.String("booking_id", evt.BookingID.String()),
		zap.String("room_number", evt.RoomNumber),
	)

	if err := c.tasks.CreateCheckoutTask(ctx, evt.RoomID, evt.RoomNumber); err != nil {
		c.logger.Error("failed to create cleaning task after checkout",
			zap.String("room_id", evt.RoomID.String()),
			zap.Error(err),
		)
		return err
	}

	c.logger.Info("cleaning task created after checkout",
		zap.String("room_id", evt.RoomID.String()),
	)
	return nil
}
