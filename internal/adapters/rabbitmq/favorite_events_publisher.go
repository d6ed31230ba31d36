package rabbitmq

import (
	"context"
	"discovery-service/internal/constants"
	"discovery-service/internal/contextkeys"
	"discovery-service/internal/contracts"
	"discovery-service/internal/core/domain"
	"discovery-service/internal/core/port"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	favoriteChangedEventType    = "FavoriteChangedEvent"
	favoriteChangedEventVersion = "1.0.0"
	publishTimeout              = 10 * time.Second
)

// MessagePublisher - часть rabbitmq_producer.Publisher, нужная адаптеру
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// FavoriteChangedEventDTO - тело события, см. схему favorite-changed/v1
type FavoriteChangedEventDTO struct {
	EventID    uuid.UUID `json:"event_id"`
	UserID     uuid.UUID `json:"user_id"`
	VendorID   uuid.UUID `json:"vendor_id"`
	VendorType string    `json:"vendor_type"`
	IsFavorite bool      `json:"is_favorite"`
	ChangedAt  time.Time `json:"changed_at"`
}

// FavoriteEventsPublisher реализует port.FavoriteEventsPort
type FavoriteEventsPublisher struct {
	producer   MessagePublisher
	routingKey string
}

func NewFavoriteEventsPublisher(producer MessagePublisher, routingKey string) (*FavoriteEventsPublisher, error) {
	if producer == nil {
		return nil, fmt.Errorf("producer cannot be nil")
	}
	if routingKey == "" {
		routingKey = constants.RoutingKeyFavoriteChanged
	}
	return &FavoriteEventsPublisher{producer: producer, routingKey: routingKey}, nil
}

func (a *FavoriteEventsPublisher) PublishFavoriteChanged(ctx context.Context, change domain.FavoriteChange) error {
	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component":   "FavoriteEventsPublisher",
		"routing_key": a.routingKey,
		"vendor_id":   change.VendorID,
	})

	event := FavoriteChangedEventDTO{
		EventID:    uuid.New(),
		UserID:     change.UserID,
		VendorID:   change.VendorID,
		VendorType: string(change.VendorType),
		IsFavorite: change.IsFavorite,
		ChangedAt:  change.ChangedAt.UTC(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		adapterLogger.Error("Failed to marshal favorite event", err, nil)
		return fmt.Errorf("failed to marshal favorite event: %w", err)
	}

	if err := contracts.ValidateEvent(favoriteChangedEventType, favoriteChangedEventVersion, body); err != nil {
		adapterLogger.Error("Favorite event does not match its contract", err, nil)
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		MessageId:    event.EventID.String(),
		Headers: amqp.Table{
			constants.HeaderEventType:    favoriteChangedEventType,
			constants.HeaderEventVersion: favoriteChangedEventVersion,
		},
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers[constants.HeaderTraceID] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish favorite event", err, nil)
		return err
	}

	adapterLogger.Debug("Favorite event published", port.Fields{"event_id": event.EventID})
	return nil
}
