package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/pytracker/tracker-service/internal/config"
	"github.com/pytracker/tracker-service/internal/events"
	"github.com/pytracker/tracker-service/internal/persistence"
)

// NotificationService logs domain events and, when Redis is configured,
// fans them out on a pub/sub channel for external consumers.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	redis      *persistence.Redis
	channel    string
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, redis *persistence.Redis, cfg config.RedisConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		redis:      redis,
		channel:    cfg.EventChannel,
	}
}

// RegisterHandlers subscribes to all event types.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	events.SubscribeAll(n.dispatcher, n.handleEvent)
}

func (n *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	n.logger.Info("domain event",
		zap.String("type", string(event.Type)),
		zap.String("entity_id", event.EntityID),
		zap.Any("payload", event.Payload))
	n.publishToRedis(ctx, event)
	return nil
}

func (n *NotificationService) publishToRedis(ctx context.Context, event events.Event) {
	if n.redis == nil || n.redis.Client == nil {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		n.logger.Warn("encode event", zap.Error(err))
		return
	}
	if err := n.redis.Client.Publish(ctx, n.channel, body).Err(); err != nil {
		n.logger.Warn("publish event to redis", zap.Error(err))
	}
}
