// Package notification is the fire-and-forget sink the fulfillment
// engine reports to. A failed notification never fails or rolls back
// the operation that triggered it.
package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/quickeats/fulfillment-service/internal/apperr"
	"github.com/quickeats/fulfillment-service/internal/model"
	"github.com/quickeats/fulfillment-service/internal/pkg/broker"
	"go.uber.org/zap"
)

// Notifier is what the domain usecases depend on.
type Notifier interface {
	Notify(ctx context.Context, userID, message string)
}

type Repository interface {
	Insert(ctx context.Context, n *model.Notification) error
	ListByUser(ctx context.Context, userID string) ([]model.Notification, error)
	MarkRead(ctx context.Context, userID, id string) (bool, error)
}

type Service struct {
	repo      Repository
	publisher broker.Publisher
	logger    *zap.Logger
}

func NewService(repo Repository, publisher broker.Publisher, log *zap.Logger) *Service {
	return &Service{repo: repo, publisher: publisher, logger: log}
}

type createdEvent struct {
	EventType string    `json:"event_type"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Notify stores the message and fans it out on the broker. Runs in the
// background, detached from the caller's context and transaction.
func (s *Service) Notify(_ context.Context, userID, message string) {
	n := &model.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.repo.Insert(ctx, n); err != nil {
			s.logger.Error("failed to store notification",
				zap.String("user_id", userID), zap.Error(err))
			return
		}

		if s.publisher == nil {
			return
		}
		payload, err := json.Marshal(createdEvent{
			EventType: "NotificationCreated",
			UserID:    userID,
			Message:   message,
			Timestamp: n.CreatedAt,
		})
		if err != nil {
			return
		}
		if err := s.publisher.Publish(ctx, userID, payload); err != nil {
			s.logger.Warn("failed to publish notification event",
				zap.String("user_id", userID), zap.Error(err))
		}
	}()
}

func (s *Service) List(ctx context.Context, userID string) ([]model.Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, userID, id string) error {
	ok, err := s.repo.MarkRead(ctx, userID, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if !ok {
		return apperr.NotFound("notification_not_found", "notification not found")
	}
	return nil
}
