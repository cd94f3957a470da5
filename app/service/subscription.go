package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/clock"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/entity"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/events"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/factory"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/metrics"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/repository"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/types"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/validation"
)

type subscriptionRepository interface {
	FindAll(ctx context.Context) ([]*entity.Subscription, error)
	FindByID(ctx context.Context, id int64) (*entity.Subscription, error)
	FindByUserID(ctx context.Context, userID int64) ([]*entity.Subscription, error)
	ListActiveExpiredBefore(ctx context.Context, now time.Time) ([]*entity.Subscription, error)
	Upsert(ctx context.Context, subscription *entity.Subscription) (*entity.Subscription, error)
	UpdateFromStatus(ctx context.Context, subscription *entity.Subscription, from entity.Status) (*entity.Subscription, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type createSubscriptionValidator interface {
	Validate(req *types.CreateSubscriptionRequest) *validation.Result
}

type createSubscriptionMapper interface {
	Map(req *types.CreateSubscriptionRequest) (*entity.Subscription, error)
}

type Option func(*SubscriptionService)

func WithPublisher(publisher events.Publisher) Option {
	return func(s *SubscriptionService) {
		s.publisher = publisher
	}
}

func WithMetrics(recorder *metrics.Recorder) Option {
	return func(s *SubscriptionService) {
		s.metrics = recorder
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *SubscriptionService) {
		s.logger = logger
	}
}

type SubscriptionService struct {
	repo      subscriptionRepository
	validator createSubscriptionValidator
	mapper    createSubscriptionMapper
	clock     clock.Clock
	publisher events.Publisher
	metrics   *metrics.Recorder
	logger    logrus.FieldLogger
}

func NewSubscriptionService(
	repo subscriptionRepository,
	validator createSubscriptionValidator,
	mapper createSubscriptionMapper,
	c clock.Clock,
	opts ...Option,
) *SubscriptionService {
	s := &SubscriptionService{
		repo:      repo,
		validator: validator,
		mapper:    mapper,
		clock:     c,
		publisher: events.NoopPublisher{},
		logger:    factory.NewModuleLogger("subscription_service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upsert validates req and persists it. A user that already owns a
// subscription gets that record back unchanged; the request's fields are
// only used for a user's first subscription.
func (s *SubscriptionService) Upsert(ctx context.Context, req *types.CreateSubscriptionRequest) (item *entity.Subscription, err error) {
	defer func() { s.metrics.ObserveOperation("upsert", err) }()

	if result := s.validator.Validate(req); result.HasErrors() {
		return nil, &ValidationError{Result: result}
	}

	existing, err := s.repo.FindByUserID(ctx, *req.UserID)
	if err != nil {
		return nil, fmt.Errorf("find subscriptions of user %d: %w", *req.UserID, err)
	}

	created := len(existing) == 0
	if created {
		item, err = s.mapper.Map(req)
		if err != nil {
			return nil, err
		}
	} else {
		item = existing[0]
	}

	id := item.ID
	item, err = s.repo.Upsert(ctx, item)
	if err != nil {
		if errors.Is(err, repository.ErrSubscriptionNotFound) {
			return nil, notFound(id)
		}
		return nil, fmt.Errorf("upsert subscription: %w", err)
	}

	if created {
		s.publish(ctx, events.TypeSubscriptionCreated, item)
	}
	return item, nil
}

// Cancel moves an ACTIVE subscription to CANCELED.
func (s *SubscriptionService) Cancel(ctx context.Context, id int64) (item *entity.Subscription, err error) {
	defer func() { s.metrics.ObserveOperation("cancel", err) }()

	current, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanCancel() {
		return nil, newCancelNotAllowedError(id)
	}

	next := current.Clone()
	next.Status = entity.StatusCanceled
	if item, err = s.transition(ctx, next, current.Status); err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeSubscriptionCanceled, item)
	return item, nil
}

// Expire moves a subscription that is not yet EXPIRED to EXPIRED and stamps
// the expiration date with the current time.
func (s *SubscriptionService) Expire(ctx context.Context, id int64) (item *entity.Subscription, err error) {
	defer func() { s.metrics.ObserveOperation("expire", err) }()

	current, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if item, err = s.expire(ctx, current); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *SubscriptionService) Get(ctx context.Context, id int64) (item *entity.Subscription, err error) {
	defer func() { s.metrics.ObserveOperation("get", err) }()
	return s.find(ctx, id)
}

// List returns every subscription, or only those of userID when it is set.
func (s *SubscriptionService) List(ctx context.Context, userID *int64) (items []*entity.Subscription, err error) {
	defer func() { s.metrics.ObserveOperation("list", err) }()

	if userID != nil {
		items, err = s.repo.FindByUserID(ctx, *userID)
	} else {
		items, err = s.repo.FindAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return items, nil
}

func (s *SubscriptionService) Delete(ctx context.Context, id int64) (deleted bool, err error) {
	defer func() { s.metrics.ObserveOperation("delete", err) }()

	deleted, err = s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete subscription %d: %w", id, err)
	}
	return deleted, nil
}

// RunExpirationBatch expires every ACTIVE subscription whose expiration date
// has passed. Per-item failures are logged and skipped.
func (s *SubscriptionService) RunExpirationBatch(ctx context.Context) (int, error) {
	items, err := s.repo.ListActiveExpiredBefore(ctx, s.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("list expired subscriptions: %w", err)
	}

	expired := 0
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			s.metrics.AddExpired(expired)
			return expired, err
		}
		if _, err := s.expire(ctx, item); err != nil {
			s.logger.WithError(err).WithField("subscription_id", item.ID).Warn("Failed to expire subscription")
			continue
		}
		expired++
	}

	s.metrics.AddExpired(expired)
	return expired, nil
}

func (s *SubscriptionService) expire(ctx context.Context, current *entity.Subscription) (*entity.Subscription, error) {
	if !current.Status.CanExpire() {
		return nil, newAlreadyExpiredError(current.ID)
	}

	next := current.Clone()
	next.Status = entity.StatusExpired
	next.ExpirationDate = s.clock.Now().UTC().Truncate(time.Second)

	item, err := s.transition(ctx, next, current.Status)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeSubscriptionExpired, item)
	return item, nil
}

func (s *SubscriptionService) find(ctx context.Context, id int64) (*entity.Subscription, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find subscription %d: %w", id, err)
	}
	if item == nil {
		return nil, notFound(id)
	}
	return item, nil
}

func (s *SubscriptionService) transition(ctx context.Context, next *entity.Subscription, from entity.Status) (*entity.Subscription, error) {
	item, err := s.repo.UpdateFromStatus(ctx, next, from)
	switch {
	case err == nil:
		return item, nil
	case errors.Is(err, repository.ErrSubscriptionStale):
		return nil, fmt.Errorf("%w: id %d", ErrSubscriptionModified, next.ID)
	case errors.Is(err, repository.ErrSubscriptionNotFound):
		return nil, notFound(next.ID)
	default:
		return nil, fmt.Errorf("update subscription %d: %w", next.ID, err)
	}
}

func (s *SubscriptionService) publish(ctx context.Context, eventType events.Type, item *entity.Subscription) {
	event := events.NewSubscriptionEvent(eventType, item, s.clock.Now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"event":           eventType,
			"subscription_id": item.ID,
		}).Warn("Failed to publish subscription event")
	}
}
