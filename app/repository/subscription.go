package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vibast-solutions/ms-go-store-subscriptions/app/entity"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrSubscriptionStale means the row no longer holds the status the caller read.
	ErrSubscriptionStale = errors.New("subscription status changed")
)

const subscriptionColumns = `id, user_id, name, provider, expiration_date, status`

type SubscriptionRepository struct {
	db DBTX
}

func NewSubscriptionRepository(db DBTX) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) FindAll(ctx context.Context) ([]*entity.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		ORDER BY id ASC
	`

	return r.listByQuery(ctx, query)
}

func (r *SubscriptionRepository) FindByID(ctx context.Context, id int64) (*entity.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE id = ?
	`

	item := &entity.Subscription{}
	if err := scanSubscription(r.db.QueryRowContext(ctx, query, id), item); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return item, nil
}

func (r *SubscriptionRepository) FindByUserID(ctx context.Context, userID int64) ([]*entity.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE user_id = ?
		ORDER BY id ASC
	`

	return r.listByQuery(ctx, query, userID)
}

func (r *SubscriptionRepository) ListActiveExpiredBefore(ctx context.Context, now time.Time) ([]*entity.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE status = ?
		  AND expiration_date < ?
		ORDER BY id ASC
	`

	return r.listByQuery(ctx, query, entity.StatusActive.String(), timeValue(now))
}

// Insert assigns the generated id to subscription and returns it.
func (r *SubscriptionRepository) Insert(ctx context.Context, subscription *entity.Subscription) (*entity.Subscription, error) {
	query := `
		INSERT INTO subscriptions (user_id, name, provider, expiration_date, status)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		subscription.UserID,
		subscription.Name,
		subscription.Provider.String(),
		timeValue(subscription.ExpirationDate),
		subscription.Status.String(),
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	subscription.ID = id
	return subscription, nil
}

// Update overwrites every column of the row identified by subscription.ID.
func (r *SubscriptionRepository) Update(ctx context.Context, subscription *entity.Subscription) (*entity.Subscription, error) {
	query := `
		UPDATE subscriptions
		SET user_id = ?, name = ?, provider = ?, expiration_date = ?, status = ?
		WHERE id = ?
	`

	affected, err := r.exec(ctx, query,
		subscription.UserID,
		subscription.Name,
		subscription.Provider.String(),
		timeValue(subscription.ExpirationDate),
		subscription.Status.String(),
		subscription.ID,
	)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrSubscriptionNotFound
	}

	return subscription, nil
}

// UpdateFromStatus is Update guarded by the status the caller last read. It
// returns ErrSubscriptionStale when the row exists but its status moved on,
// and ErrSubscriptionNotFound when the row is gone.
func (r *SubscriptionRepository) UpdateFromStatus(ctx context.Context, subscription *entity.Subscription, from entity.Status) (*entity.Subscription, error) {
	query := `
		UPDATE subscriptions
		SET user_id = ?, name = ?, provider = ?, expiration_date = ?, status = ?
		WHERE id = ?
		  AND status = ?
	`

	affected, err := r.exec(ctx, query,
		subscription.UserID,
		subscription.Name,
		subscription.Provider.String(),
		timeValue(subscription.ExpirationDate),
		subscription.Status.String(),
		subscription.ID,
		from.String(),
	)
	if err != nil {
		return nil, err
	}
	if affected > 0 {
		return subscription, nil
	}

	current, err := r.FindByID(ctx, subscription.ID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrSubscriptionNotFound
	}
	return nil, ErrSubscriptionStale
}

// Upsert inserts subscriptions that have no id yet and updates the rest.
func (r *SubscriptionRepository) Upsert(ctx context.Context, subscription *entity.Subscription) (*entity.Subscription, error) {
	if !subscription.IsPersisted() {
		return r.Insert(ctx, subscription)
	}
	return r.Update(ctx, subscription)
}

func (r *SubscriptionRepository) Delete(ctx context.Context, id int64) (bool, error) {
	affected, err := r.exec(ctx, `DELETE FROM subscriptions WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *SubscriptionRepository) exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *SubscriptionRepository) listByQuery(ctx context.Context, query string, args ...interface{}) ([]*entity.Subscription, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*entity.Subscription, 0)
	for rows.Next() {
		item := &entity.Subscription{}
		if err := scanSubscription(rows, item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func scanSubscription(scanner rowScanner, item *entity.Subscription) error {
	var provider string
	var status string
	var expirationDate dbTime

	err := scanner.Scan(
		&item.ID,
		&item.UserID,
		&item.Name,
		&provider,
		&expirationDate,
		&status,
	)
	if err != nil {
		return err
	}

	item.Provider = entity.Provider(provider)
	item.Status = entity.Status(status)
	item.ExpirationDate = expirationDate.Time

	return nil
}
