package service

import (
	"errors"
	"fmt"

	"github.com/vibast-solutions/ms-go-store-subscriptions/app/validation"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrSubscriptionModified is returned when another writer changed the
	// subscription between the status check and the write.
	ErrSubscriptionModified = errors.New("subscription was modified concurrently")
)

// ValidationError carries every field error found in a request.
type ValidationError struct {
	Result *validation.Result
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Result.String()
}

// SubscriptionError reports a status transition the subscription does not allow.
type SubscriptionError struct {
	ID      int64
	Message string
}

func (e *SubscriptionError) Error() string {
	return e.Message
}

func newCancelNotAllowedError(id int64) *SubscriptionError {
	return &SubscriptionError{ID: id, Message: fmt.Sprintf("Only active subscription %d can be canceled", id)}
}

func newAlreadyExpiredError(id int64) *SubscriptionError {
	return &SubscriptionError{ID: id, Message: fmt.Sprintf("Subscription %d has already expired", id)}
}

func notFound(id int64) error {
	return fmt.Errorf("%w: id %d", ErrSubscriptionNotFound, id)
}
