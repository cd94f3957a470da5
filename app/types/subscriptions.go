package types

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// CreateSubscriptionRequest is the inbound upsert payload. Fields are kept
// nullable so the validator can report every missing value at once.
type CreateSubscriptionRequest struct {
	UserID         *int64     `json:"user_id"`
	Name           string     `json:"name"`
	Provider       string     `json:"provider"`
	ExpirationDate *time.Time `json:"expiration_date"`
}

func (r *CreateSubscriptionRequest) GetUserID() int64 {
	if r == nil || r.UserID == nil {
		return 0
	}
	return *r.UserID
}

func NewCreateSubscriptionRequestFromContext(ctx echo.Context) (*CreateSubscriptionRequest, error) {
	var body CreateSubscriptionRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.Normalize()
	return &body, nil
}

// Normalize trims the free-text fields. Every transport calls it before the
// request reaches the service.
func (r *CreateSubscriptionRequest) Normalize() {
	if r == nil {
		return
	}
	r.Name = strings.TrimSpace(r.Name)
	r.Provider = strings.TrimSpace(r.Provider)
}

type SubscriptionIDRequest struct {
	ID int64 `json:"id"`
}

func (r *SubscriptionIDRequest) Validate() error {
	if r.ID <= 0 {
		return errors.New("invalid subscription id")
	}
	return nil
}

func NewSubscriptionIDRequestFromContext(ctx echo.Context) (*SubscriptionIDRequest, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return nil, err
	}
	return &SubscriptionIDRequest{ID: id}, nil
}

type ListSubscriptionsRequest struct {
	UserID *int64 `json:"user_id,omitempty"`
}

func NewListSubscriptionsRequestFromContext(ctx echo.Context) (*ListSubscriptionsRequest, error) {
	raw := strings.TrimSpace(ctx.QueryParam("user_id"))
	if raw == "" {
		return &ListSubscriptionsRequest{}, nil
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &ListSubscriptionsRequest{UserID: &userID}, nil
}
