package mapper

import (
	"fmt"
	"time"

	"github.com/vibast-solutions/ms-go-store-subscriptions/app/dto"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/entity"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/types"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/validation"
)

type CreateSubscriptionMapper struct{}

func NewCreateSubscriptionMapper() *CreateSubscriptionMapper {
	return &CreateSubscriptionMapper{}
}

// Map expects a request that already passed validation; new subscriptions
// always start ACTIVE. The expiration date is cut to whole seconds to match
// the DATETIME column.
func (m *CreateSubscriptionMapper) Map(req *types.CreateSubscriptionRequest) (*entity.Subscription, error) {
	if req == nil {
		return nil, fmt.Errorf("map subscription: nil request")
	}
	provider, ok := entity.ParseProvider(req.Provider)
	if !ok {
		return nil, fmt.Errorf("map subscription: unknown provider %q", req.Provider)
	}

	item := &entity.Subscription{
		UserID:   req.GetUserID(),
		Name:     req.Name,
		Provider: provider,
		Status:   entity.StatusActive,
	}
	if req.ExpirationDate != nil {
		item.ExpirationDate = req.ExpirationDate.UTC().Truncate(time.Second)
	}
	return item, nil
}

func SubscriptionToResponse(item *entity.Subscription) dto.SubscriptionResponse {
	if item == nil {
		return dto.SubscriptionResponse{}
	}

	return dto.SubscriptionResponse{
		ID:             item.ID,
		UserID:         item.UserID,
		Name:           item.Name,
		Provider:       item.Provider.String(),
		ExpirationDate: item.ExpirationDate.UTC().Format(time.RFC3339),
		Status:         item.Status.String(),
	}
}

func SubscriptionsToResponse(items []*entity.Subscription) []dto.SubscriptionResponse {
	result := make([]dto.SubscriptionResponse, 0, len(items))
	for _, item := range items {
		result = append(result, SubscriptionToResponse(item))
	}
	return result
}

func ValidationErrorsToResponse(result *validation.Result) []dto.FieldErrorResponse {
	errs := result.Errors()
	out := make([]dto.FieldErrorResponse, 0, len(errs))
	for _, e := range errs {
		out = append(out, dto.FieldErrorResponse{Code: e.Code, Message: e.Message})
	}
	return out
}
