package grpc

import (
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/dto"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/types"
)

type UpsertSubscriptionRequest = types.CreateSubscriptionRequest

type SubscriptionIDRequest = types.SubscriptionIDRequest

type ListSubscriptionsRequest = types.ListSubscriptionsRequest

type SubscriptionResponse = dto.SubscriptionEnvelopeResponse

type ListSubscriptionsResponse = dto.ListSubscriptionsResponse

type DeleteSubscriptionResponse struct {
	Deleted bool `json:"deleted"`
}
