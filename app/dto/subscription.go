package dto

type SubscriptionResponse struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"user_id"`
	Name           string `json:"name"`
	Provider       string `json:"provider"`
	ExpirationDate string `json:"expiration_date"`
	Status         string `json:"status"`
}

type SubscriptionEnvelopeResponse struct {
	Subscription SubscriptionResponse `json:"subscription"`
}

type ListSubscriptionsResponse struct {
	Subscriptions []SubscriptionResponse `json:"subscriptions"`
}

type MessageWithSubscriptionResponse struct {
	Message      string               `json:"message"`
	Subscription SubscriptionResponse `json:"subscription"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type FieldErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error  string               `json:"error"`
	Errors []FieldErrorResponse `json:"errors,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
