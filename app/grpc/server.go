package grpc

import (
	"context"
	"errors"

	"github.com/vibast-solutions/ms-go-store-subscriptions/app/mapper"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/service"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/validation"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var violationFields = map[int]string{
	validation.CodeInvalidUserID:         "user_id",
	validation.CodeInvalidName:           "name",
	validation.CodeInvalidProvider:       "provider",
	validation.CodeInvalidExpirationDate: "expiration_date",
}

type Server struct {
	subscriptionService *service.SubscriptionService
}

func NewServer(subscriptionService *service.SubscriptionService) *Server {
	return &Server{subscriptionService: subscriptionService}
}

func (s *Server) Upsert(ctx context.Context, req *UpsertSubscriptionRequest) (*SubscriptionResponse, error) {
	req.Normalize()
	item, err := s.subscriptionService.Upsert(ctx, req)
	if err != nil {
		return nil, toStatusError(ctx, err, "Upsert subscription failed")
	}
	return &SubscriptionResponse{Subscription: mapper.SubscriptionToResponse(item)}, nil
}

func (s *Server) Get(ctx context.Context, req *SubscriptionIDRequest) (*SubscriptionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	item, err := s.subscriptionService.Get(ctx, req.ID)
	if err != nil {
		return nil, toStatusError(ctx, err, "Get subscription failed")
	}
	return &SubscriptionResponse{Subscription: mapper.SubscriptionToResponse(item)}, nil
}

func (s *Server) List(ctx context.Context, req *ListSubscriptionsRequest) (*ListSubscriptionsResponse, error) {
	items, err := s.subscriptionService.List(ctx, req.UserID)
	if err != nil {
		return nil, toStatusError(ctx, err, "List subscriptions failed")
	}
	return &ListSubscriptionsResponse{Subscriptions: mapper.SubscriptionsToResponse(items)}, nil
}

func (s *Server) Cancel(ctx context.Context, req *SubscriptionIDRequest) (*SubscriptionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	item, err := s.subscriptionService.Cancel(ctx, req.ID)
	if err != nil {
		return nil, toStatusError(ctx, err, "Cancel subscription failed")
	}
	return &SubscriptionResponse{Subscription: mapper.SubscriptionToResponse(item)}, nil
}

func (s *Server) Expire(ctx context.Context, req *SubscriptionIDRequest) (*SubscriptionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	item, err := s.subscriptionService.Expire(ctx, req.ID)
	if err != nil {
		return nil, toStatusError(ctx, err, "Expire subscription failed")
	}
	return &SubscriptionResponse{Subscription: mapper.SubscriptionToResponse(item)}, nil
}

func (s *Server) Delete(ctx context.Context, req *SubscriptionIDRequest) (*DeleteSubscriptionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	deleted, err := s.subscriptionService.Delete(ctx, req.ID)
	if err != nil {
		return nil, toStatusError(ctx, err, "Delete subscription failed")
	}
	return &DeleteSubscriptionResponse{Deleted: deleted}, nil
}

func toStatusError(ctx context.Context, err error, logMessage string) error {
	var validationErr *service.ValidationError
	var subscriptionErr *service.SubscriptionError

	switch {
	case errors.As(err, &validationErr):
		return validationStatus(validationErr.Result).Err()
	case errors.Is(err, service.ErrSubscriptionNotFound):
		return status.Error(codes.NotFound, "subscription not found")
	case errors.As(err, &subscriptionErr):
		return status.Error(codes.FailedPrecondition, subscriptionErr.Error())
	case errors.Is(err, service.ErrSubscriptionModified):
		return status.Error(codes.Aborted, "subscription was modified concurrently, retry")
	default:
		loggerWithContext(ctx).WithError(err).Error(logMessage)
		return status.Error(codes.Internal, "internal server error")
	}
}

func validationStatus(result *validation.Result) *status.Status {
	st := status.New(codes.InvalidArgument, "validation failed")

	badRequest := &errdetails.BadRequest{}
	for _, e := range result.Errors() {
		badRequest.FieldViolations = append(badRequest.FieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       violationFields[e.Code],
			Description: e.Message,
		})
	}

	detailed, err := st.WithDetails(badRequest)
	if err != nil {
		return st
	}
	return detailed
}
