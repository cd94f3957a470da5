package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/dto"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/factory"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/mapper"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/service"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/types"
)

type SubscriptionController struct {
	subscriptionService *service.SubscriptionService
	logger              logrus.FieldLogger
}

func NewSubscriptionController(subscriptionService *service.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{
		subscriptionService: subscriptionService,
		logger:              factory.NewModuleLogger("subscriptions-controller"),
	}
}

func (c *SubscriptionController) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, &dto.HealthResponse{Status: "ok"})
}

func (c *SubscriptionController) UpsertSubscription(ctx echo.Context) error {
	req, err := types.NewCreateSubscriptionRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}

	item, err := c.subscriptionService.Upsert(ctx.Request().Context(), req)
	if err != nil {
		return c.handleServiceError(ctx, err, "Upsert subscription failed")
	}

	return ctx.JSON(http.StatusOK, &dto.SubscriptionEnvelopeResponse{
		Subscription: mapper.SubscriptionToResponse(item),
	})
}

func (c *SubscriptionController) GetSubscription(ctx echo.Context) error {
	req, ok := parseIDRequest(ctx)
	if !ok {
		return c.writeError(ctx, http.StatusBadRequest, "invalid subscription id")
	}

	item, err := c.subscriptionService.Get(ctx.Request().Context(), req.ID)
	if err != nil {
		return c.handleServiceError(ctx, err, "Get subscription failed")
	}

	return ctx.JSON(http.StatusOK, &dto.SubscriptionEnvelopeResponse{
		Subscription: mapper.SubscriptionToResponse(item),
	})
}

func (c *SubscriptionController) ListSubscriptions(ctx echo.Context) error {
	req, err := types.NewListSubscriptionsRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid user_id")
	}

	items, err := c.subscriptionService.List(ctx.Request().Context(), req.UserID)
	if err != nil {
		return c.handleServiceError(ctx, err, "List subscriptions failed")
	}

	return ctx.JSON(http.StatusOK, &dto.ListSubscriptionsResponse{
		Subscriptions: mapper.SubscriptionsToResponse(items),
	})
}

func (c *SubscriptionController) DeleteSubscription(ctx echo.Context) error {
	req, ok := parseIDRequest(ctx)
	if !ok {
		return c.writeError(ctx, http.StatusBadRequest, "invalid subscription id")
	}

	deleted, err := c.subscriptionService.Delete(ctx.Request().Context(), req.ID)
	if err != nil {
		return c.handleServiceError(ctx, err, "Delete subscription failed")
	}
	if !deleted {
		return c.writeError(ctx, http.StatusNotFound, "subscription not found")
	}

	return ctx.JSON(http.StatusOK, &dto.MessageResponse{Message: "Subscription deleted successfully"})
}

func (c *SubscriptionController) CancelSubscription(ctx echo.Context) error {
	req, ok := parseIDRequest(ctx)
	if !ok {
		return c.writeError(ctx, http.StatusBadRequest, "invalid subscription id")
	}

	item, err := c.subscriptionService.Cancel(ctx.Request().Context(), req.ID)
	if err != nil {
		return c.handleServiceError(ctx, err, "Cancel subscription failed")
	}

	return ctx.JSON(http.StatusOK, &dto.MessageWithSubscriptionResponse{
		Message:      "Subscription canceled successfully",
		Subscription: mapper.SubscriptionToResponse(item),
	})
}

func (c *SubscriptionController) ExpireSubscription(ctx echo.Context) error {
	req, ok := parseIDRequest(ctx)
	if !ok {
		return c.writeError(ctx, http.StatusBadRequest, "invalid subscription id")
	}

	item, err := c.subscriptionService.Expire(ctx.Request().Context(), req.ID)
	if err != nil {
		return c.handleServiceError(ctx, err, "Expire subscription failed")
	}

	return ctx.JSON(http.StatusOK, &dto.MessageWithSubscriptionResponse{
		Message:      "Subscription expired successfully",
		Subscription: mapper.SubscriptionToResponse(item),
	})
}

func parseIDRequest(ctx echo.Context) (*types.SubscriptionIDRequest, bool) {
	req, err := types.NewSubscriptionIDRequestFromContext(ctx)
	if err != nil || req.Validate() != nil {
		return nil, false
	}
	return req, true
}

func (c *SubscriptionController) handleServiceError(ctx echo.Context, err error, logMessage string) error {
	var validationErr *service.ValidationError
	var subscriptionErr *service.SubscriptionError

	switch {
	case errors.As(err, &validationErr):
		return ctx.JSON(http.StatusBadRequest, &dto.ErrorResponse{
			Error:  "validation failed",
			Errors: mapper.ValidationErrorsToResponse(validationErr.Result),
		})
	case errors.Is(err, service.ErrSubscriptionNotFound):
		return c.writeError(ctx, http.StatusNotFound, "subscription not found")
	case errors.As(err, &subscriptionErr):
		return c.writeError(ctx, http.StatusConflict, subscriptionErr.Error())
	case errors.Is(err, service.ErrSubscriptionModified):
		return c.writeError(ctx, http.StatusConflict, "subscription was modified concurrently, retry")
	default:
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error(logMessage)
		return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
	}
}

func (c *SubscriptionController) writeError(ctx echo.Context, statusCode int, message string) error {
	return ctx.JSON(statusCode, &dto.ErrorResponse{Error: message})
}
