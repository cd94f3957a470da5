package controller

import "github.com/labstack/echo/v4"

func RegisterRoutes(e *echo.Echo, subscriptionController *SubscriptionController) {
	e.GET("/health", subscriptionController.Health)

	subscriptions := e.Group("/subscriptions")
	subscriptions.POST("", subscriptionController.UpsertSubscription)
	subscriptions.GET("", subscriptionController.ListSubscriptions)
	subscriptions.GET("/:id", subscriptionController.GetSubscription)
	subscriptions.DELETE("/:id", subscriptionController.DeleteSubscription)
	subscriptions.POST("/:id/cancel", subscriptionController.CancelSubscription)
	subscriptions.POST("/:id/expire", subscriptionController.ExpireSubscription)
}
