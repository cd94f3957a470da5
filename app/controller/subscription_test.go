package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/clock"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/dto"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/entity"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/mapper"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/repository"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/service"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/validation"
)

var controllerNow = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

type controllerSubRepo struct {
	findAllFn          func(ctx context.Context) ([]*entity.Subscription, error)
	findByIDFn         func(ctx context.Context, id int64) (*entity.Subscription, error)
	findByUserIDFn     func(ctx context.Context, userID int64) ([]*entity.Subscription, error)
	upsertFn           func(ctx context.Context, subscription *entity.Subscription) (*entity.Subscription, error)
	updateFromStatusFn func(ctx context.Context, subscription *entity.Subscription, from entity.Status) (*entity.Subscription, error)
	deleteFn           func(ctx context.Context, id int64) (bool, error)
}

func (r *controllerSubRepo) FindAll(ctx context.Context) ([]*entity.Subscription, error) {
	if r.findAllFn != nil {
		return r.findAllFn(ctx)
	}
	return nil, nil
}

func (r *controllerSubRepo) FindByID(ctx context.Context, id int64) (*entity.Subscription, error) {
	if r.findByIDFn != nil {
		return r.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (r *controllerSubRepo) FindByUserID(ctx context.Context, userID int64) ([]*entity.Subscription, error) {
	if r.findByUserIDFn != nil {
		return r.findByUserIDFn(ctx, userID)
	}
	return nil, nil
}

func (r *controllerSubRepo) ListActiveExpiredBefore(context.Context, time.Time) ([]*entity.Subscription, error) {
	return nil, nil
}

func (r *controllerSubRepo) Upsert(ctx context.Context, subscription *entity.Subscription) (*entity.Subscription, error) {
	if r.upsertFn != nil {
		return r.upsertFn(ctx, subscription)
	}
	return subscription, nil
}

func (r *controllerSubRepo) UpdateFromStatus(ctx context.Context, subscription *entity.Subscription, from entity.Status) (*entity.Subscription, error) {
	if r.updateFromStatusFn != nil {
		return r.updateFromStatusFn(ctx, subscription, from)
	}
	return subscription, nil
}

func (r *controllerSubRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if r.deleteFn != nil {
		return r.deleteFn(ctx, id)
	}
	return false, nil
}

func newControllerForTest(repo *controllerSubRepo) *SubscriptionController {
	c := clock.NewFixed(controllerNow)
	svc := service.NewSubscriptionService(repo, validation.NewCreateSubscriptionValidator(c), mapper.NewCreateSubscriptionMapper(), c)
	return NewSubscriptionController(svc)
}

func subscriptionWithStatus(id int64, status entity.Status) *entity.Subscription {
	return &entity.Subscription{
		ID:             id,
		UserID:         1,
		Name:           "premium",
		Provider:       entity.ProviderApple,
		ExpirationDate: controllerNow.Add(24 * time.Hour),
		Status:         status,
	}
}

func newIDContext(method, id string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/subscriptions/"+id, nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues(id)
	return ctx, rec
}

func TestHealth(t *testing.T) {
	ctrl := newControllerForTest(&controllerSubRepo{})
	e := echo.New()
	rec := httptest.NewRecorder()
	ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := ctrl.Health(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUpsertSubscriptionBadBody(t *testing.T) {
	ctrl := newControllerForTest(&controllerSubRepo{})
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/subscriptions", bytes.NewBufferString("{bad"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	if err := ctrl.UpsertSubscription(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpsertSubscriptionValidationErrors(t *testing.T) {
	ctrl := newControllerForTest(&controllerSubRepo{})
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/subscriptions", bytes.NewBufferString(`{"name":"  ","provider":"apple"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	_ = ctrl.UpsertSubscription(ctx)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var payload dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(payload.Errors) != 4 {
		t.Fatalf("expected all four field errors, got %+v", payload.Errors)
	}
	if payload.Errors[0].Code != 100 || payload.Errors[3].Message != "expirationDate is invalid" {
		t.Fatalf("unexpected field errors: %+v", payload.Errors)
	}
}

func TestUpsertSubscriptionSuccess(t *testing.T) {
	ctrl := newControllerForTest(&controllerSubRepo{
		upsertFn: func(_ context.Context, s *entity.Subscription) (*entity.Subscription, error) {
			s.ID = 77
			return s, nil
		},
	})
	e := echo.New()
	body := `{"user_id":1,"name":"premium","provider":"GOOGLE","expiration_date":"2030-02-01T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/subscriptions", bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	_ = ctrl.UpsertSubscription(ctx)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	var payload dto.SubscriptionEnvelopeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if payload.Subscription.ID != 77 || payload.Subscription.Status != "ACTIVE" || payload.Subscription.Provider != "GOOGLE" {
		t.Fatalf("unexpected subscription payload: %+v", payload.Subscription)
	}
}

func TestGetSubscriptionNotFound(t *testing.T) {
	ctrl := newControllerForTest(&controllerSubRepo{})
	ctx, rec := newIDContext(http.MethodGet, "9")

	_ = ctrl.GetSubscription(ctx)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetSubscriptionInvalidID(t *testing.T) {
	ctrl := newControllerForTest(&controllerSubRepo{})
	for _, id := range []string{"abc", "0", "-3"} {
		ctx, rec := newIDContext(http.MethodGet, id)
		_ = ctrl.GetSubscription(ctx)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for id %q, got %d", id, rec.Code)
		}
	}
}

func TestGetSubscriptionInternalError(t *testing.T) {
	ctrl := newControllerForTest(&controllerSubRepo{
		findByIDFn: func(context.Context, int64) (*entity.Subscription, error) {
			return nil, errors.New("db down")
		},
	})
	ctx, rec := newIDContext(http.MethodGet, "1")

	_ = ctrl.GetSubscription(ctx)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestListSubscriptionsFiltersByUser(t *testing.T) {
	var gotUserID int64
	ctrl := newControllerForTest(&controllerSubRepo{
		findByUserIDFn: func(_ context.Context, userID int64) ([]*entity.Subscription, error) {
			gotUserID = userID
			return []*entity.Subscription{subscriptionWithStatus(1, entity.StatusActive)}, nil
		},
	})
	e := echo.New()
	rec := httptest.NewRecorder()
	ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/subscriptions?user_id=5", nil), rec)

	_ = ctrl.ListSubscriptions(ctx)
	if rec.Code != http.StatusOK || gotUserID != 5 {
		t.Fatalf("expected 200 with user filter 5, got %d user=%d", rec.Code, gotUserID)
	}

	rec = httptest.NewRecorder()
	ctx = e.NewContext(httptest.NewRequest(http.MethodGet, "/subscriptions?user_id=x", nil), rec)
	_ = ctrl.ListSubscriptions(ctx)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad user_id, got %d", rec.Code)
	}
}

func TestDeleteSubscription(t *testing.T) {
	ctrl := newControllerForTest(&controllerSubRepo{
		deleteFn: func(_ context.Context, id int64) (bool, error) {
			return id == 3, nil
		},
	})

	ctx, rec := newIDContext(http.MethodDelete, "3")
	_ = ctrl.DeleteSubscription(ctx)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	ctx, rec = newIDContext(http.MethodDelete, "4")
	_ = ctrl.DeleteSubscription(ctx)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCancelSubscriptionConflict(t *testing.T) {
	ctrl := newControllerForTest(&controllerSubRepo{
		findByIDFn: func(_ context.Context, id int64) (*entity.Subscription, error) {
			return subscriptionWithStatus(id, entity.StatusCanceled), nil
		},
	})
	ctx, rec := newIDContext(http.MethodPost, "3")

	_ = ctrl.CancelSubscription(ctx)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	var payload dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if payload.Error != "Only active subscription 3 can be canceled" {
		t.Fatalf("unexpected error message: %q", payload.Error)
	}
}

func TestCancelSubscriptionStaleWrite(t *testing.T) {
	ctrl := newControllerForTest(&controllerSubRepo{
		findByIDFn: func(_ context.Context, id int64) (*entity.Subscription, error) {
			return subscriptionWithStatus(id, entity.StatusActive), nil
		},
		updateFromStatusFn: func(context.Context, *entity.Subscription, entity.Status) (*entity.Subscription, error) {
			return nil, repository.ErrSubscriptionStale
		},
	})
	ctx, rec := newIDContext(http.MethodPost, "3")

	_ = ctrl.CancelSubscription(ctx)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestExpireSubscription(t *testing.T) {
	ctrl := newControllerForTest(&controllerSubRepo{
		findByIDFn: func(_ context.Context, id int64) (*entity.Subscription, error) {
			return subscriptionWithStatus(id, entity.StatusCanceled), nil
		},
	})
	ctx, rec := newIDContext(http.MethodPost, "3")

	_ = ctrl.ExpireSubscription(ctx)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	var payload dto.MessageWithSubscriptionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if payload.Subscription.Status != "EXPIRED" || payload.Subscription.ExpirationDate != "2030-01-01T00:00:00Z" {
		t.Fatalf("unexpected subscription payload: %+v", payload.Subscription)
	}
}

func TestRegisterRoutesServesExpire(t *testing.T) {
	e := echo.New()
	RegisterRoutes(e, newControllerForTest(&controllerSubRepo{
		findByIDFn: func(_ context.Context, id int64) (*entity.Subscription, error) {
			return subscriptionWithStatus(id, entity.StatusActive), nil
		},
	}))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/subscriptions/8/expire", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from health, got %d", rec.Code)
	}
}
