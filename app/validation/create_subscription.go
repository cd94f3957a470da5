package validation

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/clock"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/entity"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/types"
)

const (
	CodeInvalidUserID         = 100
	CodeInvalidName           = 101
	CodeInvalidProvider       = 102
	CodeInvalidExpirationDate = 103
)

var (
	errInvalidUserID         = NewError(CodeInvalidUserID, "userId is invalid")
	errInvalidName           = NewError(CodeInvalidName, "name is invalid")
	errInvalidProvider       = NewError(CodeInvalidProvider, "provider is invalid")
	errInvalidExpirationDate = NewError(CodeInvalidExpirationDate, "expirationDate is invalid")
)

var fieldErrors = map[string]Error{
	"UserID":         errInvalidUserID,
	"Name":           errInvalidName,
	"Provider":       errInvalidProvider,
	"ExpirationDate": errInvalidExpirationDate,
}

type createSubscriptionInput struct {
	UserID         *int64     `validate:"required"`
	Name           string     `validate:"required"`
	Provider       string     `validate:"provider"`
	ExpirationDate *time.Time `validate:"required,future"`
}

type CreateSubscriptionValidator struct {
	validate *validator.Validate
	clock    clock.Clock
}

func NewCreateSubscriptionValidator(c clock.Clock) *CreateSubscriptionValidator {
	v := &CreateSubscriptionValidator{
		validate: validator.New(),
		clock:    c,
	}
	mustRegister(v.validate, "provider", func(fl validator.FieldLevel) bool {
		_, ok := entity.ParseProvider(fl.Field().String())
		return ok
	})
	mustRegister(v.validate, "future", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(time.Time)
		return ok && value.After(v.clock.Now())
	})
	return v
}

// Validate never fails on bad input; every violated rule ends up in the result.
func (v *CreateSubscriptionValidator) Validate(req *types.CreateSubscriptionRequest) *Result {
	result := NewResult()
	if req == nil {
		result.Add(errInvalidUserID)
		result.Add(errInvalidName)
		result.Add(errInvalidProvider)
		result.Add(errInvalidExpirationDate)
		return result
	}

	input := createSubscriptionInput{
		UserID:         req.UserID,
		Name:           req.Name,
		Provider:       req.Provider,
		ExpirationDate: req.ExpirationDate,
	}

	err := v.validate.Struct(input)
	if err == nil {
		return result
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// Only reachable when the input is not a struct.
		panic(fmt.Sprintf("validation: unexpected validator error: %v", err))
	}

	collected := make([]Error, 0, len(validationErrors))
	seen := make(map[int]bool, len(validationErrors))
	for _, fe := range validationErrors {
		mapped, known := fieldErrors[fe.StructField()]
		if !known || seen[mapped.Code] {
			continue
		}
		seen[mapped.Code] = true
		collected = append(collected, mapped)
	}
	sort.SliceStable(collected, func(i, j int) bool { return collected[i].Code < collected[j].Code })
	for _, e := range collected {
		result.Add(e)
	}

	return result
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}
