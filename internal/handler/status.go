package handler

import (
	"errors"

	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/pricing"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/service"
)

// statusFor maps service errors to HTTP status codes. Margin
// validation failures come back as 422 so the admin UI can keep the
// form open with the rejected value; everything unlisted is a 400.
func statusFor(err error) int {
	switch {
	case errors.Is(err, pricing.ErrMarginNaN),
		errors.Is(err, pricing.ErrMarginNegative),
		errors.Is(err, pricing.ErrMarginTooLarge),
		errors.Is(err, service.ErrProductUnavailable),
		errors.Is(err, service.ErrUnknownWeight),
		errors.Is(err, service.ErrEmptyCart):
		return 422
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrExpenseNotFound),
		errors.Is(err, service.ErrSaleNotFound):
		return 404
	case errors.Is(err, service.ErrCustomerHasSales),
		errors.Is(err, service.ErrSKUExists):
		return 409
	case errors.Is(err, service.ErrInvalidCredentials):
		return 401
	case errors.Is(err, service.ErrUserInactive):
		return 403
	default:
		return 400
	}
}
