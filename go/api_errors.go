package cafekioskserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	ordersapp "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/orders/ports"
	productsapp "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/application"
	productsports "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/ports"
	apierrors "github.com/Apurer/go-gin-cafe-kiosk/internal/shared/errors"
)

var problems = apierrors.NewChainedResponder("", mapProductError, mapOrderError)

// respondBadRequest answers malformed requests that never reached a service.
func respondBadRequest(c *gin.Context, err error) {
	problems.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}

// respondServiceError maps application errors onto RFC 7807 responses.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	problems.RespondError(c, err)
}

func mapProductError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, productsapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, productsports.ErrDuplicateProductNumber):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, productsports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapOrderError(err error) (apierrors.ProblemDetail, bool) {
	var unknown *ordersapp.UnknownProductNumbersError
	switch {
	case errors.As(err, &unknown):
		return apierrors.ErrUnprocessable.
			WithDetail(err.Error()).
			WithExtension("missingProductNumbers", unknown.Numbers), true
	case errors.Is(err, ordersapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ordersports.ErrIdempotencyConflict):
		return apierrors.ErrConflict.WithDetail("Idempotency-Key was already used with a different request"), true
	case errors.Is(err, ordersports.ErrIdempotencyInProgress):
		return apierrors.ErrConflict.WithDetail("an order with this Idempotency-Key is still being placed"), true
	case errors.Is(err, ordersports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
