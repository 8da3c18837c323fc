package usecase

import (
	"errors"
	"fmt"
	"net/http"

	"pos/internal/checkout"
	"pos/internal/transaction"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// カート操作のエラーをHTTPのエラーにする
func mapCartError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, checkout.ErrCartLocked):
		return NewHTTPError(http.StatusConflict, "cart is locked")
	case errors.Is(err, checkout.ErrZeroOrNegativeQuantity):
		return NewHTTPError(http.StatusBadRequest, "invalid quantity")
	case errors.Is(err, checkout.ErrProductNotInCart):
		return NewHTTPError(http.StatusBadRequest, "product not in cart")
	case errors.Is(err, checkout.ErrQuantityOverflow):
		return NewHTTPError(http.StatusBadRequest, "quantity too large")
	case errors.Is(err, checkout.ErrInsufficientQuantity):
		return NewHTTPError(http.StatusBadRequest, "insufficient quantity")
	case errors.Is(err, transaction.ErrInsufficientAmount):
		return NewHTTPError(http.StatusBadRequest, "insufficient amount")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
