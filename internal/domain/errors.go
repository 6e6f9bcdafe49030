package domain

import (
	"errors"
	"net/http"
)

// Sentinel errors shared by the holdings, trading and funds modules.
// Handlers map them to HTTP status codes with errors.Is.
var (
	ErrStockNotFound      = errors.New("stock not found")
	ErrStockExists        = errors.New("stock code already exists")
	ErrInvalidStock       = errors.New("invalid stock")
	ErrInvalidTrade       = errors.New("invalid trade")
	ErrInsufficientShares = errors.New("insufficient shares")
	ErrInvalidFunds       = errors.New("invalid fund account values")
)

// StatusCode maps a service error to the HTTP status a handler answers with.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrStockNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrStockExists):
		return http.StatusConflict
	case errors.Is(err, ErrInsufficientShares):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrInvalidStock), errors.Is(err, ErrInvalidTrade), errors.Is(err, ErrInvalidFunds):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
