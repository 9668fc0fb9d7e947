package handler

import (
	"errors"
	"net/http"

	"github.com/Falmousl/Finance-Project/internal/model"
	"github.com/Falmousl/Finance-Project/pkg/dataerr"
)

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, dataerr.ErrInvalidTicker):
		return http.StatusBadRequest, "Invalid ticker"
	case errors.Is(err, dataerr.ErrNotFound):
		return http.StatusNotFound, "Ticker not found"
	case errors.Is(err, dataerr.ErrUpstreamUnavailable),
		errors.Is(err, dataerr.ErrMalformedResponse),
		errors.Is(err, dataerr.ErrEmptyResponse):
		return http.StatusBadGateway, "Market data unavailable"
	case errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid username or password"
	case errors.Is(err, model.ErrUserExists):
		return http.StatusConflict, "Username already taken"
	default:
		return http.StatusInternalServerError, "Database error"
	}
}
