package handler

import (
	"errors"
	"net/http"

	"github.com/ogurasousui/employee-registry/internal/core/employee"
	"github.com/ogurasousui/employee-registry/internal/core/report"
)

var (
	errConfirmationRequired = errors.New("handler: deletion requires confirm=true")
	errArchiveDisabled      = errors.New("handler: report archive is not configured")
	errInvalidBody          = errors.New("handler: invalid request body")
	errInvalidThreshold     = errors.New("handler: threshold must be a non-negative number")
)

func toHTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, employee.ErrValidation),
		errors.Is(err, errInvalidBody),
		errors.Is(err, errInvalidThreshold):
		return http.StatusBadRequest
	case errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, report.ErrNoEmployees):
		return http.StatusNotFound
	case errors.Is(err, errConfirmationRequired):
		return http.StatusPreconditionRequired
	case errors.Is(err, errArchiveDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) respondErr(w http.ResponseWriter, r *http.Request, err error) {
	status := toHTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		respondError(w, status, "internal error")
		return
	}
	respondError(w, status, err.Error())
}
