package response

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody contains error details.
type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

// MessageResponse is the body of operations that only report success.
type MessageResponse struct {
	Message string `json:"message"`
}

// PaginationMeta contains pagination metadata.
type PaginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPaginationMeta derives the page count from total and limit.
func NewPaginationMeta(page, limit, total int) PaginationMeta {
	return PaginationMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: domain.TotalPages(total, limit),
	}
}

type (
	exposeKey struct{}
	loggerKey struct{}
)

// WithLogger attaches the request logger to ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// Logger returns the logger attached by WithLogger, or slog.Default.
func Logger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// WithInternalDetails marks ctx so that Error includes the cause of internal
// errors in the response. Only set outside production.
func WithInternalDetails(ctx context.Context, expose bool) context.Context {
	return context.WithValue(ctx, exposeKey{}, expose)
}

func exposeInternal(ctx context.Context) bool {
	expose, _ := ctx.Value(exposeKey{}).(bool)
	return expose
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends an error response based on the domain error. Errors that are
// not DomainErrors become SERVER_ERROR. Internal errors are logged.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var domainErr *domain.DomainError
	if !errors.As(err, &domainErr) {
		domainErr = domain.NewInternalError(domain.ErrCodeServer, "Internal server error", err)
	}

	body := ErrorBody{
		Message: domainErr.Message,
		Code:    string(domainErr.Code),
		Details: domainErr.Details,
	}

	if domainErr.Internal() {
		Logger(r.Context()).ErrorContext(r.Context(), "request failed",
			"code", domainErr.Code,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimiddleware.GetReqID(r.Context()),
			"error", domainErr.Err,
		)
		if domainErr.Err != nil && exposeInternal(r.Context()) {
			body.Details = domainErr.Err.Error()
		}
	}

	JSON(w, mapErrorCodeToStatus(domainErr.Code), ErrorResponse{Error: body})
}

// Created sends a 201 Created response with JSON body.
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// OK sends a 200 OK response with JSON body.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Message sends a 200 OK response carrying only a message.
func Message(w http.ResponseWriter, message string) {
	JSON(w, http.StatusOK, MessageResponse{Message: message})
}

func mapErrorCodeToStatus(code domain.ErrorCode) int {
	switch code {
	case domain.ErrCodeValidation, domain.ErrCodeInvalidID:
		return http.StatusBadRequest
	case domain.ErrCodeUnauthorized, domain.ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case domain.ErrCodeAccountDeactivated:
		return http.StatusForbidden
	case domain.ErrCodeNotFound:
		return http.StatusNotFound
	case domain.ErrCodeEmailExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
