package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"portfolio-contact/internal/domain"
	"portfolio-contact/internal/usecase"
)

const (
	correlationHeader = "X-Correlation-Id"

	errServer   = "Server Error"
	errNotFound = "Message not found"
	msgDeleted  = "Message deleted successfully"
)

type ContactUseCase interface {
	Create(ctx context.Context, in usecase.CreateInput) (domain.Message, error)
	List(ctx context.Context) ([]domain.Message, error)
	Delete(ctx context.Context, id string) error
}

// Handler maps the contact routes onto the use case. It is served both as an
// API Gateway Lambda (Handle) and as a gin router (Register).
type Handler struct {
	uc  ContactUseCase
	log *slog.Logger
}

type createRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// result is a transport independent response.
type result struct {
	status int
	body   any
}

func NewHandler(uc ContactUseCase, log *slog.Logger) (*Handler, error) {
	if uc == nil {
		return nil, errors.New("handler: use case must not be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Handler{uc: uc, log: log}, nil
}

func (h *Handler) create(ctx context.Context, log *slog.Logger, body []byte) result {
	var req createRequest
	if err := json.Unmarshal(body, &req); err != nil {
		log.WarnContext(ctx, "malformed contact body", "err", err)
		return result{status: http.StatusInternalServerError, body: errorResponse{Error: errServer}}
	}
	_, err := h.uc.Create(ctx, usecase.CreateInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		return h.failure(ctx, log, err)
	}
	return result{status: http.StatusOK, body: successResponse{Success: true}}
}

func (h *Handler) list(ctx context.Context, log *slog.Logger) result {
	msgs, err := h.uc.List(ctx)
	if err != nil {
		return h.failure(ctx, log, err)
	}
	if msgs == nil {
		msgs = []domain.Message{}
	}
	return result{status: http.StatusOK, body: msgs}
}

func (h *Handler) remove(ctx context.Context, log *slog.Logger, id string) result {
	if err := h.uc.Delete(ctx, id); err != nil {
		return h.failure(ctx, log, err)
	}
	return result{status: http.StatusOK, body: successResponse{Success: true, Message: msgDeleted}}
}

// failure maps use case errors to responses. Only not-found is surfaced with its
// own status; everything else is a generic 500 without detail.
func (h *Handler) failure(ctx context.Context, log *slog.Logger, err error) result {
	var ucErr *usecase.Error
	if errors.As(err, &ucErr) {
		switch ucErr.Code {
		case usecase.ErrorNotFound:
			return result{status: http.StatusNotFound, body: errorResponse{Error: errNotFound}}
		case usecase.ErrorInvalidInput:
			log.WarnContext(ctx, "rejected contact request", "reason", ucErr.Reason, "err", err)
			return result{status: http.StatusInternalServerError, body: errorResponse{Error: errServer}}
		}
	}
	log.ErrorContext(ctx, "contact request failed", "err", err)
	return result{status: http.StatusInternalServerError, body: errorResponse{Error: errServer}}
}
