package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"portfolio-contact/internal/domain"
	"portfolio-contact/internal/repository"
)

type MessageStore interface {
	Insert(ctx context.Context, name, email, message string) (domain.Message, error)
	ListAll(ctx context.Context) ([]domain.Message, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
}

// CreateInput is a contact form submission. Fields must be non-blank; they are
// stored exactly as submitted.
type CreateInput struct {
	Name    string `validate:"required"`
	Email   string `validate:"required"`
	Message string `validate:"required"`
}

type ContactService struct {
	store    MessageStore
	log      *slog.Logger
	validate *validator.Validate
}

func NewContactService(store MessageStore, log *slog.Logger) (*ContactService, error) {
	if store == nil {
		return nil, errors.New("usecase: message store must not be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &ContactService{store: store, log: log, validate: validator.New()}, nil
}

// Create validates and stores a submission. Duplicate submissions are stored twice.
func (s *ContactService) Create(ctx context.Context, in CreateInput) (domain.Message, error) {
	presence := CreateInput{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Message: strings.TrimSpace(in.Message),
	}
	if err := s.validate.Struct(presence); err != nil {
		return domain.Message{}, newError(ErrorInvalidInput, "missing_field", err)
	}

	msg, err := s.store.Insert(ctx, in.Name, in.Email, in.Message)
	if err != nil {
		return domain.Message{}, newError(ErrorInternal, "store_insert_error", err)
	}
	s.log.InfoContext(ctx, "contact message stored", "id", msg.ID)
	return msg, nil
}

// List returns every message, newest first.
func (s *ContactService) List(ctx context.Context) ([]domain.Message, error) {
	msgs, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, newError(ErrorInternal, "store_list_error", err)
	}
	return msgs, nil
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return newError(ErrorInvalidInput, "empty_id", nil)
	}

	found, err := s.store.DeleteByID(ctx, id)
	if errors.Is(err, repository.ErrInvalidID) {
		return newError(ErrorInvalidInput, "malformed_id", err)
	}
	if err != nil {
		return newError(ErrorInternal, "store_delete_error", err)
	}
	if !found {
		return newError(ErrorNotFound, "message_not_found", nil)
	}
	s.log.InfoContext(ctx, "contact message deleted", "id", id)
	return nil
}
