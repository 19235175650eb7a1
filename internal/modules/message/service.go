package message

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Service defines contact-message business logic.
type Service interface {
	SubmitMessage(ctx context.Context, req SubmitMessageRequest) (*Message, error)
	ListMessages(ctx context.Context, status string) ([]*Message, error)
	MarkRead(ctx context.Context, id string) (*Message, error)
	Reply(ctx context.Context, id string, reply string) (*Message, error)
	DeleteMessage(ctx context.Context, id string) error
}

var validate = validator.New()

type service struct {
	repo   Repository
	mailer Mailer
}

func NewService(repo Repository, mailer Mailer) Service {
	return &service{repo: repo, mailer: mailer}
}

func (s *service) SubmitMessage(ctx context.Context, req SubmitMessageRequest) (*Message, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	m := &Message{
		ID:      uuid.New(),
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		Status:  StatusUnread,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) ListMessages(ctx context.Context, status string) ([]*Message, error) {
	return s.repo.List(ctx, status)
}

// MarkRead moves an unread message to read. Reading a message that was
// already read or replied changes nothing.
func (s *service) MarkRead(ctx context.Context, id string) (*Message, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.Status != StatusUnread {
		return m, nil
	}
	if err := s.repo.UpdateStatus(ctx, id, StatusRead); err != nil {
		return nil, err
	}
	m.Status = StatusRead
	return m, nil
}

// Reply emails the customer and records the reply. The message only moves
// to replied once the mail went out; a mailer failure leaves it untouched
// so the admin can retry.
func (s *service) Reply(ctx context.Context, id string, reply string) (*Message, error) {
	if reply == "" {
		return nil, fmt.Errorf("reply must not be empty")
	}
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.mailer.Send(ctx, m.Email, "Re: "+m.Subject, reply); err != nil {
		return nil, err
	}

	if err := s.repo.SetReply(ctx, id, reply); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, id, StatusReplied); err != nil {
		return nil, err
	}
	m.Reply = reply
	m.Status = StatusReplied
	return m, nil
}

func (s *service) DeleteMessage(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
