// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/byteandblog/internal/platform/ctxutil"
	"github.com/taibuivan/byteandblog/internal/platform/dberr"
	"github.com/taibuivan/byteandblog/internal/platform/mailer"
	"github.com/taibuivan/byteandblog/internal/platform/validate"
)

type Service struct {
	repo  Repository
	mail  mailer.Sender
	inbox string
	now   func() time.Time
}

// NewService wires the contact use cases. inbox receives a copy of every
// submission; an empty inbox skips that notification.
func NewService(repo Repository, mail mailer.Sender, inbox string) *Service {
	return &Service{
		repo:  repo,
		mail:  mail,
		inbox: inbox,
		now:   time.Now,
	}
}

func (service *Service) ListMessages(context context.Context, limit, offset int) ([]*Message, int, error) {
	return service.repo.ListMessages(context, limit, offset)
}

func (service *Service) GetMessage(context context.Context, id int64) (*Message, error) {
	message, err := service.repo.GetMessage(context, id)
	if errors.Is(err, dberr.ErrNotFound) {
		return nil, ErrMessageNotFound
	}
	return message, err
}

/*
Submit validates and stores a message, then sends both emails.

Description: Delivery problems are logged and never fail the submission;
the message is already persisted when mail goes out.

Parameters:
  - context: context.Context
  - message: *Message (ID and CreatedAt are assigned)

Returns:
  - error: Validation or storage errors
*/
func (service *Service) Submit(context context.Context, message *Message) error {
	message.Name = strings.TrimSpace(message.Name)
	message.Email = strings.TrimSpace(message.Email)

	validator := &validate.Validator{}
	validator.Required(FieldName, message.Name).
		MaxLen(FieldName, message.Name, nameMaxLen).
		Required(FieldEmail, message.Email).
		Email(FieldEmail, message.Email).
		Required(FieldMessage, strings.TrimSpace(message.Message)).
		MaxLen(FieldMessage, message.Message, messageMaxLen)

	if err := validator.Err(); err != nil {
		return err
	}

	message.CreatedAt = service.now().UTC()

	if err := service.repo.CreateMessage(context, message); err != nil {
		return err
	}

	logger := ctxutil.GetLogger(context)
	logger.InfoContext(context, "contact_message_received", slog.Int64("message_id", message.ID))

	if service.inbox != "" {
		service.deliver(context, "contact_notify", mailer.Message{
			To:      service.inbox,
			Subject: fmt.Sprintf(notifySubject, message.Name),
			Body:    fmt.Sprintf(notifyBody, message.Message, message.Email),
		})
	}

	service.deliver(context, "contact_confirm", mailer.Message{
		To:      message.Email,
		Subject: fmt.Sprintf(confirmSubject, message.Name),
		Body:    confirmBody,
	})

	return nil
}

func (service *Service) deliver(context context.Context, kind string, message mailer.Message) {
	logger := ctxutil.GetLogger(context)

	if err := service.mail.Send(context, message); err != nil {
		logger.ErrorContext(context, kind+"_failed", slog.Any("error", err))
		return
	}
	logger.InfoContext(context, kind+"_sent")
}
