package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/work-nest/backoffice/internal/config"
	"github.com/work-nest/backoffice/internal/events"
	"github.com/work-nest/backoffice/internal/notification"
)

// NotificationService turns domain events into outbound email. Delivery
// failures are logged and swallowed: the account/token state the email
// refers to is already durable, and the user can request a resend.
type NotificationService struct {
	dispatcher events.Dispatcher
	mailer     notification.Mailer
	logger     *zap.Logger
	cfg        config.MailConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, mailer notification.Mailer, logger *zap.Logger, cfg config.MailConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		mailer:     mailer,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserInvited, n.handleUserInvited)
	n.dispatcher.Subscribe(events.EventPasswordResetRequested, n.handlePasswordResetRequested)
}

func (n *NotificationService) handleUserInvited(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserInvitedPayload)
	if !ok {
		return nil
	}
	msg, err := notification.RenderInvitation(n.cfg.FrontendURL, payload.Email, payload.FirstName, payload.LastName, payload.Token)
	if err != nil {
		n.logger.Error("render invitation email", zap.Error(err))
		return nil
	}
	if err := n.mailer.Send(ctx, msg); err != nil {
		n.logger.Error("send invitation email", zap.String("to", payload.Email), zap.Error(err))
	}
	return nil
}

func (n *NotificationService) handlePasswordResetRequested(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PasswordResetRequestedPayload)
	if !ok {
		return nil
	}
	msg, err := notification.RenderPasswordReset(n.cfg.FrontendURL, payload.Email, payload.FirstName, payload.Token)
	if err != nil {
		n.logger.Error("render reset email", zap.Error(err))
		return nil
	}
	if err := n.mailer.Send(ctx, msg); err != nil {
		n.logger.Error("send reset email", zap.String("to", payload.Email), zap.Error(err))
	}
	return nil
}
