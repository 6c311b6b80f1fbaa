package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/excellence-hub/excellence/internal/models"
	pkglogger "github.com/excellence-hub/excellence/pkg/logger"
)

// RecoveryNotifier tells the administrator about a new recovery request.
type RecoveryNotifier interface {
	NotifyRecoveryRequested(ctx context.Context, n models.Notification) error
}

// NoopRecoveryNotifier is used when e-mail notification is disabled.
type NoopRecoveryNotifier struct{}

func (NoopRecoveryNotifier) NotifyRecoveryRequested(context.Context, models.Notification) error {
	return nil
}

// SESAPI is the subset of the SES client used here.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESRecoveryNotifier e-mails the administrator using AWS SES
type SESRecoveryNotifier struct {
	sesClient   SESAPI
	fromAddress string
	adminEmail  string
	logger      *slog.Logger
}

// NewSESRecoveryNotifier creates a notifier with the default AWS credential chain.
func NewSESRecoveryNotifier(ctx context.Context, region, fromAddress, adminEmail string, logger *slog.Logger) (*SESRecoveryNotifier, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewSESRecoveryNotifierWithClient(ses.NewFromConfig(cfg), fromAddress, adminEmail, logger), nil
}

// NewSESRecoveryNotifierWithClient creates a notifier around an existing client.
func NewSESRecoveryNotifierWithClient(client SESAPI, fromAddress, adminEmail string, logger *slog.Logger) *SESRecoveryNotifier {
	return &SESRecoveryNotifier{
		sesClient:   client,
		fromAddress: fromAddress,
		adminEmail:  adminEmail,
		logger:      logger,
	}
}

// NotifyRecoveryRequested sends a plain-text e-mail describing the request.
func (s *SESRecoveryNotifier) NotifyRecoveryRequested(ctx context.Context, n models.Notification) error {
	textBody := fmt.Sprintf(`Password recovery request

%s

Requested at: %s
Request ID: %s

Sign in as the administrator and unlock the account to reset its password to the default.

This is an automated message. Please do not reply to this email.
`, n.Text, n.Date.Format(time.RFC1123), n.ID)

	input := &ses.SendEmailInput{
		Source: aws.String(s.fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{s.adminEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String("Password recovery request"),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(textBody),
				},
			},
		},
	}

	result, err := s.sesClient.SendEmail(ctx, input)
	if err != nil {
		s.logger.Error("failed to send recovery email via SES",
			slog.String("email", pkglogger.SanitizedEmail(s.adminEmail)),
			slog.Any("error", err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	messageID := ""
	if result != nil && result.MessageId != nil {
		messageID = *result.MessageId
	}
	s.logger.Info("recovery email sent",
		slog.String("email", pkglogger.SanitizedEmail(s.adminEmail)),
		slog.String("message_id", messageID))
	return nil
}
