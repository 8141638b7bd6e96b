package services

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/mhollis/vitrine/internal/models"
)

// AWSSESEmailService sends contact notifications using AWS SES
type AWSSESEmailService struct {
	sesClient   *ses.Client
	fromAddress string
	toAddress   string
	logger      *slog.Logger
}

func NewAWSSESEmailService(region, fromAddress, toAddress string, logger *slog.Logger) (*AWSSESEmailService, error) {
	cfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &AWSSESEmailService{
		sesClient:   ses.NewFromConfig(cfg),
		fromAddress: fromAddress,
		toAddress:   toAddress,
		logger:      logger,
	}, nil
}

// SendContactNotification emails the site owner about a new contact request.
func (s *AWSSESEmailService) SendContactNotification(ctx context.Context, request *models.ContactRequest) error {
	subject := fmt.Sprintf("New contact request from %s", request.Name)

	textBody := fmt.Sprintf(
		"Name: %s\nEmail: %s\nPhone: %s\n\n%s\n",
		request.Name, request.Email, request.Phone, request.Message,
	)

	htmlBody := fmt.Sprintf(`<html><body>
<h2>New contact request</h2>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>
<hr>
<p>%s</p>
</body></html>`,
		html.EscapeString(request.Name),
		html.EscapeString(request.Email),
		html.EscapeString(request.Phone),
		html.EscapeString(request.Message),
	)

	input := &ses.SendEmailInput{
		Source: aws.String(s.fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{s.toAddress},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(textBody)},
				Html: &types.Content{Data: aws.String(htmlBody)},
			},
		},
		ReplyToAddresses: []string{request.Email},
	}

	if _, err := s.sesClient.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send contact notification: %w", err)
	}

	s.logger.Info("contact notification sent", slog.String("contact_request_id", request.ID))
	return nil
}
