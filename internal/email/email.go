package email

import (
	"context"
	"fmt"
	"time"

	"pantrybook/internal/config"
	"pantrybook/internal/logger"
	"pantrybook/internal/models"

	"github.com/mailgun/mailgun-go/v5"
)

type Service struct {
	client      mailgun.Mailgun
	domain      string
	senderEmail string
	senderName  string
	enabled     bool
}

func NewService(cfg *config.Config) *Service {
	enabled := cfg.MailgunDomain != "" && cfg.MailgunAPIKey != ""

	var client mailgun.Mailgun
	if enabled {
		client = mailgun.NewMailgun(cfg.MailgunAPIKey)
	}

	return &Service{
		client:      client,
		domain:      cfg.MailgunDomain,
		senderEmail: cfg.MailgunSenderEmail,
		senderName:  cfg.MailgunSenderName,
		enabled:     enabled,
	}
}

func (s *Service) IsEnabled() bool {
	return s.enabled
}

// SendShoppingListEmail mails a snapshot of the list to its owner.
func (s *Service) SendShoppingListEmail(user *models.User, list *models.ShoppingList) error {
	if !s.enabled {
		return fmt.Errorf("email service is not configured")
	}

	subject := fmt.Sprintf("Your shopping list (%d items)", list.TotalItems)
	htmlBody := s.generateShoppingListHTML(user, list)
	textBody := s.generateShoppingListText(user, list)

	message := mailgun.NewMessage(
		s.domain,
		fmt.Sprintf("%s <%s>", s.senderName, s.senderEmail),
		subject,
		textBody,
		user.Email,
	)
	message.SetHTML(htmlBody)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := s.client.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send shopping list email to %s: %w", user.Email, err)
	}

	logger.Info("Shopping list email sent",
		"email", user.Email,
		"list_id", list.ID,
		"message_id", resp)
	return nil
}
