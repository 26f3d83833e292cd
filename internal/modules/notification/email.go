package notification

import (
	"fmt"

	"github.com/keighl/postmark"
)

// Mailer sends transactional email through Postmark.
type Mailer struct {
	client *postmark.Client
	sender string
}

// NewMailer creates a Mailer. A nil Mailer is safe to call; sends become
// no-ops, which keeps local development working without a Postmark token.
func NewMailer(apiToken, sender string) *Mailer {
	if apiToken == "" {
		return nil
	}
	return &Mailer{client: postmark.NewClient(apiToken, ""), sender: sender}
}

// SendOrderConfirmation emails the buyer a checkout receipt.
func (m *Mailer) SendOrderConfirmation(toEmail, orderID string, total float64, currency string) error {
	if m == nil {
		return nil
	}
	body := fmt.Sprintf(
		"<strong>Thank you for your purchase!</strong><br><br>Your order (ID: %s) has been placed successfully.<br>Total: <strong>%.2f %s</strong>",
		orderID, total, currency)

	_, err := m.client.SendEmail(postmark.Email{
		From:     m.sender,
		To:       toEmail,
		Subject:  "Order Confirmation",
		HtmlBody: body,
		TextBody: fmt.Sprintf("Thank you for your purchase! Order %s, total %.2f %s.", orderID, total, currency),
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
