package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/accreditation-service/internal/config"
)

// ResendMailer sends approval emails through the Resend REST API.
type ResendMailer struct {
	cfg    config.NotificationConfig
	client *http.Client
	logger *zap.Logger
}

// NewResendMailer builds the mailer. Without an API key the mailer logs and
// skips sends, so local environments work without an email account.
func NewResendMailer(cfg config.NotificationConfig, logger *zap.Logger) *ResendMailer {
	return &ResendMailer{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

type resendPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// SendApprovalEmail delivers the approval notification.
func (m *ResendMailer) SendApprovalEmail(ctx context.Context, msg ApprovalEmail) error {
	if m.cfg.ResendAPIKey == "" {
		m.logger.Info("email delivery disabled; skipping approval email",
			zap.String("to", msg.RecipientEmail))
		return nil
	}

	zoneLabel := "To be confirmed"
	if msg.Zone != nil {
		zoneLabel = msg.Zone.Label()
	}

	payload := resendPayload{
		From:    m.cfg.EmailFrom,
		To:      msg.RecipientEmail,
		Subject: "Accreditation approved",
		HTML: fmt.Sprintf(
			"<p>Hello %s %s,</p>"+
				"<p>Your accreditation for the <strong>%s</strong> area has been approved.</p>"+
				"<p>Assigned zone: <strong>%s</strong></p>"+
				"<p>See you at the event!</p>",
			msg.FirstName, msg.LastName, msg.Area, zoneLabel),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.ResendBaseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.cfg.ResendAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("resend returned %d: %s", resp.StatusCode, string(detail))
	}
	return nil
}
