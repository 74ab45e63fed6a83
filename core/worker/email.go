package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"

	"github.com/hibiken/asynq"

	"dingdong-api/core/config"
	"dingdong-api/core/logger"
)

const TypeVerificationEmail = "email:verification"

type VerificationEmailPayload struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (c *Client) EnqueueVerificationEmail(email string, code string) error {
	payload, err := json.Marshal(VerificationEmailPayload{Email: email, Code: code})
	if err != nil {
		return err
	}

	task := asynq.NewTask(TypeVerificationEmail, payload)
	if _, err := c.client.Enqueue(task, asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("failed to enqueue verification email: %w", err)
	}
	return nil
}

// EmailHandler delivers queued mail over SMTP.
type EmailHandler struct {
	cfg config.MailConfig
}

func NewEmailHandler(cfg config.MailConfig) *EmailHandler {
	return &EmailHandler{cfg: cfg}
}

func (h *EmailHandler) HandleVerificationEmail(ctx context.Context, t *asynq.Task) error {
	var payload VerificationEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}

	body := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Email verification\r\n\r\nYour verification code is %s\r\n",
		h.cfg.From, payload.Email, payload.Code)

	addr := fmt.Sprintf("%s:%d", h.cfg.Host, h.cfg.Port)
	var auth smtp.Auth
	if h.cfg.Username != "" {
		auth = smtp.PlainAuth("", h.cfg.Username, h.cfg.Password, h.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, h.cfg.From, []string{payload.Email}, []byte(body)); err != nil {
		logger.Error("EmailHandler:HandleVerificationEmail", err)
		return err
	}

	logger.Info("verification email sent", "email", payload.Email)
	return nil
}
