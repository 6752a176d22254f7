// Package support handles support requests: the sender's captcha token is
// verified with hCaptcha, then the message is relayed to the support inbox
// and a confirmation is mailed back to the sender, both through Resend.
package support

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	HCaptchaURL = "https://hcaptcha.com/siteverify"
	ResendURL   = "https://api.resend.com/emails"
)

// ErrInvalidCaptcha is returned when hCaptcha rejects the token.
var ErrInvalidCaptcha = errors.New("captcha verification failed")

// Request is a support message from a user.
type Request struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Message      string `json:"message"`
	CaptchaToken string `json:"captchaToken"`
}

// Config carries the service credentials and addresses.
type Config struct {
	HCaptchaSecret string
	ResendAPIKey   string
	FromAddress    string
	SupportInbox   string
}

// Service verifies and relays support requests.
type Service struct {
	client      *http.Client
	cfg         Config
	hcaptchaURL string
	resendURL   string
}

// New creates a support service. A nil client uses http.DefaultClient.
func New(client *http.Client, cfg Config) *Service {
	if client == nil {
		client = http.DefaultClient
	}
	return &Service{
		client:      client,
		cfg:         cfg,
		hcaptchaURL: HCaptchaURL,
		resendURL:   ResendURL,
	}
}

// NewWithEndpoints creates a service against custom endpoints (for testing).
func NewWithEndpoints(client *http.Client, cfg Config, hcaptchaURL, resendURL string) *Service {
	s := New(client, cfg)
	s.hcaptchaURL = hcaptchaURL
	s.resendURL = resendURL
	return s
}

// Submit verifies the captcha and sends both emails. The inbox copy and
// the sender confirmation are sent in that order; a failure at any step
// leaves no partial local state to clean up.
func (s *Service) Submit(ctx context.Context, req Request) error {
	if req.Email == "" || req.Message == "" {
		return errors.New("email and message are required")
	}

	ok, err := s.verifyCaptcha(ctx, req.CaptchaToken)
	if err != nil {
		return fmt.Errorf("verifying captcha: %w", err)
	}
	if !ok {
		return ErrInvalidCaptcha
	}

	inbox := email{
		From:    s.cfg.FromAddress,
		To:      []string{s.cfg.SupportInbox},
		ReplyTo: req.Email,
		Subject: fmt.Sprintf("Support request from %s", senderName(req)),
		Text: fmt.Sprintf("From: %s <%s>\n\n%s",
			senderName(req), req.Email, req.Message),
	}
	if err := s.sendEmail(ctx, inbox); err != nil {
		return fmt.Errorf("sending support email: %w", err)
	}

	confirmation := email{
		From:    s.cfg.FromAddress,
		To:      []string{req.Email},
		Subject: "We received your message",
		Text: fmt.Sprintf("Hi %s,\n\nThanks for reaching out. We received your "+
			"message and will get back to you soon.\n\nYour message:\n%s\n",
			senderName(req), req.Message),
	}
	if err := s.sendEmail(ctx, confirmation); err != nil {
		return fmt.Errorf("sending confirmation email: %w", err)
	}
	return nil
}

func senderName(req Request) string {
	if strings.TrimSpace(req.Name) != "" {
		return strings.TrimSpace(req.Name)
	}
	return req.Email
}

type captchaResponse struct {
	Success bool `json:"success"`
}

func (s *Service) verifyCaptcha(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	form := url.Values{
		"secret":   {s.cfg.HCaptchaSecret},
		"response": {token},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.hcaptchaURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	var body captchaResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, err
	}
	return body.Success, nil
}

type email struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

func (s *Service) sendEmail(ctx context.Context, msg email) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.resendURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.ResendAPIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("email provider returned status %d", resp.StatusCode)
	}
	return nil
}
