package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.resend.com"

// Mailer defines a public type used by goAccounts APIs.
//
// Mailer instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Mailer struct {
	apiKey  string
	from    string
	client  *http.Client
	baseURL string
}

// Option configures a [Mailer].
type Option func(*Mailer)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(url string) Option {
	return func(m *Mailer) {
		m.baseURL = url
	}
}

// WithHTTPClient overrides the HTTP client used for delivery.
func WithHTTPClient(client *http.Client) Option {
	return func(m *Mailer) {
		m.client = client
	}
}

// NewMailer describes the newmailer operation and its observable behavior.
//
// NewMailer may return an error when input validation, dependency calls, or security checks fail.
// NewMailer does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewMailer(apiKey, from string, opts ...Option) (*Mailer, error) {
	if apiKey == "" {
		return nil, errors.New("mail api key required")
	}
	if from == "" {
		return nil, errors.New("mail sender required")
	}

	m := &Mailer{
		apiKey: apiKey,
		from:   from,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL: defaultBaseURL,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

// Send describes the send operation and its observable behavior.
//
// Send may return an error when input validation, dependency calls, or security checks fail.
// Send does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	if to == "" {
		return errors.New("mail recipient required")
	}

	payload, err := json.Marshal(sendRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		m.baseURL+"/emails",
		bytes.NewReader(payload),
	)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.New("mail delivery rejected: " + string(detail))
	}

	return nil
}

// LogNotifier defines a public type used by goAccounts APIs.
//
// LogNotifier instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LogNotifier struct{}

// Send describes the send operation and its observable behavior.
//
// Send may return an error when input validation, dependency calls, or security checks fail.
// Send does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (LogNotifier) Send(_ context.Context, to, subject, body string) error {
	log.Printf("goAccounts: mail to=%s subject=%q body=%q", to, subject, body)
	return nil
}
