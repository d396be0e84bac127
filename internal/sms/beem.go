package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spec-kit/repair-service/internal/config"
)

// Result reports the outcome of a send attempt. Skipped is true when the
// provider is globally disabled; that is not a failure.
type Result struct {
	Skipped bool
}

// Sender delivers text messages to customers.
type Sender interface {
	Send(ctx context.Context, message, recipient string) (Result, error)
}

type recipient struct {
	RecipientID string `json:"recipient_id"`
}

type smsRequest struct {
	Encoding     int         `json:"encoding"`
	Message      string      `json:"message"`
	ScheduleTime string      `json:"schedule_time"`
	Recipients   []recipient `json:"recipients"`
	SourceAddr   string      `json:"source_addr"`
}

// BeemClient calls the Beem SMS HTTP API.
type BeemClient struct {
	cfg    config.SMSConfig
	client *http.Client
}

// NewBeemClient builds the client.
func NewBeemClient(cfg config.SMSConfig) *BeemClient {
	return &BeemClient{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts a single-recipient SMS. A disabled provider reports a skipped
// result; misconfiguration and upstream failures are errors.
func (b *BeemClient) Send(ctx context.Context, message, to string) (Result, error) {
	if !b.cfg.Enabled {
		return Result{Skipped: true}, nil
	}
	if b.cfg.APIURL == "" {
		return Result{}, errors.New("BEEM_SMS_API is required")
	}
	if b.cfg.AuthToken == "" {
		return Result{}, errors.New("BEEM_AUTH_TOKEN is required")
	}
	if b.cfg.SourceAddress == "" {
		return Result{}, errors.New("BEEM_SOURCE_ADDRESS is required")
	}

	payload := smsRequest{
		Message:    message,
		Recipients: []recipient{{RecipientID: to}},
		SourceAddr: b.cfg.SourceAddress,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+b.cfg.AuthToken)

	resp, err := b.client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return Result{}, fmt.Errorf("beem sms api returned %d", resp.StatusCode)
	}
	return Result{}, nil
}
