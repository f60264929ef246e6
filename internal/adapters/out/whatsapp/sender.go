// Package whatsapp sends courier notifications through an Evolution API
// instance. Messages are plain text and delivery is best effort.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"rotafila/internal/core/domain/model/kernel"
	"rotafila/internal/pkg/errs"
)

const defaultTimeout = 10 * time.Second

// Sender implements the Notifier port against the Evolution API.
type Sender struct {
	client   *http.Client
	baseURL  string
	instance string
	apiKey   string
}

// NewSender creates a Sender for the given Evolution API endpoint.
func NewSender(baseURL, instance, apiKey string) (*Sender, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if instance == "" {
		return nil, errs.NewValueIsRequiredError("instance")
	}
	if apiKey == "" {
		return nil, errs.NewValueIsRequiredError("apiKey")
	}

	return &Sender{
		client:   &http.Client{Timeout: defaultTimeout},
		baseURL:  baseURL,
		instance: instance,
		apiKey:   apiKey,
	}, nil
}

type sendTextRequest struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

// Notify posts a text message to the courier's WhatsApp number.
func (s *Sender) Notify(ctx context.Context, phone kernel.Phone, text string) error {
	if err := phone.Validate(); err != nil {
		return err
	}
	if text == "" {
		return errs.NewValueIsRequiredError("text")
	}

	payload, err := json.Marshal(sendTextRequest{
		Number: phone.WhatsAppNumber(),
		Text:   text,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/message/sendText/%s", s.baseURL, s.instance)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("evolution api returned %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
