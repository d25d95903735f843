package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"casemail/internal/constants"
)

// Client dispatches outbound email through the messaging service.
type Client interface {
	SendEmail(ctx context.Context, req EmailRequest) error
}

type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = constants.DefaultHTTPTimeout
	}
	return &HTTPClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type wireEmailRequest struct {
	Sender     string              `json:"sender"`
	SenderName string              `json:"senderName,omitempty"`
	Recipient  string              `json:"recipient"`
	Subject    string              `json:"subject"`
	Message    string              `json:"message,omitempty"`
	HTMLBody   string              `json:"htmlMessage,omitempty"`
	Headers    map[string][]string `json:"headers,omitempty"`
}

func (c *HTTPClient) SendEmail(ctx context.Context, req EmailRequest) error {
	body, err := json.Marshal(wireEmailRequest{
		Sender:     req.Sender,
		SenderName: req.SenderName,
		Recipient:  req.Recipient,
		Subject:    req.Subject,
		Message:    req.Message,
		HTMLBody:   req.HTMLBody,
		Headers:    req.wireHeaders(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/email", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("messaging request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < constants.HTTPStatusOKMin || resp.StatusCode >= constants.HTTPStatusOKMax {
		return fmt.Errorf("messaging returned status: %d", resp.StatusCode)
	}

	return nil
}
