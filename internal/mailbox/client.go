package mailbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"casemail/internal/constants"
)

// Client is the consumer-side contract against the email-reader service.
type Client interface {
	ListEmails(ctx context.Context, namespace, municipalityID string) ([]InboundEmail, error)
	DeleteEmail(ctx context.Context, municipalityID, id string) error
	GetAttachment(ctx context.Context, municipalityID, emailID, attachmentID string) ([]byte, error)
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

// wireEmail is the email-reader response shape. Headers arrive keyed by raw
// RFC 2822 names; keys outside the closed Header set are dropped.
type wireEmail struct {
	ID          string              `json:"id"`
	Subject     string              `json:"subject"`
	Sender      string              `json:"sender"`
	Recipients  []string            `json:"recipients"`
	Message     string              `json:"message"`
	Headers     map[string][]string `json:"headers"`
	Metadata    map[string]string   `json:"metadata"`
	ReceivedAt  time.Time           `json:"receivedAt"`
	Attachments []wireAttachment    `json:"attachments"`
}

type wireAttachment struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
}

func (w wireEmail) toDomain() InboundEmail {
	email := InboundEmail{
		ID:         w.ID,
		Subject:    w.Subject,
		Sender:     w.Sender,
		Recipients: w.Recipients,
		Message:    w.Message,
		Metadata:   w.Metadata,
		ReceivedAt: w.ReceivedAt,
		Headers:    make(map[Header][]string, len(w.Headers)),
	}

	for key, values := range w.Headers {
		if header, ok := ParseHeader(key); ok {
			email.Headers[header] = values
		}
	}

	for _, a := range w.Attachments {
		email.Attachments = append(email.Attachments, EmailAttachment{
			ID:          a.ID,
			Name:        a.Name,
			ContentType: a.ContentType,
		})
	}

	return email
}

func (c *HTTPClient) ListEmails(ctx context.Context, namespace, municipalityID string) ([]InboundEmail, error) {
	endpoint := fmt.Sprintf("%s/%s/email?namespace=%s",
		c.baseURL, url.PathEscape(municipalityID), url.QueryEscape(namespace))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mailbox request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < constants.HTTPStatusOKMin || resp.StatusCode >= constants.HTTPStatusOKMax {
		return nil, fmt.Errorf("mailbox returned status: %d", resp.StatusCode)
	}

	var wireEmails []wireEmail
	if err := json.NewDecoder(resp.Body).Decode(&wireEmails); err != nil {
		return nil, fmt.Errorf("failed to decode mailbox response: %w", err)
	}

	emails := make([]InboundEmail, 0, len(wireEmails))
	for _, w := range wireEmails {
		emails = append(emails, w.toDomain())
	}

	return emails, nil
}

func (c *HTTPClient) DeleteEmail(ctx context.Context, municipalityID, id string) error {
	endpoint := fmt.Sprintf("%s/%s/email/%s",
		c.baseURL, url.PathEscape(municipalityID), url.PathEscape(id))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("mailbox delete failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < constants.HTTPStatusOKMin || resp.StatusCode >= constants.HTTPStatusOKMax {
		return fmt.Errorf("mailbox delete returned status: %d", resp.StatusCode)
	}

	return nil
}

func (c *HTTPClient) GetAttachment(ctx context.Context, municipalityID, emailID, attachmentID string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/%s/email/%s/attachments/%s",
		c.baseURL, url.PathEscape(municipalityID), url.PathEscape(emailID), url.PathEscape(attachmentID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("attachment request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < constants.HTTPStatusOKMin || resp.StatusCode >= constants.HTTPStatusOKMax {
		return nil, fmt.Errorf("attachment request returned status: %d", resp.StatusCode)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read attachment body: %w", err)
	}

	return content, nil
}
