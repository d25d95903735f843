package mailbox

import (
	"context"
	"fmt"

	"casemail/pkg/circuitbreaker"
)

// CircuitBreakerClient decorates a Client so a tenant whose mailbox service
// is down fails fast instead of stalling every scheduler run.
type CircuitBreakerClient struct {
	client Client
	cb     *circuitbreaker.Wrapper
}

func NewCircuitBreakerClient(client Client, cfg circuitbreaker.Config) *CircuitBreakerClient {
	return &CircuitBreakerClient{
		client: client,
		cb:     circuitbreaker.NewWrapper(cfg),
	}
}

func (c *CircuitBreakerClient) ListEmails(ctx context.Context, namespace, municipalityID string) ([]InboundEmail, error) {
	result, err := c.cb.ExecuteWithContext(ctx, func() (interface{}, error) {
		return c.client.ListEmails(ctx, namespace, municipalityID)
	})

	c.cb.RecordRequest(err == nil)

	if err != nil {
		if c.cb.IsOpen() {
			return nil, fmt.Errorf("circuit breaker is open for %s: %w", c.cb.Name(), err)
		}
		return nil, err
	}

	emails, ok := result.([]InboundEmail)
	if !ok {
		return nil, fmt.Errorf("mailbox client returned invalid result type")
	}

	return emails, nil
}

func (c *CircuitBreakerClient) DeleteEmail(ctx context.Context, municipalityID, id string) error {
	_, err := c.cb.ExecuteWithContext(ctx, func() (interface{}, error) {
		return nil, c.client.DeleteEmail(ctx, municipalityID, id)
	})

	c.cb.RecordRequest(err == nil)

	if err != nil && c.cb.IsOpen() {
		return fmt.Errorf("circuit breaker is open for %s: %w", c.cb.Name(), err)
	}
	return err
}

func (c *CircuitBreakerClient) GetAttachment(ctx context.Context, municipalityID, emailID, attachmentID string) ([]byte, error) {
	result, err := c.cb.ExecuteWithContext(ctx, func() (interface{}, error) {
		return c.client.GetAttachment(ctx, municipalityID, emailID, attachmentID)
	})

	c.cb.RecordRequest(err == nil)

	if err != nil {
		if c.cb.IsOpen() {
			return nil, fmt.Errorf("circuit breaker is open for %s: %w", c.cb.Name(), err)
		}
		return nil, err
	}

	content, ok := result.([]byte)
	if !ok {
		return nil, fmt.Errorf("mailbox client returned invalid result type")
	}

	return content, nil
}
