package config

import (
	"fmt"
	"net/url"

	"github.com/robfig/cron/v3"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

func ValidateStatic(cfg *Config) error {
	var errors []error

	if err := validateServer(cfg.Server); err != nil {
		errors = append(errors, err)
	}

	if err := validateDatabase(cfg.Database); err != nil {
		errors = append(errors, err)
	}

	if err := validateBroker(cfg.Broker); err != nil {
		errors = append(errors, err)
	}

	if err := validateMailbox(cfg.Mailbox); err != nil {
		errors = append(errors, err)
	}

	if err := validateMessaging(cfg.Messaging); err != nil {
		errors = append(errors, err)
	}

	if err := validateIngestion(cfg.Ingestion); err != nil {
		errors = append(errors, err)
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %v", errors)
	}

	return nil
}

func validateServer(cfg ServerConfig) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return &ValidationError{
			Field:   "server.port",
			Message: fmt.Sprintf("port must be between 1 and 65535, got %d", cfg.Port),
		}
	}

	if cfg.ReadTimeoutSeconds <= 0 {
		return &ValidationError{
			Field:   "server.read_timeout_seconds",
			Message: "read timeout must be positive",
		}
	}

	if cfg.WriteTimeoutSeconds <= 0 {
		return &ValidationError{
			Field:   "server.write_timeout_seconds",
			Message: "write timeout must be positive",
		}
	}

	return nil
}

func validateDatabase(cfg DatabaseConfig) error {
	if cfg.Postgres.Host == "" {
		return &ValidationError{
			Field:   "database.postgres.host",
			Message: "postgres host is required",
		}
	}

	if cfg.Redis.Host == "" {
		return &ValidationError{
			Field:   "database.redis.host",
			Message: "redis host is required (scheduler lease lock)",
		}
	}

	return nil
}

func validateBroker(cfg BrokerConfig) error {
	if !cfg.Enabled {
		return nil
	}

	if len(cfg.Brokers) == 0 {
		return &ValidationError{
			Field:   "broker.brokers",
			Message: "at least one Kafka broker is required when broker is enabled",
		}
	}

	for i, broker := range cfg.Brokers {
		if broker == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("broker.brokers[%d]", i),
				Message: "broker address cannot be empty",
			}
		}
	}

	if cfg.EventTopic == "" {
		return &ValidationError{
			Field:   "broker.event_topic",
			Message: "event topic is required when broker is enabled",
		}
	}

	return nil
}

func validateMailbox(cfg MailboxConfig) error {
	if cfg.BaseURL == "" {
		return &ValidationError{
			Field:   "mailbox.base_url",
			Message: "mailbox base URL is required",
		}
	}

	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return &ValidationError{
			Field:   "mailbox.base_url",
			Message: fmt.Sprintf("invalid URL: %v", err),
		}
	}

	return nil
}

func validateMessaging(cfg MessagingConfig) error {
	if cfg.BaseURL == "" {
		return &ValidationError{
			Field:   "messaging.base_url",
			Message: "messaging base URL is required",
		}
	}

	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return &ValidationError{
			Field:   "messaging.base_url",
			Message: fmt.Sprintf("invalid URL: %v", err),
		}
	}

	return nil
}

func validateIngestion(cfg IngestionConfig) error {
	if cfg.Schedule == "" {
		return &ValidationError{
			Field:   "ingestion.schedule",
			Message: "cron schedule is required",
		}
	}

	if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
		return &ValidationError{
			Field:   "ingestion.schedule",
			Message: fmt.Sprintf("invalid cron expression %q: %v", cfg.Schedule, err),
		}
	}

	if cfg.LockMaxHoldSecs <= 0 {
		return &ValidationError{
			Field:   "ingestion.lock_max_hold_seconds",
			Message: "lock max hold must be positive",
		}
	}

	return nil
}
