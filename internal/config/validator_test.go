package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:                8080,
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 15,
		},
		Database: DatabaseConfig{
			Postgres: PostgresConfig{Host: "localhost", Port: 5432},
			Redis:    RedisConfig{Host: "localhost", Port: 6379},
		},
		Mailbox:   MailboxConfig{BaseURL: "http://email-reader:8080/api/v1"},
		Messaging: MessagingConfig{BaseURL: "http://messaging:8080/api/v1"},
		Ingestion: IngestionConfig{
			Schedule:        "0/2 * * * *",
			LockName:        "ingestion:poll",
			LockMaxHoldSecs: 120,
		},
	}
}

func TestValidateStatic(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantError bool
	}{
		{
			name:      "valid config",
			mutate:    func(cfg *Config) {},
			wantError: false,
		},
		{
			name:      "invalid port",
			mutate:    func(cfg *Config) { cfg.Server.Port = 0 },
			wantError: true,
		},
		{
			name:      "missing postgres host",
			mutate:    func(cfg *Config) { cfg.Database.Postgres.Host = "" },
			wantError: true,
		},
		{
			name:      "missing redis host",
			mutate:    func(cfg *Config) { cfg.Database.Redis.Host = "" },
			wantError: true,
		},
		{
			name:      "broker enabled without brokers",
			mutate:    func(cfg *Config) { cfg.Broker.Enabled = true },
			wantError: true,
		},
		{
			name: "broker enabled without topic",
			mutate: func(cfg *Config) {
				cfg.Broker.Enabled = true
				cfg.Broker.Brokers = []string{"kafka:9092"}
			},
			wantError: true,
		},
		{
			name: "broker fully configured",
			mutate: func(cfg *Config) {
				cfg.Broker.Enabled = true
				cfg.Broker.Brokers = []string{"kafka:9092"}
				cfg.Broker.EventTopic = "casemail.events"
			},
			wantError: false,
		},
		{
			name:      "broker disabled needs nothing",
			mutate:    func(cfg *Config) { cfg.Broker = BrokerConfig{} },
			wantError: false,
		},
		{
			name:      "missing mailbox url",
			mutate:    func(cfg *Config) { cfg.Mailbox.BaseURL = "" },
			wantError: true,
		},
		{
			name:      "malformed mailbox url",
			mutate:    func(cfg *Config) { cfg.Mailbox.BaseURL = "not a url" },
			wantError: true,
		},
		{
			name:      "missing messaging url",
			mutate:    func(cfg *Config) { cfg.Messaging.BaseURL = "" },
			wantError: true,
		},
		{
			name:      "invalid cron expression",
			mutate:    func(cfg *Config) { cfg.Ingestion.Schedule = "every two minutes" },
			wantError: true,
		},
		{
			name:      "missing schedule",
			mutate:    func(cfg *Config) { cfg.Ingestion.Schedule = "" },
			wantError: true,
		},
		{
			name:      "zero lock hold",
			mutate:    func(cfg *Config) { cfg.Ingestion.LockMaxHoldSecs = 0 },
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(&cfg)
			err := ValidateStatic(&cfg)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
