package emailconf

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	pkgerrors "casemail/pkg/errors"
)

type Repository interface {
	Create(ctx context.Context, cfg *TenantEmailConfig) error
	Get(ctx context.Context, namespace, municipalityID string) (*TenantEmailConfig, error)
	List(ctx context.Context) ([]TenantEmailConfig, error)
	ListEnabled(ctx context.Context) ([]TenantEmailConfig, error)
	Update(ctx context.Context, cfg *TenantEmailConfig) error
	Delete(ctx context.Context, namespace, municipalityID string) error
}

type PostgresRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &PostgresRepository{db: db}
}

const configColumns = `
	id, namespace, municipality_id, enabled, status_for_new,
	inactive_status, days_of_inactivity_before_reject,
	trigger_status_change_on, status_change_to,
	errand_closed_email_sender, errand_closed_email_subject, errand_closed_email_template,
	add_sender_as_stakeholder, stakeholder_role, errand_channel,
	created_at, updated_at
`

func (r *PostgresRepository) Create(ctx context.Context, cfg *TenantEmailConfig) error {
	if cfg.ID == "" {
		cfg.ID = uuid.New().String()
	}
	now := time.Now()
	cfg.CreatedAt = now
	cfg.UpdatedAt = now

	query := `
		INSERT INTO tenant_email_configs (` + configColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.db.ExecContext(ctx, query,
		cfg.ID, cfg.Namespace, cfg.MunicipalityID, cfg.Enabled, cfg.StatusForNew,
		cfg.InactiveStatus, cfg.DaysOfInactivityBeforeReject,
		cfg.TriggerStatusChangeOn, cfg.StatusChangeTo,
		cfg.ErrandClosedEmailSender, cfg.ErrandClosedEmailSubject, cfg.ErrandClosedEmailTemplate,
		cfg.AddSenderAsStakeholder, cfg.StakeholderRole, cfg.ErrandChannel,
		cfg.CreatedAt, cfg.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return pkgerrors.ErrConflict.WithCause(err).WithDetail("message",
				fmt.Sprintf("email config for %s/%s already exists", cfg.Namespace, cfg.MunicipalityID))
		}
		return fmt.Errorf("failed to create email config: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, namespace, municipalityID string) (*TenantEmailConfig, error) {
	query := `
		SELECT ` + configColumns + `
		FROM tenant_email_configs
		WHERE namespace = $1 AND municipality_id = $2
	`

	row := r.db.QueryRowContext(ctx, query, namespace, municipalityID)

	cfg, err := scanConfig(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkgerrors.ErrNotFound.WithDetail("message",
			fmt.Sprintf("no email config for %s/%s", namespace, municipalityID))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get email config: %w", err)
	}

	return cfg, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]TenantEmailConfig, error) {
	return r.list(ctx, `SELECT `+configColumns+` FROM tenant_email_configs ORDER BY namespace, municipality_id`)
}

func (r *PostgresRepository) ListEnabled(ctx context.Context) ([]TenantEmailConfig, error) {
	return r.list(ctx, `SELECT `+configColumns+` FROM tenant_email_configs WHERE enabled = true ORDER BY namespace, municipality_id`)
}

func (r *PostgresRepository) list(ctx context.Context, query string) ([]TenantEmailConfig, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list email configs: %w", err)
	}
	defer rows.Close()

	var configs []TenantEmailConfig
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		cfg, err := scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan email config: %w", err)
		}
		configs = append(configs, *cfg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate email configs: %w", err)
	}

	return configs, nil
}

func (r *PostgresRepository) Update(ctx context.Context, cfg *TenantEmailConfig) error {
	cfg.UpdatedAt = time.Now()

	query := `
		UPDATE tenant_email_configs SET
			enabled = $3, status_for_new = $4,
			inactive_status = $5, days_of_inactivity_before_reject = $6,
			trigger_status_change_on = $7, status_change_to = $8,
			errand_closed_email_sender = $9, errand_closed_email_subject = $10,
			errand_closed_email_template = $11,
			add_sender_as_stakeholder = $12, stakeholder_role = $13, errand_channel = $14,
			updated_at = $15
		WHERE namespace = $1 AND municipality_id = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		cfg.Namespace, cfg.MunicipalityID,
		cfg.Enabled, cfg.StatusForNew,
		cfg.InactiveStatus, cfg.DaysOfInactivityBeforeReject,
		cfg.TriggerStatusChangeOn, cfg.StatusChangeTo,
		cfg.ErrandClosedEmailSender, cfg.ErrandClosedEmailSubject,
		cfg.ErrandClosedEmailTemplate,
		cfg.AddSenderAsStakeholder, cfg.StakeholderRole, cfg.ErrandChannel,
		cfg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update email config: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return pkgerrors.ErrNotFound.WithDetail("message",
			fmt.Sprintf("no email config for %s/%s", cfg.Namespace, cfg.MunicipalityID))
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, namespace, municipalityID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM tenant_email_configs WHERE namespace = $1 AND municipality_id = $2`,
		namespace, municipalityID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete email config: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return pkgerrors.ErrNotFound.WithDetail("message",
			fmt.Sprintf("no email config for %s/%s", namespace, municipalityID))
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConfig(row rowScanner) (*TenantEmailConfig, error) {
	var cfg TenantEmailConfig
	err := row.Scan(
		&cfg.ID, &cfg.Namespace, &cfg.MunicipalityID, &cfg.Enabled, &cfg.StatusForNew,
		&cfg.InactiveStatus, &cfg.DaysOfInactivityBeforeReject,
		&cfg.TriggerStatusChangeOn, &cfg.StatusChangeTo,
		&cfg.ErrandClosedEmailSender, &cfg.ErrandClosedEmailSubject, &cfg.ErrandClosedEmailTemplate,
		&cfg.AddSenderAsStakeholder, &cfg.StakeholderRole, &cfg.ErrandChannel,
		&cfg.CreatedAt, &cfg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
