package errand

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
	FindByNumber(ctx context.Context, namespace, municipalityID, errandNumber string) (*Errand, error)
	Create(ctx context.Context, e *Errand) error
	UpdateStatus(ctx context.Context, id, status string) error
}

type PostgresRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByNumber(ctx context.Context, namespace, municipalityID, errandNumber string) (*Errand, error) {
	query := `
		SELECT id, namespace, municipality_id, errand_number, title, description,
		       status, priority, channel, classification_category, classification_type,
		       touched, created_at
		FROM errands
		WHERE namespace = $1 AND municipality_id = $2 AND errand_number = $3
	`

	row := r.db.QueryRowContext(ctx, query, namespace, municipalityID, errandNumber)

	var e Errand
	err := row.Scan(
		&e.ID, &e.Namespace, &e.MunicipalityID, &e.ErrandNumber, &e.Title, &e.Description,
		&e.Status, &e.Priority, &e.Channel, &e.Classification.Category, &e.Classification.Type,
		&e.Touched, &e.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkgerrors.ErrNotFound.WithDetail("message",
			fmt.Sprintf("no errand with number %q", errandNumber))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find errand: %w", err)
	}

	if err := r.loadLabels(ctx, &e); err != nil {
		return nil, err
	}
	if err := r.loadStakeholders(ctx, &e); err != nil {
		return nil, err
	}

	return &e, nil
}

func (r *PostgresRepository) loadLabels(ctx context.Context, e *Errand) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT label FROM errand_labels WHERE errand_id = $1 ORDER BY label`, e.ID)
	if err != nil {
		return fmt.Errorf("failed to load labels: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return fmt.Errorf("failed to scan label: %w", err)
		}
		e.Labels = append(e.Labels, label)
	}
	return rows.Err()
}

func (r *PostgresRepository) loadStakeholders(ctx context.Context, e *Errand) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, role, contact_channel_type, contact_channel_value
		FROM errand_stakeholders
		WHERE errand_id = $1
		ORDER BY created_at
	`, e.ID)
	if err != nil {
		return fmt.Errorf("failed to load stakeholders: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s Stakeholder
		var chType, chValue sql.NullString
		if err := rows.Scan(&s.ID, &s.Role, &chType, &chValue); err != nil {
			return fmt.Errorf("failed to scan stakeholder: %w", err)
		}
		if chType.Valid {
			s.ContactChannels = append(s.ContactChannels, ContactChannel{
				Type:  chType.String,
				Value: chValue.String,
			})
		}
		e.Stakeholders = append(e.Stakeholders, s)
	}
	return rows.Err()
}

// Create inserts the errand together with its labels and stakeholders in one
// transaction, assigning id, errand number, and timestamps.
func (r *PostgresRepository) Create(ctx context.Context, e *Errand) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	now := time.Now()
	e.Touched = now
	e.CreatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if e.ErrandNumber == "" {
		number, err := nextErrandNumber(ctx, tx, e.Namespace, now)
		if err != nil {
			return err
		}
		e.ErrandNumber = number
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO errands (
			id, namespace, municipality_id, errand_number, title, description,
			status, priority, channel, classification_category, classification_type,
			touched, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		e.ID, e.Namespace, e.MunicipalityID, e.ErrandNumber, e.Title, e.Description,
		e.Status, e.Priority, e.Channel, e.Classification.Category, e.Classification.Type,
		e.Touched, e.CreatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return pkgerrors.ErrConflict.WithCause(err).WithDetail("message",
				fmt.Sprintf("errand number %q already exists", e.ErrandNumber))
		}
		return fmt.Errorf("failed to create errand: %w", err)
	}

	for _, label := range e.Labels {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO errand_labels (errand_id, label) VALUES ($1, $2)`,
			e.ID, label,
		); err != nil {
			return fmt.Errorf("failed to insert label: %w", err)
		}
	}

	for i := range e.Stakeholders {
		s := &e.Stakeholders[i]
		if s.ID == "" {
			s.ID = uuid.New().String()
		}
		var chType, chValue sql.NullString
		if len(s.ContactChannels) > 0 {
			chType = sql.NullString{String: s.ContactChannels[0].Type, Valid: true}
			chValue = sql.NullString{String: s.ContactChannels[0].Value, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO errand_stakeholders (id, errand_id, role, contact_channel_type, contact_channel_value, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, s.ID, e.ID, s.Role, chType, chValue, now); err != nil {
			return fmt.Errorf("failed to insert stakeholder: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit errand: %w", err)
	}

	return nil
}

// nextErrandNumber draws from the per-database sequence. Numbers look like
// KC-2026-000042: namespace prefix, year, zero-padded sequence value.
func nextErrandNumber(ctx context.Context, tx *sql.Tx, namespace string, now time.Time) (string, error) {
	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT nextval('errand_number_seq')`).Scan(&seq); err != nil {
		return "", fmt.Errorf("failed to draw errand number: %w", err)
	}
	return fmt.Sprintf("%s-%d-%06d", namespace, now.Year(), seq), nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE errands SET status = $2, touched = $3 WHERE id = $1`,
		id, status, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update errand status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return pkgerrors.ErrNotFound.WithDetail("message", fmt.Sprintf("no errand with id %q", id))
	}

	return nil
}
