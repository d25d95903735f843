package communication

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"casemail/internal/mailbox"
	pkgerrors "casemail/pkg/errors"
)

type Repository interface {
	Save(ctx context.Context, comm *Communication) error
	ListByErrand(ctx context.Context, namespace, municipalityID, errandNumber string) ([]Communication, error)
	GetAttachment(ctx context.Context, attachmentID string) (*Attachment, error)
}

type PostgresRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &PostgresRepository{db: db}
}

// Save inserts the communication with its header and attachment rows in one
// transaction. Communications are never updated afterwards.
func (r *PostgresRepository) Save(ctx context.Context, comm *Communication) error {
	if comm.ID == "" {
		comm.ID = uuid.New().String()
	}
	comm.CreatedAt = time.Now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO communications (
			id, namespace, municipality_id, errand_number, direction, type,
			sender, target, subject, body, sent, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		comm.ID, comm.Namespace, comm.MunicipalityID, comm.ErrandNumber, comm.Direction, comm.Type,
		comm.Sender, comm.Target, comm.Subject, comm.Body, comm.Sent, comm.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert communication: %w", err)
	}

	for header, values := range comm.Headers {
		for i, value := range values {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO communication_headers (communication_id, header, value, position)
				VALUES ($1, $2, $3, $4)
			`, comm.ID, string(header), value, i); err != nil {
				return fmt.Errorf("failed to insert header row: %w", err)
			}
		}
	}

	for i := range comm.Attachments {
		a := &comm.Attachments[i]
		if a.ID == "" {
			a.ID = uuid.New().String()
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO communication_attachments (id, communication_id, name, content_type, foreign_id, blob_key)
			VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		`, a.ID, comm.ID, a.Name, a.ContentType, a.ForeignID, a.BlobKey); err != nil {
			return fmt.Errorf("failed to insert attachment row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit communication: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListByErrand(ctx context.Context, namespace, municipalityID, errandNumber string) ([]Communication, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, namespace, municipality_id, errand_number, direction, type,
		       sender, target, subject, body, sent, created_at
		FROM communications
		WHERE namespace = $1 AND municipality_id = $2 AND errand_number = $3
		ORDER BY sent
	`, namespace, municipalityID, errandNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to list communications: %w", err)
	}
	defer rows.Close()

	var comms []Communication
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		var c Communication
		if err := rows.Scan(
			&c.ID, &c.Namespace, &c.MunicipalityID, &c.ErrandNumber, &c.Direction, &c.Type,
			&c.Sender, &c.Target, &c.Subject, &c.Body, &c.Sent, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan communication: %w", err)
		}
		comms = append(comms, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate communications: %w", err)
	}

	for i := range comms {
		if err := r.loadDetails(ctx, &comms[i]); err != nil {
			return nil, err
		}
	}

	return comms, nil
}

func (r *PostgresRepository) loadDetails(ctx context.Context, c *Communication) error {
	headerRows, err := r.db.QueryContext(ctx, `
		SELECT header, value
		FROM communication_headers
		WHERE communication_id = $1
		ORDER BY header, position
	`, c.ID)
	if err != nil {
		return fmt.Errorf("failed to load headers: %w", err)
	}
	defer headerRows.Close()

	for headerRows.Next() {
		var header, value string
		if err := headerRows.Scan(&header, &value); err != nil {
			return fmt.Errorf("failed to scan header: %w", err)
		}
		if c.Headers == nil {
			c.Headers = make(map[mailbox.Header][]string)
		}
		c.Headers[mailbox.Header(header)] = append(c.Headers[mailbox.Header(header)], value)
	}
	if err := headerRows.Err(); err != nil {
		return err
	}

	attRows, err := r.db.QueryContext(ctx, `
		SELECT id, name, content_type, foreign_id, COALESCE(blob_key, '')
		FROM communication_attachments
		WHERE communication_id = $1
		ORDER BY name
	`, c.ID)
	if err != nil {
		return fmt.Errorf("failed to load attachments: %w", err)
	}
	defer attRows.Close()

	for attRows.Next() {
		var a Attachment
		if err := attRows.Scan(&a.ID, &a.Name, &a.ContentType, &a.ForeignID, &a.BlobKey); err != nil {
			return fmt.Errorf("failed to scan attachment: %w", err)
		}
		c.Attachments = append(c.Attachments, a)
	}
	return attRows.Err()
}

func (r *PostgresRepository) GetAttachment(ctx context.Context, attachmentID string) (*Attachment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, content_type, foreign_id, COALESCE(blob_key, '')
		FROM communication_attachments
		WHERE id = $1
	`, attachmentID)

	var a Attachment
	err := row.Scan(&a.ID, &a.Name, &a.ContentType, &a.ForeignID, &a.BlobKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkgerrors.ErrNotFound.WithDetail("message",
			fmt.Sprintf("no attachment with id %q", attachmentID))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attachment: %w", err)
	}

	return &a, nil
}
