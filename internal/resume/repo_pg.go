package resume

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgForeignKeyViolation = "23503"

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Get(ctx context.Context, userID string) (Record, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return Record{}, ErrNotFound
	}
	const query = `
SELECT u.id, u.first_name, u.last_name, u.email, r.document, COALESCE(r.submitted, false)
FROM users u
LEFT JOIN resumes r ON r.user_id = u.id
WHERE u.id = $1`
	var rec Record
	var document []byte
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&rec.ID,
		&rec.FirstName,
		&rec.LastName,
		&rec.Email,
		&document,
		&rec.Submitted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	submitted := rec.Submitted
	if len(document) > 0 {
		if err := json.Unmarshal(document, &rec.Content); err != nil {
			return Record{}, fmt.Errorf("decode resume document: %w", err)
		}
	}
	rec.Submitted = submitted
	rec.Content = rec.Content.clone()
	return rec, nil
}

func (r *PGRepo) Put(ctx context.Context, userID string, content Content) error {
	if _, err := uuid.Parse(userID); err != nil {
		return ErrNotFound
	}
	document, err := json.Marshal(content.clone())
	if err != nil {
		return fmt.Errorf("encode resume document: %w", err)
	}
	const query = `
INSERT INTO resumes (user_id, document, submitted, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (user_id) DO UPDATE SET
  document = EXCLUDED.document,
  submitted = EXCLUDED.submitted,
  updated_at = now()`
	_, err = r.DB.ExecContext(ctx, query, userID, document, content.Submitted)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return ErrNotFound
	}
	const query = `
DELETE FROM resumes
WHERE user_id = $1`
	_, err := r.DB.ExecContext(ctx, query, userID)
	return err
}
