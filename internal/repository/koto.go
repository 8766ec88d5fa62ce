package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/kotodex/internal/models"
	"github.com/lib/pq"
)

// kotoColumns is the column list shared by every koto query that scans a full row.
const kotoColumns = `id, kotoba, tags, lectura, frase, espanol, ingles, is_pinned, user_id, created_at, on_edit, on_pin_koto`

// PostgresKotoRepository implements vocabulary entry persistence against a
// PostgreSQL database.
type PostgresKotoRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresKotoRepository creates a new PostgresKotoRepository using the
// provided *sql.DB. db must be a valid connection to a PostgreSQL instance.
func NewPostgresKotoRepository(db *sql.DB) *PostgresKotoRepository {
	return &PostgresKotoRepository{DB: db}
}

// KotobaExists checks whether an entry with the given headword already exists
// anywhere in the store. Headword uniqueness is global, not per owner.
// excludeID, when non-empty, skips that entry so an update does not collide
// with itself.
func (r *PostgresKotoRepository) KotobaExists(ctx context.Context, kotoba, excludeID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM kotos WHERE kotoba = $1 AND id <> $2)`,
		kotoba, excludeID,
	).Scan(&exists)
	return exists, err
}

// CreateKoto inserts a new entry. The unique constraint on kotoba is
// authoritative: a violation is reported as ErrDuplicate even if the caller's
// pre-check raced past it.
func (r *PostgresKotoRepository) CreateKoto(ctx context.Context, koto *models.Koto) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO kotos (id, kotoba, tags, lectura, frase, espanol, ingles, is_pinned, user_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		koto.ID, koto.Kotoba, pq.Array(koto.Tags), koto.Lectura, koto.Frase,
		koto.Español, koto.Ingles, koto.IsPinned, koto.UserID, koto.CreatedAt,
	)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert koto: %w", err)
	}
	return nil
}

// UpdateKoto replaces every mutable field of the entry identified by koto.ID,
// scoped to koto.UserID. Returns the updated row, ErrNotFound when no entry
// matches both id and owner, or ErrDuplicate on a headword collision.
func (r *PostgresKotoRepository) UpdateKoto(ctx context.Context, koto *models.Koto) (*models.Koto, error) {
	row := r.DB.QueryRowContext(
		ctx,
		`UPDATE kotos
		    SET kotoba = $1, tags = $2, lectura = $3, frase = $4, espanol = $5,
		        ingles = $6, is_pinned = $7, on_edit = $8
		  WHERE id = $9 AND user_id = $10
		  RETURNING `+kotoColumns,
		koto.Kotoba, pq.Array(koto.Tags), koto.Lectura, koto.Frase, koto.Español,
		koto.Ingles, koto.IsPinned, koto.OnEdit, koto.ID, koto.UserID,
	)
	updated, err := scanKoto(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if isDuplicate(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("update koto: %w", err)
	}
	return updated, nil
}

// GetKotosByUser fetches all entries owned by userID, pinned entries first,
// ties broken by insertion order.
func (r *PostgresKotoRepository) GetKotosByUser(ctx context.Context, userID string) ([]models.Koto, error) {
	rows, err := r.DB.QueryContext(
		ctx,
		`SELECT `+kotoColumns+` FROM kotos WHERE user_id = $1 ORDER BY is_pinned DESC, seq ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("GetKotosByUser: %w", err)
	}
	defer rows.Close()

	kotos := []models.Koto{}
	for rows.Next() {
		koto, err := scanKoto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		kotos = append(kotos, *koto)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return kotos, nil
}

// DeleteKoto removes the entry identified by id, scoped to userID. A wrong id
// and a wrong owner are both reported as ErrNotFound.
func (r *PostgresKotoRepository) DeleteKoto(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(
		ctx,
		`DELETE FROM kotos WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("delete koto: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete koto: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// SetKotoPinned updates only the pinned flag (and its timestamp) of the entry
// identified by id, scoped to userID. Returns the updated row or ErrNotFound.
func (r *PostgresKotoRepository) SetKotoPinned(ctx context.Context, userID, id string, pinned bool) (*models.Koto, error) {
	row := r.DB.QueryRowContext(
		ctx,
		`UPDATE kotos SET is_pinned = $1, on_pin_koto = now()
		  WHERE id = $2 AND user_id = $3
		  RETURNING `+kotoColumns,
		pinned, id, userID,
	)
	koto, err := scanKoto(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("set koto pinned: %w", err)
	}
	return koto, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanKoto(row rowScanner) (*models.Koto, error) {
	var koto models.Koto
	var onEdit, onPin sql.NullTime
	err := row.Scan(
		&koto.ID, &koto.Kotoba, pq.Array(&koto.Tags), &koto.Lectura, &koto.Frase,
		&koto.Español, &koto.Ingles, &koto.IsPinned, &koto.UserID, &koto.CreatedAt,
		&onEdit, &onPin,
	)
	if err != nil {
		return nil, err
	}
	if koto.Tags == nil {
		koto.Tags = []string{}
	}
	if onEdit.Valid {
		koto.OnEdit = &onEdit.Time
	}
	if onPin.Valid {
		koto.OnPinKoto = &onPin.Time
	}
	return &koto, nil
}
