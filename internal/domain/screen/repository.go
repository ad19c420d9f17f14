package screen

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/screentime/screentime-api/internal/pkg/database"
)

const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
)

// Repository defines screen data access
type Repository interface {
	Create(ctx context.Context, s *Screen) error
	GetByID(ctx context.Context, id uuid.UUID) (*Screen, error)
	List(ctx context.Context) ([]*Screen, error)
	Update(ctx context.Context, s *Screen) error
	// Delete removes the screen unless bookings reference it (ErrScreenHasBookings)
	Delete(ctx context.Context, id uuid.UUID) error
	// EnsureByName inserts s unless a screen with the same name exists, and
	// returns the stored row. Existing screens are left unchanged.
	EnsureByName(ctx context.Context, s *Screen) (*Screen, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates screen repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s *Screen) error {
	query := `
		INSERT INTO screens (id, name, location, specs, image_url, ai_hint, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Name,
		s.Location,
		s.Specs,
		s.ImageURL,
		s.AIHint,
		s.CreatedAt,
		s.UpdatedAt,
	)
	return mapWriteDBError(err)
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Screen, error) {
	query := `SELECT * FROM screens WHERE id = $1`
	var s Screen
	err := r.db.GetContext(ctx, &s, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) List(ctx context.Context) ([]*Screen, error) {
	query := `SELECT * FROM screens ORDER BY name ASC`
	var screens []*Screen
	err := r.db.SelectContext(ctx, &screens, query)
	return screens, err
}

func (r *repository) Update(ctx context.Context, s *Screen) error {
	query := `
		UPDATE screens SET
			name = $2, location = $3, specs = $4, image_url = $5, ai_hint = $6, updated_at = $7
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Name,
		s.Location,
		s.Specs,
		s.ImageURL,
		s.AIHint,
		s.UpdatedAt,
	)
	if err != nil {
		return mapWriteDBError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrScreenNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		// Lock the screen row so no booking can be added between count and delete.
		var locked uuid.UUID
		err := tx.GetContext(ctx, &locked, `SELECT id FROM screens WHERE id = $1 FOR UPDATE`, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrScreenNotFound
			}
			return err
		}

		var bookings int
		if err := tx.GetContext(ctx, &bookings, `SELECT COUNT(*) FROM bookings WHERE screen_id = $1`, id); err != nil {
			return err
		}
		if bookings > 0 {
			return ErrScreenHasBookings
		}

		_, err = tx.ExecContext(ctx, `DELETE FROM screens WHERE id = $1`, id)
		return mapWriteDBError(err)
	})
}

func (r *repository) EnsureByName(ctx context.Context, s *Screen) (*Screen, error) {
	// The no-op update makes RETURNING yield the existing row on conflict.
	query := `
		INSERT INTO screens (id, name, location, specs, image_url, ai_hint, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING *
	`
	var out Screen
	err := r.db.GetContext(ctx, &out, query,
		s.ID,
		s.Name,
		s.Location,
		s.Specs,
		s.ImageURL,
		s.AIHint,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func mapWriteDBError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case sqlStateUniqueViolation:
		return fmt.Errorf("%w: %w", ErrScreenNameTaken, err)
	case sqlStateForeignKeyViolation:
		// A booking slipped in despite the guard; ON DELETE RESTRICT rejected it.
		return fmt.Errorf("%w: %w", ErrScreenHasBookings, err)
	default:
		return err
	}
}
