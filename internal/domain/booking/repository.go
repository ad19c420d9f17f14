package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
)

// Repository defines booking data access
type Repository interface {
	// Create inserts b unless the (screen, date, slot) tuple is already taken,
	// in which case it returns ErrSlotTaken.
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*BookingDetails, error)
	List(ctx context.Context, filter ListFilter) ([]*BookingDetails, int, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Counting reads used by the demand classifier
	CountBySlot(ctx context.Context, screenID uuid.UUID, start, end time.Time, slot TimeSlot) (int, error)
	CountByDay(ctx context.Context, screenID uuid.UUID, start, end time.Time) (int, error)
	CountByScreenOnDay(ctx context.Context, start, end time.Time) (map[uuid.UUID]int, error)
	BookedSlots(ctx context.Context, screenID uuid.UUID, start, end time.Time) ([]TimeSlot, error)
}

// ListFilter narrows the admin booking list
type ListFilter struct {
	ScreenID *uuid.UUID
	Date     *time.Time
	Limit    int
	Offset   int
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates booking repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const selectDetails = `
	SELECT b.id, b.screen_id, b.date, b.time_slot, b.user_name, b.user_contact, b.created_at,
	       s.name AS screen_name, s.location AS screen_location
	FROM bookings b
	JOIN screens s ON s.id = b.screen_id
`

func (r *repository) Create(ctx context.Context, b *Booking) error {
	query := `
		INSERT INTO bookings (id, screen_id, date, time_slot, user_name, user_contact, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (screen_id, date, time_slot) DO NOTHING
		RETURNING id
	`
	var id uuid.UUID
	err := r.db.GetContext(ctx, &id, query,
		b.ID,
		b.ScreenID,
		b.Date,
		b.TimeSlot,
		b.UserName,
		b.UserContact,
		b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSlotTaken
		}
		return mapCreateDBError(err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*BookingDetails, error) {
	query := selectDetails + ` WHERE b.id = $1`
	var b BookingDetails
	err := r.db.GetContext(ctx, &b, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*BookingDetails, int, error) {
	var (
		where []string
		args  []interface{}
	)

	if filter.ScreenID != nil {
		args = append(args, *filter.ScreenID)
		where = append(where, fmt.Sprintf("b.screen_id = $%d", len(args)))
	}
	if filter.Date != nil {
		start, end := DayBounds(*filter.Date)
		args = append(args, start, end)
		where = append(where, fmt.Sprintf("b.date BETWEEN $%d AND $%d", len(args)-1, len(args)))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM bookings b` + whereClause
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, filter.Offset)
	query := selectDetails + whereClause +
		fmt.Sprintf(" ORDER BY b.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var items []*BookingDetails
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *repository) CountBySlot(ctx context.Context, screenID uuid.UUID, start, end time.Time, slot TimeSlot) (int, error) {
	query := `
		SELECT COUNT(*) FROM bookings
		WHERE screen_id = $1 AND date BETWEEN $2 AND $3 AND time_slot = $4
	`
	var count int
	err := r.db.GetContext(ctx, &count, query, screenID, start, end, slot)
	return count, err
}

func (r *repository) CountByDay(ctx context.Context, screenID uuid.UUID, start, end time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE screen_id = $1 AND date BETWEEN $2 AND $3`
	var count int
	err := r.db.GetContext(ctx, &count, query, screenID, start, end)
	return count, err
}

func (r *repository) CountByScreenOnDay(ctx context.Context, start, end time.Time) (map[uuid.UUID]int, error) {
	query := `
		SELECT screen_id, COUNT(*) AS count
		FROM bookings
		WHERE date BETWEEN $1 AND $2
		GROUP BY screen_id
	`
	type screenCount struct {
		ScreenID uuid.UUID `db:"screen_id"`
		Count    int       `db:"count"`
	}
	var rows []screenCount
	if err := r.db.SelectContext(ctx, &rows, query, start, end); err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		counts[row.ScreenID] = row.Count
	}
	return counts, nil
}

func (r *repository) BookedSlots(ctx context.Context, screenID uuid.UUID, start, end time.Time) ([]TimeSlot, error) {
	query := `SELECT time_slot FROM bookings WHERE screen_id = $1 AND date BETWEEN $2 AND $3`
	var slots []TimeSlot
	err := r.db.SelectContext(ctx, &slots, query, screenID, start, end)
	return slots, err
}

func mapCreateDBError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case sqlStateUniqueViolation:
		return fmt.Errorf("%w: %w", ErrSlotTaken, err)
	case sqlStateForeignKeyViolation:
		return fmt.Errorf("%w: %w", ErrScreenNotFound, err)
	default:
		return err
	}
}
