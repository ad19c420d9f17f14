package screen

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Screen is a shared video display that can be booked
type Screen struct {
	ID        uuid.UUID      `db:"id" json:"id"`
	Name      string         `db:"name" json:"name"`
	Location  string         `db:"location" json:"location"`
	Specs     string         `db:"specs" json:"specs"`
	ImageURL  sql.NullString `db:"image_url" json:"image_url,omitempty"`
	AIHint    sql.NullString `db:"ai_hint" json:"ai_hint,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}
