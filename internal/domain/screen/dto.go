package screen

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ScreenRequest for POST /admin/screens and PUT /admin/screens/{id}
type ScreenRequest struct {
	Name     string `json:"name" validate:"required,notblank,min=3,max=100"`
	Location string `json:"location" validate:"required,notblank,min=3,max=150"`
	Specs    string `json:"specs" validate:"required,notblank,min=3,max=255"`
	ImageURL string `json:"image_url,omitempty" validate:"omitempty,url,max=2048"`
	AIHint   string `json:"ai_hint,omitempty" validate:"omitempty,max=50"`
}

// apply copies the request onto s
func (r *ScreenRequest) apply(s *Screen) {
	s.Name = strings.TrimSpace(r.Name)
	s.Location = strings.TrimSpace(r.Location)
	s.Specs = strings.TrimSpace(r.Specs)
	s.ImageURL = nullString(r.ImageURL)
	s.AIHint = nullString(r.AIHint)
}

func nullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

// ScreenResponse represents a screen in API
type ScreenResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Specs     string    `json:"specs"`
	ImageURL  string    `json:"image_url,omitempty"`
	AIHint    string    `json:"ai_hint,omitempty"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

// ToResponse converts entity to response
func ToResponse(s *Screen) *ScreenResponse {
	return &ScreenResponse{
		ID:        s.ID,
		Name:      s.Name,
		Location:  s.Location,
		Specs:     s.Specs,
		ImageURL:  s.ImageURL.String,
		AIHint:    s.AIHint.String,
		CreatedAt: s.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
