package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/screentime/screentime-api/internal/pkg/password"
)

// ErrEmptyPassword is returned by EnsureAdmin when neither a password nor a hash is supplied.
var ErrEmptyPassword = errors.New("initial admin password is empty")

// Service handles admin business logic
type Service struct {
	repo Repository
}

// NewService creates admin service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// --- Authentication ---

// Login authenticates admin by username and password
func (s *Service) Login(ctx context.Context, username, pwd, ip string) (*AdminUser, error) {
	admin, err := s.repo.GetAdminByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get admin by username: %w", err)
	}
	if admin == nil {
		return nil, ErrInvalidCredentials
	}

	if !password.Verify(pwd, admin.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if !admin.IsActive {
		return nil, ErrAdminInactive
	}

	// Update last login
	if err := s.repo.UpdateLastLogin(ctx, admin.ID, ip); err != nil {
		log.Warn().Err(err).Str("admin_id", admin.ID.String()).Msg("Failed to update last login")
	} else {
		admin.LastLoginAt = sql.NullTime{Time: time.Now(), Valid: true}
	}

	return admin, nil
}

// GetAdminByID returns admin by ID
func (s *Service) GetAdminByID(ctx context.Context, id uuid.UUID) (*AdminUser, error) {
	admin, err := s.repo.GetAdminByID(ctx, id)
	if err != nil || admin == nil {
		return nil, ErrAdminNotFound
	}
	return admin, nil
}

// EnsureAdmin creates the admin if it does not exist, otherwise resets its
// password. secret may be a plain password or a precomputed bcrypt hash.
func (s *Service) EnsureAdmin(ctx context.Context, username, secret string) (*AdminUser, bool, error) {
	if secret == "" {
		return nil, false, ErrEmptyPassword
	}

	hash := secret
	if !password.IsHash(secret) {
		var err error
		hash, err = password.Hash(secret)
		if err != nil {
			return nil, false, fmt.Errorf("hash password: %w", err)
		}
	}

	existing, err := s.repo.GetAdminByUsername(ctx, username)
	if err != nil {
		return nil, false, fmt.Errorf("get admin by username: %w", err)
	}

	if existing != nil {
		if err := s.repo.UpdatePasswordHash(ctx, existing.ID, hash); err != nil {
			return nil, false, fmt.Errorf("update admin password: %w", err)
		}
		existing.PasswordHash = hash
		existing.IsActive = true
		return existing, false, nil
	}

	now := time.Now()
	admin := &AdminUser{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateAdmin(ctx, admin); err != nil {
		return nil, false, fmt.Errorf("create admin: %w", err)
	}

	return admin, true, nil
}

// --- Audit Logs ---

// ListAuditLogs returns audit logs, newest first
func (s *Service) ListAuditLogs(ctx context.Context, limit, offset int) ([]*AuditLog, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListAuditLogs(ctx, limit, offset)
}

// LogAction creates an audit log entry for the admin found in ctx.
// Failures are logged and never fail the calling operation.
func (s *Service) LogAction(ctx context.Context, entry AuditEntry) {
	adminID := GetAdminID(ctx)

	oldJSON, _ := json.Marshal(entry.OldValue)
	newJSON, _ := json.Marshal(entry.NewValue)

	ip := GetClientIP(ctx)

	auditLog := &AuditLog{
		ID:         uuid.New(),
		AdminID:    uuid.NullUUID{UUID: adminID, Valid: adminID != uuid.Nil},
		AdminName:  GetAdminName(ctx),
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   uuid.NullUUID{UUID: entry.EntityID, Valid: entry.EntityID != uuid.Nil},
		OldValue:   oldJSON,
		NewValue:   newJSON,
		IPAddress:  sql.NullString{String: ip, Valid: ip != ""},
		CreatedAt:  time.Now(),
	}

	if err := s.repo.CreateAuditLog(ctx, auditLog); err != nil {
		// Log error but don't fail the operation
		log.Error().Err(err).Str("action", entry.Action).Msg("Failed to create audit log")
	}
}
