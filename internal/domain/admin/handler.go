package admin

import (
	"net/http"
	"strconv"
	"time"

	"github.com/screentime/screentime-api/internal/pkg/errorhandler"
	"github.com/screentime/screentime-api/internal/pkg/response"
	"github.com/screentime/screentime-api/internal/pkg/validator"
)

// Handler handles admin HTTP requests
type Handler struct {
	service *Service
	jwtSvc  *JWTService
}

// NewHandler creates admin handler
func NewHandler(service *Service, jwtSvc *JWTService) *Handler {
	return &Handler{
		service: service,
		jwtSvc:  jwtSvc,
	}
}

// --- Authentication ---

// Login handles POST /admin/auth/login
// @Summary Admin login
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} response.Response{data=LoginResponse}
// @Failure 400,422,500 {object} response.Response
// @Failure 401,403 {object} response.Response
// @Router /admin/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		errorhandler.LogValidationError(r.Context(), errors)
		response.ValidationError(w, errors)
		return
	}

	admin, err := h.service.Login(r.Context(), req.Username, req.Password, clientIP(r))
	if err != nil {
		switch err {
		case ErrInvalidCredentials:
			response.Unauthorized(w, "Invalid username or password")
		case ErrAdminInactive:
			response.Forbidden(w, "Account is inactive")
		default:
			errorhandler.InternalError(r.Context(), w, "admin.login", err)
		}
		return
	}

	// Generate JWT
	token, expiresAt, err := h.jwtSvc.GenerateToken(admin)
	if err != nil {
		errorhandler.InternalError(r.Context(), w, "admin.generate_token", err)
		return
	}

	response.OK(w, &LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt.UTC().Format(time.RFC3339),
		Admin:       AdminResponseFromEntity(admin),
	})
}

// Me handles GET /admin/auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	adminID := GetAdminID(r.Context())

	admin, err := h.service.GetAdminByID(r.Context(), adminID)
	if err != nil {
		response.NotFound(w, "Admin not found")
		return
	}

	response.OK(w, AdminResponseFromEntity(admin))
}

// --- Audit Logs ---

// AuditLogs handles GET /admin/audit-logs
// @Summary List audit logs
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} response.Response{data=AuditLogListResponse}
// @Failure 401,403,500 {object} response.Response
// @Router /admin/audit-logs [get]
func (h *Handler) AuditLogs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	logs, total, err := h.service.ListAuditLogs(r.Context(), limit, offset)
	if err != nil {
		errorhandler.InternalError(r.Context(), w, "admin.list_audit_logs", err)
		return
	}

	if logs == nil {
		logs = []*AuditLog{}
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	response.OK(w, &AuditLogListResponse{
		Items:  logs,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}
