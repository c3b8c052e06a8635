// internal/handlers/admin_handler.go
package handlers

import (
	"net/http"
	"strings"

	"course_portal/internal/middleware"
	"course_portal/internal/model"
	"course_portal/internal/service"
	"course_portal/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// AdminHandler は RequireAdmin の内側でだけルーティングする
type AdminHandler struct {
	service service.AdminService
}

func NewAdminHandler(s service.AdminService) *AdminHandler {
	return &AdminHandler{service: s}
}

func accountIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "account_id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, model.NewAppError("INVALID_ACCOUNT_ID", "Account ID must be a UUID.", "account_id", model.ErrInvalidInput)
	}
	return id, nil
}

// ListAccounts は ?status=pending|paid|rejected と ?q= (名前・メール・電話) で絞り込む
func (h *AdminHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	filter := model.AccountFilter{
		Status: model.PaymentStatus(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status")))),
		Query:  r.URL.Query().Get("q"),
	}
	accounts, err := h.service.ListAccounts(r.Context(), filter)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, accounts, logger)
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	stats, err := h.service.Stats(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, stats, logger)
}

// GrantAccess はコースを有効化し、アカウントを paid にします
func (h *AdminHandler) GrantAccess(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	accountID, err := accountIDParam(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.GrantAccessRequest
	if err := webutil.BindJSON(r, &req); err != nil {
		logger.Warn("Invalid grant access request", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.GrantAccess(r.Context(), accountID, req.Courses)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

func (h *AdminHandler) MarkContacted(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	accountID, err := accountIDParam(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.ContactedRequest
	if err := webutil.BindJSON(r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.MarkContacted(r.Context(), accountID, *req.Contacted)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}
