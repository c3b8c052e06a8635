// internal/handlers/course_handler.go
package handlers

import (
	"net/http"

	"course_portal/internal/middleware"
	"course_portal/internal/model"
	"course_portal/internal/service"
	"course_portal/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type CourseHandler struct {
	service service.CourseService
}

func NewCourseHandler(s service.CourseService) *CourseHandler {
	return &CourseHandler{service: s}
}

// scopeFromRequest は認証済みアカウントと X-Device-ID から進捗の保存先を決める
func scopeFromRequest(r *http.Request) (model.ProgressScope, error) {
	accountID, err := middleware.GetAccountIDFromContext(r.Context())
	if err != nil {
		return model.ProgressScope{}, err
	}
	return model.ProgressScope{
		AccountID: accountID,
		DeviceID:  middleware.GetDeviceIDFromContext(r.Context()),
	}, nil
}

// ListCourses はカタログ (価格・モジュール数) を返す。ログイン不要
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	webutil.RespondWithJSON(w, http.StatusOK, h.service.ListCourses(r.Context()), logger)
}

func (h *CourseHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	scope, err := scopeFromRequest(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.Dashboard(r.Context(), scope)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

func (h *CourseHandler) OpenCourse(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	scope, err := scopeFromRequest(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.OpenCourse(r.Context(), scope, chi.URLParam(r, "course_id"))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

func (h *CourseHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	scope, err := scopeFromRequest(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.GetLesson(r.Context(), scope, chi.URLParam(r, "course_id"), chi.URLParam(r, "lesson_id"))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

func (h *CourseHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	scope, err := scopeFromRequest(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.GetProgress(r.Context(), scope, chi.URLParam(r, "course_id"))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// ToggleLesson はレッスンの完了/未完了を反転し、更新後の進捗を返します
func (h *CourseHandler) ToggleLesson(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	scope, err := scopeFromRequest(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.ToggleLesson(r.Context(), scope, chi.URLParam(r, "course_id"), chi.URLParam(r, "lesson_id"))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// ImportProgress は別の端末の完了リストを取り込みます (和集合)
func (h *CourseHandler) ImportProgress(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	scope, err := scopeFromRequest(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.ImportProgressRequest
	if err := webutil.BindJSON(r, &req); err != nil {
		logger.Warn("Invalid import progress request", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.ImportProgress(r.Context(), scope, chi.URLParam(r, "course_id"), req.LessonIDs)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}
