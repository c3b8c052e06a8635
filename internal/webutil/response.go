// internal/webutil/response.go
package webutil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"course_portal/internal/model"

	"github.com/go-playground/validator/v10"
)

// HandleError はエラーを解釈し、適切なJSONエラーレスポンスを返します。
func HandleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	statusCode := MapErrorToStatusCode(err)

	var errResp model.APIErrorResponse
	var appErr *model.AppError

	if errors.As(err, &appErr) {
		errResp = model.APIErrorResponse{Error: appErr.Detail}
		if statusCode >= http.StatusInternalServerError {
			logger.Error("Request failed", "error", err)
		}
	} else {
		// AppError ではない予期せぬエラー。詳細はログにだけ出す
		logger.Error("Unhandled error", "error", err)
		errResp = model.APIErrorResponse{Error: genericDetail(statusCode)}
	}

	RespondWithJSON(w, statusCode, errResp, logger)
}

// genericDetail は AppError でない sentinel エラー向けの汎用メッセージ
func genericDetail(statusCode int) model.ErrorDetail {
	switch statusCode {
	case http.StatusUnauthorized:
		return model.ErrorDetail{Code: "UNAUTHENTICATED", Message: "Sign in to continue."}
	case http.StatusPaymentRequired:
		return model.ErrorDetail{Code: "ACCESS_DENIED", Message: "This course is locked for your account."}
	case http.StatusNotFound:
		return model.ErrorDetail{Code: "NOT_FOUND", Message: "The requested resource was not found."}
	case http.StatusBadRequest:
		return model.ErrorDetail{Code: "INVALID_INPUT", Message: "The request is invalid."}
	case http.StatusConflict:
		return model.ErrorDetail{Code: "CONFLICT", Message: "The resource already exists."}
	case http.StatusForbidden:
		return model.ErrorDetail{Code: "FORBIDDEN", Message: "You are not allowed to do this."}
	default:
		return model.ErrorDetail{Code: "INTERNAL_SERVER_ERROR", Message: "An internal server error occurred."}
	}
}

// MapErrorToStatusCode はアプリケーションエラーをHTTPステータスコードにマッピングします。
// ペイウォールは 402 Payment Required
func MapErrorToStatusCode(err error) int {
	var appErr *model.AppError
	if errors.As(err, &appErr) {
		err = appErr.Unwrap()
	}

	switch {
	case errors.Is(err, model.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrAccessDenied):
		return http.StatusPaymentRequired
	case errors.Is(err, model.ErrNotFound), errors.Is(err, model.ErrCourseNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithJSON はJSONレスポンスを返します
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error marshaling JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":"INTERNAL_SERVER_ERROR","message":"Failed to build the response."}}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		logger.Warn("Error writing JSON response", "error", err)
	}
}

// NewValidationErrorResponse は翻訳済みメッセージを "; " で連結した AppError を作ります
func NewValidationErrorResponse(errs validator.ValidationErrors) *model.AppError {
	var fields []string
	var messages []string

	for _, err := range errs {
		fields = append(fields, err.Field())
		messages = append(messages, err.Translate(Trans))
	}

	return model.NewAppError(
		"VALIDATION_ERROR",
		strings.Join(messages, "; "),
		strings.Join(fields, ","),
		model.ErrInvalidInput,
	)
}
