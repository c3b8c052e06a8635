// internal/middleware/dev_auth.go
package middleware

import (
	"net/http"

	"course_portal/internal/webutil"

	"github.com/google/uuid"
)

// DevAccountContextMiddleware は開発時用ミドルウェアです。
// X-Account-ID ヘッダーからUUIDを抽出し、コンテキストに設定します。
// アカウントの存在チェックは行いません。
func DevAccountContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r.Context())

		accountIDStr := r.Header.Get("X-Account-ID")
		if accountIDStr == "" {
			logger.Warn("[DEV AUTH] Failed: X-Account-ID header missing")
			webutil.HandleError(w, logger, unauthenticated("[DEV] Missing X-Account-ID header."))
			return
		}

		accountID, err := uuid.Parse(accountIDStr)
		if err != nil {
			logger.Warn("[DEV AUTH] Failed: Invalid X-Account-ID format", "value", accountIDStr)
			webutil.HandleError(w, logger, unauthenticated("[DEV] Invalid X-Account-ID format."))
			return
		}

		logger.Debug("[DEV AUTH] Account ID set to context (no validation)", "account_id", accountID)
		next.ServeHTTP(w, r.WithContext(withAccountID(r.Context(), accountID)))
	})
}
