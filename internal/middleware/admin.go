// internal/middleware/admin.go
package middleware

import (
	"context"
	"net/http"

	"course_portal/internal/model"
	"course_portal/internal/webutil"

	"github.com/google/uuid"
)

// AdminChecker は管理者かどうかを判定する (AccountService が実装する)
type AdminChecker interface {
	IsAdmin(ctx context.Context, accountID uuid.UUID) (bool, error)
}

// RequireAdmin は認証済みアカウントが管理者でなければ 403 を返します。認証ミドルウェアの後に置く
func RequireAdmin(checker AdminChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			accountID, err := GetAccountIDFromContext(r.Context())
			if err != nil {
				webutil.HandleError(w, logger, err)
				return
			}

			ok, err := checker.IsAdmin(r.Context(), accountID)
			if err != nil {
				webutil.HandleError(w, logger, err)
				return
			}
			if !ok {
				logger.Warn("Admin route accessed by non-admin account")
				webutil.HandleError(w, logger, model.NewAppError("FORBIDDEN", "Administrator access is required.", "", model.ErrForbidden))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
