// internal/middleware/auth.go
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"course_portal/internal/config"
	"course_portal/internal/model"
	"course_portal/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// accessTokenQueryParam は EventSource がヘッダーを付けられないための逃げ道 (SSE のみで使う)
const accessTokenQueryParam = "access_token"

func unauthenticated(message string) error {
	return model.NewAppError("UNAUTHENTICATED", message, "", model.ErrUnauthenticated)
}

// JWTAuthMiddleware は Authorization ヘッダーの Bearer トークンを検証し、アカウントIDをコンテキストに入れます
func JWTAuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			tokenString, err := bearerToken(r)
			if err != nil {
				logger.Warn("JWT auth failed", "error", err)
				webutil.HandleError(w, logger, err)
				return
			}

			// jwt.Parse は署名と有効期限(exp)の両方を検証する
			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(cfg.JWT.SecretKey), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				logger.Warn("JWT auth failed: Invalid token", "error", err)
				webutil.HandleError(w, logger, unauthenticated("Invalid or expired token."))
				return
			}

			subject, err := token.Claims.GetSubject()
			if err != nil || subject == "" {
				logger.Warn("JWT auth failed: Subject (sub) claim missing", "error", err)
				webutil.HandleError(w, logger, unauthenticated("Token does not identify an account."))
				return
			}

			accountID, err := uuid.Parse(subject)
			if err != nil {
				logger.Warn("JWT auth failed: Invalid subject (sub) format", "subject", subject, "error", err)
				webutil.HandleError(w, logger, unauthenticated("Token does not identify an account."))
				return
			}

			next.ServeHTTP(w, r.WithContext(withAccountID(r.Context(), accountID)))
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		if q := r.URL.Query().Get(accessTokenQueryParam); q != "" {
			return q, nil
		}
		return "", unauthenticated("Authorization header is required.")
	}

	headerParts := strings.Split(authHeader, " ")
	if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" || headerParts[1] == "" {
		return "", unauthenticated("Authorization header must be 'Bearer <token>'.")
	}
	return headerParts[1], nil
}

// withAccountID はアカウントIDとそれを付けたロガーをコンテキストに入れる
func withAccountID(ctx context.Context, accountID uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, model.AccountIDKey, accountID)
	return WithLogger(ctx, GetLogger(ctx).With("account_id", accountID.String()))
}

// GetAccountIDFromContext は認証ミドルウェアが設定したアカウントIDを返します
func GetAccountIDFromContext(ctx context.Context) (uuid.UUID, error) {
	value, ok := ctx.Value(model.AccountIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, unauthenticated("Sign in to continue.")
	}
	return value, nil
}
