// internal/middleware/middleware_test.go
package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"course_portal/internal/config"
	"course_portal/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.SecretKey = testSecret
	return cfg
}

func signed(t *testing.T, secret string, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

// echoAccount は認証後のハンドラ。コンテキストのアカウントIDをそのまま返す
var echoAccount = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	id, err := GetAccountIDFromContext(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	w.Write([]byte(id.String()))
})

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp.Error.Code
}

func TestJWTAuthMiddleware(t *testing.T) {
	accountID := uuid.New()
	handler := JWTAuthMiddleware(testConfig())(echoAccount)
	valid := jwt.RegisteredClaims{
		Subject:   accountID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	tests := []struct {
		name       string
		header     string
		query      string
		wantStatus int
	}{
		{"正常系: Bearer ヘッダー", "Bearer " + signed(t, testSecret, valid), "", http.StatusOK},
		{"正常系: access_token クエリ", "", signed(t, testSecret, valid), http.StatusOK},
		{"異常系: ヘッダーなし", "", "", http.StatusUnauthorized},
		{"異常系: Bearer 以外", "Basic abc", "", http.StatusUnauthorized},
		{"異常系: 署名鍵が違う", "Bearer " + signed(t, "other", valid), "", http.StatusUnauthorized},
		{"異常系: 期限切れ", "Bearer " + signed(t, testSecret, jwt.RegisteredClaims{
			Subject:   accountID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		}), "", http.StatusUnauthorized},
		{"異常系: sub が UUID でない", "Bearer " + signed(t, testSecret, jwt.RegisteredClaims{Subject: "nope"}), "", http.StatusUnauthorized},
		{"異常系: sub なし", "Bearer " + signed(t, testSecret, jwt.RegisteredClaims{}), "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/me"
			if tt.query != "" {
				target += "?access_token=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, accountID.String(), rec.Body.String())
			} else {
				assert.Equal(t, "UNAUTHENTICATED", errorCode(t, rec))
			}
		})
	}
}

func TestDevAccountContextMiddleware(t *testing.T) {
	handler := DevAccountContextMiddleware(echoAccount)

	t.Run("正常系: X-Account-ID を信用する", func(t *testing.T) {
		id := uuid.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Account-ID", id.String())
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, id.String(), rec.Body.String())
	})

	for _, v := range []string{"", "not-a-uuid"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Account-ID", v)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "value %q", v)
	}
}

func TestGetAccountIDFromContext_Missing(t *testing.T) {
	_, err := GetAccountIDFromContext(context.Background())
	assert.ErrorIs(t, err, model.ErrUnauthenticated)
}

func TestDeviceIDMiddleware(t *testing.T) {
	handler := DeviceIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(GetDeviceIDFromContext(r.Context())))
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantDevice string
	}{
		{"正常系: 未送信は既定のデバイス", "", http.StatusOK, model.DefaultDeviceID},
		{"正常系: 前後の空白は無視", "  laptop_01 ", http.StatusOK, "laptop_01"},
		{"正常系: 64文字", strings.Repeat("a", 64), http.StatusOK, strings.Repeat("a", 64)},
		{"異常系: 65文字", strings.Repeat("a", 65), http.StatusBadRequest, ""},
		{"異常系: 区切り文字を含む", "phone:1", http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(DeviceIDHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantDevice, rec.Body.String())
			} else {
				assert.Equal(t, "INVALID_DEVICE_ID", errorCode(t, rec))
			}
		})
	}

	assert.Equal(t, model.DefaultDeviceID, GetDeviceIDFromContext(context.Background()))
}

type fakeAdminChecker struct {
	admins map[uuid.UUID]bool
	err    error
}

func (f fakeAdminChecker) IsAdmin(_ context.Context, id uuid.UUID) (bool, error) {
	return f.admins[id], f.err
}

func TestRequireAdmin(t *testing.T) {
	admin, learner := uuid.New(), uuid.New()
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

	serve := func(checker AdminChecker, ctx context.Context) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		RequireAdmin(checker)(ok).ServeHTTP(rec, req)
		return rec
	}
	checker := fakeAdminChecker{admins: map[uuid.UUID]bool{admin: true}}

	assert.Equal(t, http.StatusNoContent, serve(checker, withAccountID(context.Background(), admin)).Code)
	assert.Equal(t, http.StatusForbidden, serve(checker, withAccountID(context.Background(), learner)).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(checker, context.Background()).Code)
	assert.Equal(t, http.StatusInternalServerError,
		serve(fakeAdminChecker{err: errors.New("db down")}, withAccountID(context.Background(), admin)).Code)
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		GetLogger(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"ok":true}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"a@example.com","password":"hunter22"}`))
	req.Header.Set("Authorization", "Bearer secret-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	logs := buf.String()
	assert.Contains(t, logs, "Request started")
	assert.Contains(t, logs, "inside handler")
	assert.Contains(t, logs, `"status":201`)
	assert.Contains(t, logs, "a@example.com")
	assert.NotContains(t, logs, "hunter22", "パスワードはログに出さない")
	assert.NotContains(t, logs, "secret-token", "Authorization はマスクする")
}

func TestMaskBody(t *testing.T) {
	assert.Equal(t, "", maskBody(nil))
	assert.Equal(t, "plain text", maskBody([]byte("plain text")))
	assert.Equal(t, `{"email":"x"}`, maskBody([]byte(`{"email":"x"}`)))
	assert.JSONEq(t, `{"email":"x","password":"[SENSITIVE]"}`, maskBody([]byte(`{"email":"x","password":"p"}`)))
	assert.JSONEq(t, `{"access_token":"[SENSITIVE]"}`, maskBody([]byte(`{"access_token":"jwt"}`)))
}
