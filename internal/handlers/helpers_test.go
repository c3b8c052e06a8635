// helpers_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"course_portal/internal/config"
	"course_portal/internal/handlers"
	"course_portal/internal/model"
	servicemocks "course_portal/internal/service/mocks"
	"course_portal/internal/sse"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// httpRequestDetails はHTTPリクエストの送信に必要な情報をまとめます。
type httpRequestDetails struct {
	Method  string
	Path    string
	Body    interface{}
	Headers map[string]string
}

// httpResponseExpectations はHTTPレスポンスの検証に必要な期待値をまとめます。
type httpResponseExpectations struct {
	ExpectedCode      int
	ExpectedErrorCode string
}

// testEnv はモックのサービスを差し込んだルーター一式
type testEnv struct {
	server   *httptest.Server
	cfg      *config.Config
	hub      *sse.Hub
	accounts *servicemocks.AccountService
	courses  *servicemocks.CourseService
	admin    *servicemocks.AdminService
}

func testHandlerConfig(authEnabled bool) *config.Config {
	return &config.Config{
		App:  config.AppConfig{Name: "Course Portal"},
		Auth: config.AuthConfig{Enabled: authEnabled},
		JWT:  config.JWTConfig{SecretKey: "handler-test-secret", AccessTokenTTL: time.Hour},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

// newTestEnv は authEnabled=false なら X-Account-ID ヘッダーで認証する開発モードで立ち上げる
func newTestEnv(t *testing.T, authEnabled bool) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	env := &testEnv{
		cfg:      testHandlerConfig(authEnabled),
		hub:      sse.NewHub(logger),
		accounts: servicemocks.NewAccountService(t),
		courses:  servicemocks.NewCourseService(t),
		admin:    servicemocks.NewAdminService(t),
	}
	router := handlers.NewRouter(env.cfg, logger, handlers.Dependencies{
		Accounts: env.accounts,
		Courses:  env.courses,
		Admin:    env.admin,
		Hub:      env.hub,
	})
	env.server = httptest.NewServer(router)
	t.Cleanup(env.server.Close)
	return env
}

// signToken はテスト用のアクセストークンを発行する
func signToken(t *testing.T, cfg *config.Config, accountID uuid.UUID, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Subject:   accountID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	signed, err := token.SignedString([]byte(cfg.JWT.SecretKey))
	require.NoError(t, err)
	return signed
}

func devHeaders(accountID uuid.UUID) map[string]string {
	return map[string]string{"X-Account-ID": accountID.String()}
}

// sendRequest はHTTPリクエストを送信し、ステータスコードを検証してボディを返します。
func sendRequest(t *testing.T, server *httptest.Server, details httpRequestDetails, expectations httpResponseExpectations) []byte {
	t.Helper()

	var reqBodyReader io.Reader
	if details.Body != nil {
		if strPayload, ok := details.Body.(string); ok {
			reqBodyReader = strings.NewReader(strPayload)
		} else {
			reqBodyBytes, err := json.Marshal(details.Body)
			require.NoError(t, err, "Failed to marshal request body")
			reqBodyReader = bytes.NewBuffer(reqBodyBytes)
		}
	}

	req, err := http.NewRequest(details.Method, server.URL+details.Path, reqBodyReader)
	require.NoError(t, err, "Failed to create request")
	if details.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range details.Headers {
		req.Header.Set(key, value)
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err, "Failed to execute request")
	defer resp.Body.Close()

	respBodyBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")

	assert.Equal(t, expectations.ExpectedCode, resp.StatusCode, "Status code mismatch: %s", string(respBodyBytes))
	if expectations.ExpectedErrorCode != "" {
		verifyErrorResponse(t, respBodyBytes, expectations.ExpectedErrorCode)
	}
	return respBodyBytes
}

// verifyErrorResponse はエラーレスポンスのコードを検証します。
func verifyErrorResponse(t *testing.T, bodyBytes []byte, expectedCode string) {
	t.Helper()
	var errResp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(bodyBytes, &errResp), "error body is not JSON: %s", string(bodyBytes))
	assert.Equal(t, expectedCode, errResp.Error.Code)
	assert.NotEmpty(t, errResp.Error.Message)
}

func decodeJSON[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), "body: %s", string(body))
	return v
}
