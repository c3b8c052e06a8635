// internal/middleware/device.go
package middleware

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"course_portal/internal/model"
	"course_portal/internal/webutil"
)

// DeviceIDHeader はブラウザが localStorage に保存して毎回送るID
const DeviceIDHeader = "X-Device-ID"

var deviceIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// DeviceIDMiddleware は X-Device-ID をコンテキストに入れます。未送信なら既定のデバイスとして扱う
func DeviceIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deviceID := strings.TrimSpace(r.Header.Get(DeviceIDHeader))
		if deviceID == "" {
			deviceID = model.DefaultDeviceID
		}
		if !deviceIDPattern.MatchString(deviceID) {
			logger := GetLogger(r.Context())
			logger.Warn("Invalid device id header", "value", deviceID)
			webutil.HandleError(w, logger, model.NewAppError("INVALID_DEVICE_ID", "X-Device-ID must be 1-64 characters of letters, digits, '-' or '_'.", DeviceIDHeader, model.ErrInvalidInput))
			return
		}
		ctx := context.WithValue(r.Context(), model.DeviceIDKey, deviceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetDeviceIDFromContext はミドルウェアを通っていない場合も既定のデバイスIDを返す
func GetDeviceIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(model.DeviceIDKey).(string); ok && v != "" {
		return v
	}
	return model.DefaultDeviceID
}
