// internal/webutil/request.go
package webutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"course_portal/internal/model"

	"github.com/go-playground/validator/v10"
)

// maxBodyBytes はJSONボディの上限
const maxBodyBytes = 1 << 20

// DecodeJSONBody はリクエストボディをデコードします。未知のフィールドは拒否する
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.ErrInvalidInput
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", model.ErrInvalidInput, err)
	}
	return nil
}

// BindJSON はデコードとバリデーションをまとめて行い、失敗時はクライアントに返せる *model.AppError を返します
func BindJSON(r *http.Request, dst interface{}) error {
	if err := DecodeJSONBody(r, dst); err != nil {
		return model.NewAppError("INVALID_REQUEST_BODY", "Request body is not valid JSON for this endpoint.", "", err)
	}
	return ValidateStruct(dst)
}

// ValidateStruct は validate タグを検証します
func ValidateStruct(v interface{}) error {
	if err := Validator.Struct(v); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return NewValidationErrorResponse(validationErrors)
		}
		return fmt.Errorf("webutil.ValidateStruct: %w", err)
	}
	return nil
}
