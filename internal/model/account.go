// internal/model/account.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRejected PaymentStatus = "rejected"
)

// LearnerProfile は登録時のアンケート回答
type LearnerProfile struct {
	ComputerSkill  string `json:"computer_skill,omitempty" validate:"omitempty,max=50"`
	EnglishLevel   string `json:"english_level,omitempty" validate:"omitempty,max=50"`
	LearningGoal   string `json:"learning_goal,omitempty" validate:"omitempty,max=200"`
	TimeCommitment string `json:"time_commitment,omitempty" validate:"omitempty,max=50"`
	Device         string `json:"device,omitempty" validate:"omitempty,max=50"`
}

// Account はユーザーのアカウント情報 (受講権限・支払い状態を含む)
type Account struct {
	AccountID         uuid.UUID                     `gorm:"type:uuid;primaryKey" json:"account_id"`
	Email             string                        `gorm:"uniqueIndex;not null" json:"email"`
	Name              string                        `gorm:"not null" json:"name"`
	Phone             string                        `json:"phone,omitempty"`
	PasswordHash      string                        `gorm:"not null" json:"-"`
	IsAdmin           bool                          `gorm:"default:false" json:"is_admin"`
	CourseAccess      datatypes.JSONSlice[CourseID] `json:"course_access"`
	PaymentStatus     PaymentStatus                 `gorm:"type:varchar(20);not null;default:'pending';index" json:"payment_status"`
	RequestedCourse   *CourseID                     `gorm:"type:varchar(32)" json:"requested_course,omitempty"`
	WhatsappContacted bool                          `gorm:"default:false" json:"whatsapp_contacted"`
	Profile           LearnerProfile                `gorm:"embedded;embeddedPrefix:profile_" json:"profile"`
	CreatedAt         time.Time                     `json:"created_at"`
	UpdatedAt         time.Time                     `json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}

// HasCourse は courseAccess に id がそのまま含まれているか (bundle の展開はしない)
func (a *Account) HasCourse(id CourseID) bool {
	for _, c := range a.CourseAccess {
		if c == id {
			return true
		}
	}
	return false
}

type ContextKey string

const (
	AccountIDKey ContextKey = "accountID"
	DeviceIDKey  ContextKey = "deviceID"
)

// RegisterRequest は新規登録APIのリクエストボディ (DTO)
type RegisterRequest struct {
	Name            string         `json:"name" validate:"required,min=1,max=100"`
	Email           string         `json:"email" validate:"required,email"`
	Password        string         `json:"password" validate:"required,min=8,max=72"`
	Phone           string         `json:"phone,omitempty" validate:"omitempty,max=32"`
	RequestedCourse string         `json:"requested_course" validate:"required,oneof=web mobile bundle image-editing"`
	Profile         LearnerProfile `json:"profile"`
}

// LoginRequest はログインAPIのリクエストボディ
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse はログイン成功時のレスポンス
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// AccountResponse はクライアントに返すアカウント情報
type AccountResponse struct {
	AccountID         uuid.UUID      `json:"account_id"`
	Email             string         `json:"email"`
	Name              string         `json:"name"`
	Phone             string         `json:"phone,omitempty"`
	IsAdmin           bool           `json:"is_admin"`
	CourseAccess      []CourseID     `json:"course_access"`
	PaymentStatus     PaymentStatus  `json:"payment_status"`
	RequestedCourse   *CourseID      `json:"requested_course,omitempty"`
	WhatsappContacted bool           `json:"whatsapp_contacted"`
	Profile           LearnerProfile `json:"profile"`
	CreatedAt         time.Time      `json:"created_at"`
}

// NewAccountResponse は isAdmin にホワイトリスト判定の結果を渡す
func NewAccountResponse(a *Account, isAdmin bool) *AccountResponse {
	access := []CourseID(a.CourseAccess)
	if access == nil {
		access = []CourseID{}
	}
	return &AccountResponse{
		AccountID:         a.AccountID,
		Email:             a.Email,
		Name:              a.Name,
		Phone:             a.Phone,
		IsAdmin:           isAdmin,
		CourseAccess:      access,
		PaymentStatus:     a.PaymentStatus,
		RequestedCourse:   a.RequestedCourse,
		WhatsappContacted: a.WhatsappContacted,
		Profile:           a.Profile,
		CreatedAt:         a.CreatedAt,
	}
}

// GrantAccessRequest は管理者によるコース有効化リクエスト
type GrantAccessRequest struct {
	Courses []string `json:"courses" validate:"required,min=1,dive,oneof=web mobile bundle image-editing"`
}

// AccountFilter は管理画面の一覧条件
type AccountFilter struct {
	Status PaymentStatus // 空なら全件
	Query  string        // 名前・メール・電話番号の部分一致
}

// AdminStats は管理画面の集計値
type AdminStats struct {
	Total    int    `json:"total"`
	Pending  int    `json:"pending"`
	Paid     int    `json:"paid"`
	Revenue  int    `json:"revenue"`
	Currency string `json:"currency"`
}

// ContactedRequest は WhatsApp 連絡済みフラグの更新リクエスト
type ContactedRequest struct {
	Contacted *bool `json:"contacted" validate:"required"`
}
