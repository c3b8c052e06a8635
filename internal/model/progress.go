// internal/model/progress.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// ProgressEntry は database バックエンドで進捗を保存するキー・バリュー行
type ProgressEntry struct {
	Key       string    `gorm:"column:progress_key;primaryKey;type:varchar(255)"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (ProgressEntry) TableName() string {
	return "progress_entries"
}

// ProgressScope は進捗の保存単位 (アカウント × ブラウザ)。デバイス間では同期しない
type ProgressScope struct {
	AccountID uuid.UUID
	DeviceID  string
}

// DefaultDeviceID は X-Device-ID が送られてこなかった場合のデバイスID
const DefaultDeviceID = "default"

// ProgressKeyPrefix はブラウザの localStorage と同じキー形式
const ProgressKeyPrefix = "course_progress_"

// Key は "<account>/<device>/course_progress_<courseId>" を返す
func (s ProgressScope) Key(courseID CourseID) string {
	device := s.DeviceID
	if device == "" {
		device = DefaultDeviceID
	}
	return s.AccountID.String() + "/" + device + "/" + ProgressKeyPrefix + string(courseID)
}

// ModuleProgress はサイドバーのモジュール単位の進捗
type ModuleProgress struct {
	ModuleID  string `json:"module_id"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Complete  bool   `json:"complete"`
}

// ProgressResponse はコースの進捗状況
type ProgressResponse struct {
	CourseID           CourseID         `json:"course_id"`
	CompletedLessonIDs []string         `json:"completed_lesson_ids"`
	CompletedCount     int              `json:"completed_count"`
	TotalLessons       int              `json:"total_lessons"`
	Percent            int              `json:"percent"`
	IsComplete         bool             `json:"is_complete"`
	Modules            []ModuleProgress `json:"modules"`
}

// LessonRef は (モジュール, レッスン) の組
type LessonRef struct {
	ModuleID string `json:"module_id"`
	LessonID string `json:"lesson_id"`
}

// CourseViewResponse はコースを開いたときのレスポンス。カーソルは常に未選択から始まる
type CourseViewResponse struct {
	Course   *CourseSummary    `json:"course"`
	Modules  []Module          `json:"modules"`
	Progress *ProgressResponse `json:"progress"`
	Cursor   *LessonRef        `json:"cursor"`
	First    *LessonRef        `json:"first_lesson,omitempty"`
}

// LessonViewResponse はレッスン表示用。Prev/Next が nil ならコースの端
type LessonViewResponse struct {
	CourseID  CourseID   `json:"course_id"`
	ModuleID  string     `json:"module_id"`
	Lesson    Lesson     `json:"lesson"`
	Completed bool       `json:"completed"`
	Prev      *LessonRef `json:"prev"`
	Next      *LessonRef `json:"next"`
}

// ImportProgressRequest は別のブラウザから持ち込んだ完了済みレッスンを和集合で取り込む
type ImportProgressRequest struct {
	LessonIDs []string `json:"lesson_ids" validate:"required,dive,required,max=128"`
}

// DashboardCourse はダッシュボードの1コース分。ロック中のコースは進捗を持たない
type DashboardCourse struct {
	CourseSummary
	Percent    int  `json:"percent"`
	IsComplete bool `json:"is_complete"`
}

type DashboardResponse struct {
	PaymentStatus   PaymentStatus     `json:"payment_status"`
	RequestedCourse *CourseID         `json:"requested_course,omitempty"`
	Courses         []DashboardCourse `json:"courses"`
}
