// internal/model/course.go
package model

import "strings"

// CourseID はカタログで販売しているコース種別 (閉じた列挙)
type CourseID string

const (
	CourseWeb          CourseID = "web"
	CourseMobile       CourseID = "mobile"
	CourseBundle       CourseID = "bundle"
	CourseImageEditing CourseID = "image-editing"
)

// AllCourseIDs は列挙の全要素。bundle 以外が単品販売のコース
var AllCourseIDs = []CourseID{CourseWeb, CourseMobile, CourseBundle, CourseImageEditing}

func (id CourseID) IsValid() bool {
	for _, c := range AllCourseIDs {
		if c == id {
			return true
		}
	}
	return false
}

// IsBundle は bundle (全単品コースを含む上位の権利) かどうか
func (id CourseID) IsBundle() bool {
	return id == CourseBundle
}

func (id CourseID) String() string {
	return string(id)
}

// ParseCourseID は文字列をCourseIDに変換します。列挙に無い値は ErrCourseNotFound
func ParseCourseID(s string) (CourseID, error) {
	id := CourseID(strings.ToLower(strings.TrimSpace(s)))
	if !id.IsValid() {
		return "", ErrCourseNotFound
	}
	return id, nil
}

// IndividualCourseIDs は bundle を除いた単品販売のコース一覧
func IndividualCourseIDs() []CourseID {
	ids := make([]CourseID, 0, len(AllCourseIDs)-1)
	for _, id := range AllCourseIDs {
		if !id.IsBundle() {
			ids = append(ids, id)
		}
	}
	return ids
}

// CourseCatalogEntry は起動時に読み込まれる不変のコース定義
type CourseCatalogEntry struct {
	ID            CourseID   `yaml:"id" json:"id"`
	Title         string     `yaml:"title" json:"title"`
	TitleAr       string     `yaml:"title_ar" json:"title_ar,omitempty"`
	Description   string     `yaml:"description" json:"description,omitempty"`
	Price         int        `yaml:"price" json:"price"`
	OriginalPrice int        `yaml:"original_price" json:"original_price,omitempty"`
	Currency      string     `yaml:"currency" json:"currency"`
	Includes      []CourseID `yaml:"includes" json:"includes,omitempty"`
	Modules       []Module   `yaml:"modules" json:"modules"`
}

type Module struct {
	ID          string   `yaml:"id" json:"id"`
	Number      int      `yaml:"number" json:"number"`
	Title       string   `yaml:"title" json:"title"`
	TitleAr     string   `yaml:"title_ar" json:"title_ar,omitempty"`
	Description string   `yaml:"description" json:"description,omitempty"`
	Lessons     []Lesson `yaml:"lessons" json:"lessons"`
}

type Lesson struct {
	ID              string     `yaml:"id" json:"id"`
	Number          int        `yaml:"number" json:"number"`
	Title           string     `yaml:"title" json:"title"`
	TitleAr         string     `yaml:"title_ar" json:"title_ar,omitempty"`
	Description     string     `yaml:"description" json:"description,omitempty"`
	VideoURL        string     `yaml:"video_url" json:"video_url,omitempty"`
	DurationSeconds int        `yaml:"duration_seconds" json:"duration_seconds,omitempty"`
	Challenge       *Challenge `yaml:"challenge" json:"challenge,omitempty"`
}

type Challenge struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Hints       []string `yaml:"hints" json:"hints,omitempty"`
}

// CourseSummary はカタログ一覧・ダッシュボード用のDTO
type CourseSummary struct {
	ID            CourseID `json:"id"`
	Title         string   `json:"title"`
	TitleAr       string   `json:"title_ar,omitempty"`
	Description   string   `json:"description,omitempty"`
	Price         int      `json:"price"`
	OriginalPrice int      `json:"original_price,omitempty"`
	Currency      string   `json:"currency"`
	TotalLessons  int      `json:"total_lessons"`
	Locked        *bool    `json:"locked,omitempty"`
}
