// internal/course/access_test.go
package course

import (
	"testing"

	"course_portal/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func account(status model.PaymentStatus, access ...model.CourseID) *model.Account {
	return &model.Account{PaymentStatus: status, CourseAccess: datatypes.JSONSlice[model.CourseID](access)}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name    string
		account *model.Account
		course  model.CourseID
		wantErr error
	}{
		{"未ログインは認証が必要", nil, model.CourseWeb, model.ErrUnauthenticated},
		{"列挙外のコースは NotFound", account(model.PaymentPaid, model.CourseWeb), "desktop", model.ErrCourseNotFound},
		{"paid かつ付与済み", account(model.PaymentPaid, model.CourseWeb), model.CourseWeb, nil},
		{"paid でも未付与のコースは拒否", account(model.PaymentPaid, model.CourseWeb), model.CourseMobile, model.ErrAccessDenied},
		{"paid で courseAccess が空ならロック", account(model.PaymentPaid), model.CourseWeb, model.ErrAccessDenied},
		{"pending は付与済みでも拒否", account(model.PaymentPending, model.CourseWeb, model.CourseBundle), model.CourseWeb, model.ErrAccessDenied},
		{"rejected は拒否", account(model.PaymentRejected, model.CourseWeb), model.CourseWeb, model.ErrAccessDenied},
		{"bundle は bundle 自身も見られる", account(model.PaymentPaid, model.CourseBundle), model.CourseBundle, nil},
		{"bundle は単品コースも見られる", account(model.PaymentPaid, model.CourseBundle), model.CourseImageEditing, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Evaluate(tt.account, tt.course)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEvaluate_BundleCoversEveryIndividualCourse(t *testing.T) {
	acc := account(model.PaymentPaid, model.CourseBundle)
	for _, id := range model.IndividualCourseIDs() {
		assert.True(t, CanView(acc, id), "bundle should unlock %s", id)
	}
}

func TestEvaluate_PendingDeniesEverything(t *testing.T) {
	acc := account(model.PaymentPending, model.AllCourseIDs...)
	for _, id := range model.AllCourseIDs {
		assert.ErrorIs(t, Evaluate(acc, id), model.ErrAccessDenied, "course %s", id)
	}
}

func TestAccessibleCourses(t *testing.T) {
	cat, err := LoadDefault()
	require.NoError(t, err)

	got := AccessibleCourses(account(model.PaymentPaid, model.CourseMobile), cat)

	require.Len(t, got, len(cat.Courses()))
	for _, s := range got {
		require.NotNil(t, s.Locked)
		assert.Equal(t, s.ID != model.CourseMobile, *s.Locked, "course %s", s.ID)
	}
}
