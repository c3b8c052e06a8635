// internal/course/access.go
package course

import "course_portal/internal/model"

// Evaluate はレッスンを表示してよいかを判定します (副作用なし)。
//   - account が nil          -> ErrUnauthenticated (ログインが必要)
//   - 列挙に無いコースID        -> ErrCourseNotFound
//   - paid かつ (id か bundle を保持) -> nil
//   - それ以外                 -> ErrAccessDenied (ペイウォール)
//
// bundle はカタログを参照せずに全コースを許可するので、後から追加されたコースにも効く
func Evaluate(account *model.Account, id model.CourseID) error {
	if account == nil {
		return model.ErrUnauthenticated
	}
	if !id.IsValid() {
		return model.ErrCourseNotFound
	}
	if account.PaymentStatus != model.PaymentPaid {
		return model.ErrAccessDenied
	}
	if account.HasCourse(id) || account.HasCourse(model.CourseBundle) {
		return nil
	}
	return model.ErrAccessDenied
}

// CanView は Evaluate の真偽値版
func CanView(account *model.Account, id model.CourseID) bool {
	return Evaluate(account, id) == nil
}

// AccessibleCourses はダッシュボード用に全コースへ Locked を付けて返す
func AccessibleCourses(account *model.Account, cat *Catalog) []model.CourseSummary {
	summaries := cat.Summaries()
	for i := range summaries {
		locked := !CanView(account, summaries[i].ID)
		summaries[i].Locked = &locked
	}
	return summaries
}
