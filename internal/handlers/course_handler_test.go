package handlers_test

import (
	"net/http"
	"testing"

	"course_portal/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCourseHandler_ListCourses_IsPublic(t *testing.T) {
	env := newTestEnv(t, true)
	env.courses.On("ListCourses", mock.Anything).Return([]model.CourseSummary{
		{ID: model.CourseWeb, Title: "Build Websites with AI", Price: 100},
	}).Once()

	body := sendRequest(t, env.server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/courses"},
		httpResponseExpectations{ExpectedCode: http.StatusOK})

	got := decodeJSON[[]model.CourseSummary](t, body)
	assert.Len(t, got, 1)
	assert.Equal(t, model.CourseWeb, got[0].ID)
}

func TestCourseHandler_ScopeFromHeaders(t *testing.T) {
	accountID := uuid.New()

	t.Run("正常系: X-Device-ID が進捗のスコープになる", func(t *testing.T) {
		env := newTestEnv(t, false)
		scope := model.ProgressScope{AccountID: accountID, DeviceID: "tablet_01"}
		env.courses.On("GetProgress", mock.Anything, scope, "web").
			Return(&model.ProgressResponse{CourseID: model.CourseWeb, Percent: 50}, nil).Once()

		headers := devHeaders(accountID)
		headers["X-Device-ID"] = "tablet_01"
		body := sendRequest(t, env.server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/courses/web/progress", Headers: headers},
			httpResponseExpectations{ExpectedCode: http.StatusOK})

		assert.Equal(t, 50, decodeJSON[model.ProgressResponse](t, body).Percent)
	})

	t.Run("正常系: ヘッダーなしは既定の端末", func(t *testing.T) {
		env := newTestEnv(t, false)
		scope := model.ProgressScope{AccountID: accountID, DeviceID: model.DefaultDeviceID}
		env.courses.On("Dashboard", mock.Anything, scope).Return(&model.DashboardResponse{PaymentStatus: model.PaymentPaid}, nil).Once()

		sendRequest(t, env.server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/dashboard", Headers: devHeaders(accountID)},
			httpResponseExpectations{ExpectedCode: http.StatusOK})
	})

	t.Run("異常系: 不正な X-Device-ID", func(t *testing.T) {
		env := newTestEnv(t, false)
		headers := devHeaders(accountID)
		headers["X-Device-ID"] = "../../etc/passwd"

		sendRequest(t, env.server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/dashboard", Headers: headers},
			httpResponseExpectations{ExpectedCode: http.StatusBadRequest, ExpectedErrorCode: "INVALID_DEVICE_ID"})
	})
}

func TestCourseHandler_OpenCourse(t *testing.T) {
	accountID := uuid.New()
	scope := model.ProgressScope{AccountID: accountID, DeviceID: model.DefaultDeviceID}

	tests := []struct {
		name         string
		courseID     string
		result       *model.CourseViewResponse
		err          error
		expectations httpResponseExpectations
	}{
		{
			name:     "正常系: カーソル未選択で開く",
			courseID: "web",
			result: &model.CourseViewResponse{
				Progress: &model.ProgressResponse{CourseID: model.CourseWeb},
				First:    &model.LessonRef{ModuleID: "web-m1", LessonID: "web-1-1"},
			},
			expectations: httpResponseExpectations{ExpectedCode: http.StatusOK},
		},
		{
			name:         "異常系: ロック中は 402",
			courseID:     "mobile",
			err:          model.NewAppError("COURSE_LOCKED", "This course is locked.", "course_id", model.ErrAccessDenied),
			expectations: httpResponseExpectations{ExpectedCode: http.StatusPaymentRequired, ExpectedErrorCode: "COURSE_LOCKED"},
		},
		{
			name:         "異常系: 存在しないコースは 404",
			courseID:     "cooking",
			err:          model.NewAppError("COURSE_NOT_FOUND", "Course 'cooking' does not exist.", "course_id", model.ErrCourseNotFound),
			expectations: httpResponseExpectations{ExpectedCode: http.StatusNotFound, ExpectedErrorCode: "COURSE_NOT_FOUND"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, false)
			env.courses.On("OpenCourse", mock.Anything, scope, tc.courseID).Return(tc.result, tc.err).Once()

			body := sendRequest(t, env.server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/courses/" + tc.courseID, Headers: devHeaders(accountID)}, tc.expectations)

			if tc.err == nil {
				got := decodeJSON[model.CourseViewResponse](t, body)
				assert.Nil(t, got.Cursor)
				assert.Equal(t, "web-1-1", got.First.LessonID)
			}
		})
	}
}

func TestCourseHandler_GetLesson(t *testing.T) {
	accountID := uuid.New()
	env := newTestEnv(t, false)
	env.courses.On("GetLesson", mock.Anything, mock.Anything, "web", "web-1-3").Return(&model.LessonViewResponse{
		CourseID: model.CourseWeb,
		ModuleID: "web-m1",
		Lesson:   model.Lesson{ID: "web-1-3"},
		Prev:     &model.LessonRef{ModuleID: "web-m1", LessonID: "web-1-2"},
		Next:     &model.LessonRef{ModuleID: "web-m2", LessonID: "web-2-1"},
	}, nil).Once()

	body := sendRequest(t, env.server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/courses/web/lessons/web-1-3", Headers: devHeaders(accountID)},
		httpResponseExpectations{ExpectedCode: http.StatusOK})

	got := decodeJSON[model.LessonViewResponse](t, body)
	assert.Equal(t, "web-m2", got.Next.ModuleID)
}

func TestCourseHandler_ToggleLesson(t *testing.T) {
	accountID := uuid.New()

	t.Run("正常系: 更新後の進捗を返す", func(t *testing.T) {
		env := newTestEnv(t, false)
		env.courses.On("ToggleLesson", mock.Anything, mock.Anything, "web", "web-1-1").
			Return(&model.ProgressResponse{CourseID: model.CourseWeb, CompletedLessonIDs: []string{"web-1-1"}, CompletedCount: 1, TotalLessons: 8, Percent: 13}, nil).Once()

		body := sendRequest(t, env.server, httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/courses/web/lessons/web-1-1/toggle", Headers: devHeaders(accountID)},
			httpResponseExpectations{ExpectedCode: http.StatusOK})

		got := decodeJSON[model.ProgressResponse](t, body)
		assert.Equal(t, 13, got.Percent)
		assert.Equal(t, []string{"web-1-1"}, got.CompletedLessonIDs)
	})

	t.Run("異常系: 保存失敗は 500", func(t *testing.T) {
		env := newTestEnv(t, false)
		env.courses.On("ToggleLesson", mock.Anything, mock.Anything, "web", "web-1-1").
			Return(nil, model.NewAppError("PROGRESS_SAVE_FAILED", "Failed to save your progress. Please try again.", "", model.ErrInternalServer)).Once()

		sendRequest(t, env.server, httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/courses/web/lessons/web-1-1/toggle", Headers: devHeaders(accountID)},
			httpResponseExpectations{ExpectedCode: http.StatusInternalServerError, ExpectedErrorCode: "PROGRESS_SAVE_FAILED"})
	})

	t.Run("異常系: 未認証", func(t *testing.T) {
		env := newTestEnv(t, false)
		sendRequest(t, env.server, httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/courses/web/lessons/web-1-1/toggle"},
			httpResponseExpectations{ExpectedCode: http.StatusUnauthorized, ExpectedErrorCode: "UNAUTHENTICATED"})
	})
}

func TestCourseHandler_ImportProgress(t *testing.T) {
	accountID := uuid.New()

	t.Run("正常系", func(t *testing.T) {
		env := newTestEnv(t, false)
		env.courses.On("ImportProgress", mock.Anything, mock.Anything, "mobile", []string{"mob-1-1", "mob-2-1"}).
			Return(&model.ProgressResponse{CourseID: model.CourseMobile, CompletedCount: 2}, nil).Once()

		sendRequest(t, env.server, httpRequestDetails{
			Method: http.MethodPost, Path: "/api/v1/courses/mobile/progress/import", Headers: devHeaders(accountID),
			Body: map[string]interface{}{"lesson_ids": []string{"mob-1-1", "mob-2-1"}},
		}, httpResponseExpectations{ExpectedCode: http.StatusOK})
	})

	t.Run("異常系: 空のIDを含む", func(t *testing.T) {
		env := newTestEnv(t, false)
		sendRequest(t, env.server, httpRequestDetails{
			Method: http.MethodPost, Path: "/api/v1/courses/mobile/progress/import", Headers: devHeaders(accountID),
			Body: map[string]interface{}{"lesson_ids": []string{"mob-1-1", ""}},
		}, httpResponseExpectations{ExpectedCode: http.StatusBadRequest, ExpectedErrorCode: "VALIDATION_ERROR"})
	})

	t.Run("異常系: 未知のフィールド", func(t *testing.T) {
		env := newTestEnv(t, false)
		sendRequest(t, env.server, httpRequestDetails{
			Method: http.MethodPost, Path: "/api/v1/courses/mobile/progress/import", Headers: devHeaders(accountID),
			Body: map[string]interface{}{"lessons": []string{"mob-1-1"}},
		}, httpResponseExpectations{ExpectedCode: http.StatusBadRequest, ExpectedErrorCode: "INVALID_REQUEST_BODY"})
	})
}
