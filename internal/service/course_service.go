//go:generate mockery --name CourseService --output ./mocks --outpkg mocks --case=underscore
// internal/service/course_service.go
package service

import (
	"context"
	"errors"
	"sync"

	"course_portal/internal/course"
	"course_portal/internal/middleware"
	"course_portal/internal/model"
	"course_portal/internal/progress"
	"course_portal/internal/repository"

	"gorm.io/gorm"
)

// CourseService はアクセス判定・レッスン表示・進捗の記録をまとめる
type CourseService interface {
	ListCourses(ctx context.Context) []model.CourseSummary
	Dashboard(ctx context.Context, scope model.ProgressScope) (*model.DashboardResponse, error)
	OpenCourse(ctx context.Context, scope model.ProgressScope, courseID string) (*model.CourseViewResponse, error)
	GetLesson(ctx context.Context, scope model.ProgressScope, courseID, lessonID string) (*model.LessonViewResponse, error)
	GetProgress(ctx context.Context, scope model.ProgressScope, courseID string) (*model.ProgressResponse, error)
	ToggleLesson(ctx context.Context, scope model.ProgressScope, courseID, lessonID string) (*model.ProgressResponse, error)
	ImportProgress(ctx context.Context, scope model.ProgressScope, courseID string, lessonIDs []string) (*model.ProgressResponse, error)
}

type courseService struct {
	db          *gorm.DB
	accountRepo repository.AccountRepository
	catalog     *course.Catalog
	store       *progress.Store
	locks       keyedMutex
}

func NewCourseService(db *gorm.DB, accountRepo repository.AccountRepository, catalog *course.Catalog, store *progress.Store) CourseService {
	return &courseService{
		db:          db,
		accountRepo: accountRepo,
		catalog:     catalog,
		store:       store,
	}
}

// keyedMutex は同じ進捗キーへの Load→Persist を直列化する
type keyedMutex struct {
	m sync.Map
}

func (k *keyedMutex) lock(key string) func() {
	v, _ := k.m.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *courseService) ListCourses(ctx context.Context) []model.CourseSummary {
	return s.catalog.Summaries()
}

func (s *courseService) Dashboard(ctx context.Context, scope model.ProgressScope) (*model.DashboardResponse, error) {
	account, err := s.loadAccount(ctx, scope)
	if err != nil {
		return nil, err
	}

	resp := &model.DashboardResponse{
		PaymentStatus:   account.PaymentStatus,
		RequestedCourse: account.RequestedCourse,
	}
	for _, summary := range course.AccessibleCourses(account, s.catalog) {
		item := model.DashboardCourse{CourseSummary: summary}
		if !*summary.Locked {
			c, _ := s.catalog.Lookup(summary.ID)
			done := s.store.Load(ctx, scope, summary.ID)
			item.Percent = c.Nav.CompletionPercent(done)
			item.IsComplete = c.Nav.IsCourseComplete(done)
		}
		resp.Courses = append(resp.Courses, item)
	}
	return resp, nil
}

// OpenCourse はコース画面に入ったときの状態を返す。カーソルは常に Unselected
func (s *courseService) OpenCourse(ctx context.Context, scope model.ProgressScope, courseID string) (*model.CourseViewResponse, error) {
	c, err := s.authorize(ctx, scope, courseID)
	if err != nil {
		return nil, err
	}

	done := s.store.Load(ctx, scope, c.ID())
	summary := c.Summary()
	cursor := c.Nav.NewCursor()

	return &model.CourseViewResponse{
		Course:   &summary,
		Modules:  c.Nav.Modules(),
		Progress: buildProgress(c, done),
		Cursor:   cursor.Current(),
		First:    c.Nav.First(),
	}, nil
}

// GetLesson はレッスン詳細と前後のレッスンを返す
func (s *courseService) GetLesson(ctx context.Context, scope model.ProgressScope, courseID, lessonID string) (*model.LessonViewResponse, error) {
	c, err := s.authorize(ctx, scope, courseID)
	if err != nil {
		return nil, err
	}

	ref, lesson, err := c.Nav.Locate(lessonID)
	if err != nil {
		return nil, lessonNotFound(lessonID)
	}
	prev, _ := c.Nav.Prev(ref)
	next, _ := c.Nav.Next(ref)

	done := s.store.Load(ctx, scope, c.ID())
	return &model.LessonViewResponse{
		CourseID:  c.ID(),
		ModuleID:  ref.ModuleID,
		Lesson:    lesson,
		Completed: done.Has(lesson.ID),
		Prev:      prev,
		Next:      next,
	}, nil
}

func (s *courseService) GetProgress(ctx context.Context, scope model.ProgressScope, courseID string) (*model.ProgressResponse, error) {
	c, err := s.authorize(ctx, scope, courseID)
	if err != nil {
		return nil, err
	}
	return buildProgress(c, s.store.Load(ctx, scope, c.ID())), nil
}

// ToggleLesson は完了/未完了を反転して保存する。空集合になっても保存する
func (s *courseService) ToggleLesson(ctx context.Context, scope model.ProgressScope, courseID, lessonID string) (*model.ProgressResponse, error) {
	logger := middleware.GetLogger(ctx)

	c, err := s.authorize(ctx, scope, courseID)
	if err != nil {
		return nil, err
	}
	if !c.Nav.Contains(lessonID) {
		return nil, lessonNotFound(lessonID)
	}

	unlock := s.locks.lock(scope.Key(c.ID()))
	defer unlock()

	done := s.store.Load(ctx, scope, c.ID())
	completed := done.Toggle(lessonID)
	if err := s.store.Persist(ctx, scope, c.ID(), done); err != nil {
		logger.Error("Failed to persist progress", "error", err, "course_id", c.ID())
		return nil, model.NewAppError("PROGRESS_SAVE_FAILED", "Failed to save your progress. Please try again.", "", err)
	}

	logger.Info("Lesson toggled", "course_id", c.ID(), "lesson_id", lessonID, "completed", completed)
	return buildProgress(c, done), nil
}

// ImportProgress は別ブラウザの完了セットを和集合で取り込む。コースに無いIDは無視する
func (s *courseService) ImportProgress(ctx context.Context, scope model.ProgressScope, courseID string, lessonIDs []string) (*model.ProgressResponse, error) {
	logger := middleware.GetLogger(ctx)

	c, err := s.authorize(ctx, scope, courseID)
	if err != nil {
		return nil, err
	}

	incoming := progress.NewSet()
	for _, id := range lessonIDs {
		if c.Nav.Contains(id) {
			incoming[id] = struct{}{}
		}
	}

	unlock := s.locks.lock(scope.Key(c.ID()))
	defer unlock()

	merged := progress.Merge(s.store.Load(ctx, scope, c.ID()), incoming)
	if err := s.store.Persist(ctx, scope, c.ID(), merged); err != nil {
		logger.Error("Failed to persist imported progress", "error", err, "course_id", c.ID())
		return nil, model.NewAppError("PROGRESS_SAVE_FAILED", "Failed to save your progress. Please try again.", "", err)
	}

	logger.Info("Progress imported", "course_id", c.ID(), "received", len(lessonIDs), "accepted", incoming.Len())
	return buildProgress(c, merged), nil
}

// authorize はアカウントを読み込み、コースの閲覧可否を判定する
func (s *courseService) authorize(ctx context.Context, scope model.ProgressScope, courseID string) (*course.Course, error) {
	logger := middleware.GetLogger(ctx)

	id, err := model.ParseCourseID(courseID)
	if err != nil {
		return nil, courseNotFound(courseID)
	}
	c, err := s.catalog.Lookup(id)
	if err != nil {
		return nil, courseNotFound(courseID)
	}

	account, err := s.loadAccount(ctx, scope)
	if err != nil {
		return nil, err
	}

	if err := course.Evaluate(account, id); err != nil {
		if errors.Is(err, model.ErrAccessDenied) {
			logger.Info("Course locked for account", "course_id", id, "payment_status", account.PaymentStatus)
			return nil, model.NewAppError("COURSE_LOCKED", "This course is locked. Complete your payment to unlock it.", "course_id", err)
		}
		return nil, err
	}
	return c, nil
}

// loadAccount はアカウントが消えていれば未認証として扱う
func (s *courseService) loadAccount(ctx context.Context, scope model.ProgressScope) (*model.Account, error) {
	account, err := s.accountRepo.FindByID(ctx, s.db, scope.AccountID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("UNAUTHENTICATED", "Sign in to continue.", "", model.ErrUnauthenticated)
		}
		middleware.GetLogger(ctx).Error("Failed to load account", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}
	return account, nil
}

func buildProgress(c *course.Course, done progress.Set) *model.ProgressResponse {
	// 完了一覧はコースに属するIDだけ、走査順で返す
	ids := make([]string, 0, done.Len())
	for _, id := range c.Nav.LessonIDs() {
		if done.Has(id) {
			ids = append(ids, id)
		}
	}
	return &model.ProgressResponse{
		CourseID:           c.ID(),
		CompletedLessonIDs: ids,
		CompletedCount:     len(ids),
		TotalLessons:       c.Nav.TotalLessons(),
		Percent:            c.Nav.CompletionPercent(done),
		IsComplete:         c.Nav.IsCourseComplete(done),
		Modules:            c.Nav.ModuleSummaries(done),
	}
}

func courseNotFound(courseID string) error {
	return model.NewAppError("COURSE_NOT_FOUND", "Course '"+courseID+"' does not exist.", "course_id", model.ErrCourseNotFound)
}

func lessonNotFound(lessonID string) error {
	return model.NewAppError("LESSON_NOT_FOUND", "Lesson '"+lessonID+"' is not part of this course.", "lesson_id", model.ErrNotFound)
}
