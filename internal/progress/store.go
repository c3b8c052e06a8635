// internal/progress/store.go
package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"course_portal/internal/middleware"
	"course_portal/internal/model"
	"course_portal/internal/repository"
)

// Store は (アカウント, デバイス, コース) ごとの完了セットを KV に保存します。
// 保存形式はブラウザ版と同じ "course_progress_<courseId>" -> JSON 配列
type Store struct {
	kv repository.ProgressKV
}

func NewStore(kv repository.ProgressKV) *Store {
	return &Store{kv: kv}
}

// Load は保存済みの集合を返す。未保存・壊れた値・ストア障害はすべて空集合として扱い、エラーは返さない
func (s *Store) Load(ctx context.Context, scope model.ProgressScope, courseID model.CourseID) Set {
	logger := middleware.GetLogger(ctx)
	key := scope.Key(courseID)

	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			logger.Warn("Progress store unavailable, starting from empty progress", "error", err, "key", key)
		}
		return NewSet()
	}

	set, ok := Decode(raw)
	if !ok {
		logger.Warn("Malformed progress data, treating as empty", "key", key)
	}
	return set
}

// Persist は集合全体で前の値を置き換える。空集合も保存する
func (s *Store) Persist(ctx context.Context, scope model.ProgressScope, courseID model.CourseID, set Set) error {
	if err := s.kv.Set(ctx, scope.Key(courseID), Encode(set)); err != nil {
		return fmt.Errorf("progress.Store.Persist: %w", err)
	}
	return nil
}

// Decode は JSON 配列を集合に変換する。配列でない・文字列以外を含む場合は (空集合, false)
func Decode(raw string) (Set, bool) {
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return NewSet(), false
	}
	return NewSet(ids...), true
}

// Encode はソート済みの JSON 配列にする。空集合は "[]"
func Encode(set Set) string {
	b, _ := json.Marshal(set.Slice())
	return string(b)
}
