// internal/course/navigator.go
package course

import (
	"math"

	"course_portal/internal/model"
)

// CompletionSet は完了済みレッスンの集合 (progress.Set が満たす)
type CompletionSet interface {
	Has(lessonID string) bool
}

type position struct {
	module int
	lesson int
}

// Navigator はモジュール→レッスンの木を一列に並べたインデックス。
// 構築後は不変なので複数のリクエストから共有してよい
type Navigator struct {
	modules []model.Module
	flat    []position
	index   map[string]int // lesson id -> flat の位置
}

func NewNavigator(modules []model.Module) *Navigator {
	n := &Navigator{
		modules: modules,
		index:   make(map[string]int),
	}
	for mi, m := range modules {
		for li, l := range m.Lessons {
			n.index[l.ID] = len(n.flat)
			n.flat = append(n.flat, position{module: mi, lesson: li})
		}
	}
	return n
}

func (n *Navigator) Modules() []model.Module {
	return n.modules
}

func (n *Navigator) TotalLessons() int {
	return len(n.flat)
}

// LessonIDs は走査順のレッスンID
func (n *Navigator) LessonIDs() []string {
	ids := make([]string, len(n.flat))
	for i, p := range n.flat {
		ids[i] = n.modules[p.module].Lessons[p.lesson].ID
	}
	return ids
}

func (n *Navigator) Contains(lessonID string) bool {
	_, ok := n.index[lessonID]
	return ok
}

// Locate はレッスンIDから (モジュール, レッスン) を引く
func (n *Navigator) Locate(lessonID string) (model.LessonRef, model.Lesson, error) {
	i, ok := n.index[lessonID]
	if !ok {
		return model.LessonRef{}, model.Lesson{}, model.ErrNotFound
	}
	return n.refAt(i), n.lessonAt(i), nil
}

// First はコースの先頭レッスン。レッスンが1つも無ければ nil
func (n *Navigator) First() *model.LessonRef {
	if len(n.flat) == 0 {
		return nil
	}
	ref := n.refAt(0)
	return &ref
}

// Next は次のレッスンを返す。モジュールの末尾なら次のモジュールの先頭、コースの末尾なら nil
func (n *Navigator) Next(at model.LessonRef) (*model.LessonRef, error) {
	return n.step(at, 1)
}

// Prev は Next の逆方向
func (n *Navigator) Prev(at model.LessonRef) (*model.LessonRef, error) {
	return n.step(at, -1)
}

func (n *Navigator) step(at model.LessonRef, delta int) (*model.LessonRef, error) {
	i, err := n.position(at)
	if err != nil {
		return nil, err
	}
	j := i + delta
	if j < 0 || j >= len(n.flat) {
		return nil, nil
	}
	ref := n.refAt(j)
	return &ref, nil
}

// position は (module, lesson) の組が実在する場合にだけ位置を返す
func (n *Navigator) position(at model.LessonRef) (int, error) {
	i, ok := n.index[at.LessonID]
	if !ok || n.modules[n.flat[i].module].ID != at.ModuleID {
		return 0, model.ErrNotFound
	}
	return i, nil
}

// CompletedCount はコースに属する完了レッスン数。カタログに無いIDは数えない
func (n *Navigator) CompletedCount(done CompletionSet) int {
	if done == nil {
		return 0
	}
	count := 0
	for _, p := range n.flat {
		if done.Has(n.modules[p.module].Lessons[p.lesson].ID) {
			count++
		}
	}
	return count
}

// CompletionPercent は round(100 * 完了数 / 総数)。総数 0 なら 0
func (n *Navigator) CompletionPercent(done CompletionSet) int {
	total := n.TotalLessons()
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(n.CompletedCount(done)) / float64(total)))
}

// IsCourseComplete は完了率が 100 のときだけ true
func (n *Navigator) IsCourseComplete(done CompletionSet) bool {
	return n.CompletionPercent(done) == 100
}

// ModuleSummaries はサイドバー用にモジュールごとの完了数を返す
func (n *Navigator) ModuleSummaries(done CompletionSet) []model.ModuleProgress {
	out := make([]model.ModuleProgress, 0, len(n.modules))
	for _, m := range n.modules {
		s := model.ModuleProgress{ModuleID: m.ID, Total: len(m.Lessons)}
		for _, l := range m.Lessons {
			if done != nil && done.Has(l.ID) {
				s.Completed++
			}
		}
		s.Complete = s.Total > 0 && s.Completed == s.Total
		out = append(out, s)
	}
	return out
}

func (n *Navigator) refAt(i int) model.LessonRef {
	p := n.flat[i]
	m := n.modules[p.module]
	return model.LessonRef{ModuleID: m.ID, LessonID: m.Lessons[p.lesson].ID}
}

func (n *Navigator) lessonAt(i int) model.Lesson {
	p := n.flat[i]
	return n.modules[p.module].Lessons[p.lesson]
}
