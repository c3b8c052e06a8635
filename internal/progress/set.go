// internal/progress/set.go
package progress

import "sort"

// Set は完了済みレッスンIDの集合。順序は持たない
type Set map[string]struct{}

func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		if id != "" {
			s[id] = struct{}{}
		}
	}
	return s
}

func (s Set) Has(lessonID string) bool {
	_, ok := s[lessonID]
	return ok
}

// Toggle は所属を反転し、反転後に完了状態なら true を返す。2回呼ぶと元に戻る
func (s Set) Toggle(lessonID string) bool {
	if _, ok := s[lessonID]; ok {
		delete(s, lessonID)
		return false
	}
	s[lessonID] = struct{}{}
	return true
}

func (s Set) Len() int {
	return len(s)
}

// Slice はソート済みのIDを返す (保存値とレスポンスを安定させるため)
func (s Set) Slice() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s Set) Clone() Set {
	out := make(Set, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// Merge は和集合を返す。完了は単調なので削除は伝播させない
func Merge(a, b Set) Set {
	out := make(Set, len(a)+len(b))
	for id := range a {
		out[id] = struct{}{}
	}
	for id := range b {
		out[id] = struct{}{}
	}
	return out
}
