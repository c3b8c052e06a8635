// internal/progress/set_test.go
package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_ToggleIsInvolution(t *testing.T) {
	for _, start := range []Set{NewSet(), NewSet("a"), NewSet("a", "b", "c")} {
		before := start.Clone()
		for _, id := range []string{"a", "z"} {
			s := start.Clone()
			s.Toggle(id)
			s.Toggle(id)
			assert.True(t, before.Equal(s), "toggle twice on %q from %v", id, before.Slice())
		}
	}
}

func TestSet_Toggle(t *testing.T) {
	s := NewSet()
	assert.True(t, s.Toggle("l1"), "未完了→完了")
	assert.True(t, s.Has("l1"))
	assert.False(t, s.Toggle("l1"), "完了→未完了")
	assert.Equal(t, 0, s.Len())
}

func TestSet_SliceIsSorted(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, NewSet("c", "a", "b", "a").Slice())
	assert.Equal(t, []string{}, NewSet().Slice())
}

func TestNewSet_IgnoresEmptyIDs(t *testing.T) {
	assert.Equal(t, 1, NewSet("", "x").Len())
}

func TestMerge(t *testing.T) {
	a := NewSet("l1", "l2")
	b := NewSet("l2", "l3")

	got := Merge(a, b)

	assert.Equal(t, []string{"l1", "l2", "l3"}, got.Slice())
	assert.True(t, got.Equal(Merge(b, a)), "和集合は可換")
	assert.Equal(t, 2, a.Len(), "入力は変更しない")
}
