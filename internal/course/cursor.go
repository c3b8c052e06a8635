// internal/course/cursor.go
package course

import "course_portal/internal/model"

// Cursor は表示中のレッスン。Unselected (at == nil) か At(module, lesson) のどちらか。
// 保存はせず、コースを開くたびに Unselected から始まる
type Cursor struct {
	nav *Navigator
	at  *model.LessonRef
}

// NewCursor は Unselected のカーソルを返す
func (n *Navigator) NewCursor() *Cursor {
	return &Cursor{nav: n}
}

func (c *Cursor) Selected() bool {
	return c.at != nil
}

// Current は At のときだけ位置を返す
func (c *Cursor) Current() *model.LessonRef {
	if c.at == nil {
		return nil
	}
	ref := *c.at
	return &ref
}

// Select は存在する (module, lesson) に移動する。存在しなければ状態を変えずに ErrNotFound
func (c *Cursor) Select(moduleID, lessonID string) error {
	ref := model.LessonRef{ModuleID: moduleID, LessonID: lessonID}
	if _, err := c.nav.position(ref); err != nil {
		return err
	}
	c.at = &ref
	return nil
}

// SelectFirst は先頭レッスンを自動選択する入口用
func (c *Cursor) SelectFirst() error {
	first := c.nav.First()
	if first == nil {
		return model.ErrNotFound
	}
	c.at = first
	return nil
}

// Next は次のレッスンへ進み、移動できたら true。
// Unselected からは遷移しない。コース末尾では At のまま false を返す
func (c *Cursor) Next() bool {
	return c.move(c.nav.Next)
}

func (c *Cursor) Prev() bool {
	return c.move(c.nav.Prev)
}

func (c *Cursor) move(step func(model.LessonRef) (*model.LessonRef, error)) bool {
	if c.at == nil {
		return false
	}
	next, err := step(*c.at)
	if err != nil || next == nil {
		return false
	}
	c.at = next
	return true
}

// Reset はコース画面に入り直したときの状態に戻す
func (c *Cursor) Reset() {
	c.at = nil
}
