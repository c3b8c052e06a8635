// internal/course/catalog.go
package course

import (
	_ "embed"
	"fmt"
	"sort"

	"course_portal/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

type catalogDocument struct {
	Courses []model.CourseCatalogEntry `yaml:"courses"`
}

// Course はカタログの1エントリと、そのレッスン列のナビゲータ
type Course struct {
	Entry model.CourseCatalogEntry
	Nav   *Navigator
}

func (c *Course) ID() model.CourseID {
	return c.Entry.ID
}

// Summary は一覧表示用の DTO を返す。Locked はアクセス判定後に呼び出し側が埋める
func (c *Course) Summary() model.CourseSummary {
	return model.CourseSummary{
		ID:            c.Entry.ID,
		Title:         c.Entry.Title,
		TitleAr:       c.Entry.TitleAr,
		Description:   c.Entry.Description,
		Price:         c.Entry.Price,
		OriginalPrice: c.Entry.OriginalPrice,
		Currency:      c.Entry.Currency,
		TotalLessons:  c.Nav.TotalLessons(),
	}
}

// Catalog は起動時に一度だけ構築される読み取り専用のコース定義。並行に読んでも安全
type Catalog struct {
	courses map[model.CourseID]*Course
	order   []model.CourseID
}

// LoadDefault はバイナリに埋め込まれた catalog.yaml を読み込みます
func LoadDefault() (*Catalog, error) {
	return Parse(defaultCatalogYAML)
}

func Parse(data []byte) (*Catalog, error) {
	var doc catalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("course.Parse: %w", err)
	}
	return NewCatalog(doc.Courses)
}

// NewCatalog はエントリを検証し、bundle の includes を解決してからナビゲータを構築します。
// モジュールとレッスンは number 順に並べ替える (同じ number は宣言順)
func NewCatalog(entries []model.CourseCatalogEntry) (*Catalog, error) {
	cat := &Catalog{courses: make(map[model.CourseID]*Course, len(entries))}
	byID := make(map[model.CourseID]model.CourseCatalogEntry, len(entries))
	lessonOwner := make(map[string]model.CourseID)

	for _, e := range entries {
		if !e.ID.IsValid() {
			return nil, fmt.Errorf("course.NewCatalog: unknown course id %q", e.ID)
		}
		if _, dup := byID[e.ID]; dup {
			return nil, fmt.Errorf("course.NewCatalog: duplicate course id %q", e.ID)
		}
		e.Modules = sortedModules(e.Modules)

		moduleIDs := make(map[string]struct{}, len(e.Modules))
		for _, m := range e.Modules {
			if m.ID == "" {
				return nil, fmt.Errorf("course.NewCatalog: %s has a module without id", e.ID)
			}
			if _, dup := moduleIDs[m.ID]; dup {
				return nil, fmt.Errorf("course.NewCatalog: duplicate module id %q in %s", m.ID, e.ID)
			}
			moduleIDs[m.ID] = struct{}{}
			for _, l := range m.Lessons {
				if l.ID == "" {
					return nil, fmt.Errorf("course.NewCatalog: module %q has a lesson without id", m.ID)
				}
				if owner, dup := lessonOwner[l.ID]; dup {
					return nil, fmt.Errorf("course.NewCatalog: lesson id %q used by both %s and %s", l.ID, owner, e.ID)
				}
				lessonOwner[l.ID] = e.ID
			}
		}
		byID[e.ID] = e
		cat.order = append(cat.order, e.ID)
	}

	for _, id := range cat.order {
		e := byID[id]
		modules, err := resolveModules(e, byID)
		if err != nil {
			return nil, err
		}
		e.Modules = modules
		cat.courses[id] = &Course{Entry: e, Nav: NewNavigator(modules)}
	}
	return cat, nil
}

// resolveModules は includes に並んだコースのモジュールを宣言順に連結し、最後に自身のモジュールを続ける
func resolveModules(e model.CourseCatalogEntry, byID map[model.CourseID]model.CourseCatalogEntry) ([]model.Module, error) {
	if len(e.Includes) == 0 {
		return e.Modules, nil
	}
	var modules []model.Module
	for _, inc := range e.Includes {
		if inc == e.ID || inc.IsBundle() {
			return nil, fmt.Errorf("course.NewCatalog: %s cannot include %s", e.ID, inc)
		}
		included, ok := byID[inc]
		if !ok {
			return nil, fmt.Errorf("course.NewCatalog: %s includes %s which is not in the catalog", e.ID, inc)
		}
		if len(included.Includes) > 0 {
			return nil, fmt.Errorf("course.NewCatalog: nested includes are not supported (%s -> %s)", e.ID, inc)
		}
		modules = append(modules, included.Modules...)
	}
	return append(modules, e.Modules...), nil
}

func sortedModules(in []model.Module) []model.Module {
	out := make([]model.Module, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	for i := range out {
		lessons := make([]model.Lesson, len(out[i].Lessons))
		copy(lessons, out[i].Lessons)
		sort.SliceStable(lessons, func(a, b int) bool { return lessons[a].Number < lessons[b].Number })
		out[i].Lessons = lessons
	}
	return out
}

// Lookup は id のコースを返す。列挙外・未定義は ErrCourseNotFound
func (c *Catalog) Lookup(id model.CourseID) (*Course, error) {
	course, ok := c.courses[id]
	if !ok {
		return nil, model.ErrCourseNotFound
	}
	return course, nil
}

// Courses はカタログの宣言順に全コースを返す
func (c *Catalog) Courses() []*Course {
	out := make([]*Course, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.courses[id])
	}
	return out
}

func (c *Catalog) Summaries() []model.CourseSummary {
	out := make([]model.CourseSummary, 0, len(c.order))
	for _, course := range c.Courses() {
		out = append(out, course.Summary())
	}
	return out
}

// Price はコースの販売価格。カタログに無いコースは 0
func (c *Catalog) Price(id model.CourseID) int {
	if course, ok := c.courses[id]; ok {
		return course.Entry.Price
	}
	return 0
}

// Currency はカタログ先頭コースの通貨 (全コース同一通貨の前提)
func (c *Catalog) Currency() string {
	if len(c.order) == 0 {
		return ""
	}
	return c.courses[c.order[0]].Entry.Currency
}

// Expand は bundle の付与を bundle + includes に展開し、重複を除いて返します
func (c *Catalog) Expand(ids []model.CourseID) []model.CourseID {
	seen := make(map[model.CourseID]struct{}, len(ids))
	var out []model.CourseID
	add := func(id model.CourseID) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, id := range ids {
		if course, ok := c.courses[id]; ok {
			for _, inc := range course.Entry.Includes {
				add(inc)
			}
		}
		add(id)
	}
	return out
}
