// Package layout раскладывает занятия по сетке календаря: разбор времени,
// пиксельные координаты, группы одновременных занятий, упаковка пересекающихся
// групп в подколонки и порядок карточек внутри группы.
//
// Пакет не хранит состояния: каждый вызов Compute считает раскладку заново.
package layout

// Config параметры одного прохода раскладки
type Config struct {
	// Scope ключ колонки: тьютор в дневном виде, дата в недельном
	Scope ScopeFunc
	// ByTutor дополнительно разбивает группы по тьюторам (недельный вид)
	ByTutor bool
	Oracle  StatusOracle

	ViewportHeight float64
	FillHeight     bool
	// Hours фиксированный диапазон часов; нулевое значение - вычислить по записям
	Hours HourRange

	// Collapsed свёрнутые колонки: записи в них считаются, но не позиционируются
	Collapsed map[string]bool
}

// Placement геометрия одной карточки
type Placement struct {
	Entry        Entry
	Scope        string
	GroupKey     string
	Top          float64
	Height       float64
	Column       int
	TotalColumns int
	LeftPercent  float64
	WidthPercent float64
	// Order позиция карточки внутри своей группы
	Order int
}

// Result раскладка для всех колонок
type Result struct {
	Hours           HourRange
	Scale           Scale
	Scopes          []string
	Groups          []*TimeGroup
	Placements      []Placement
	Skipped         []Entry
	CollapsedCounts map[string]int
}

// ByScope возвращает карточки одной колонки
func (r *Result) ByScope(scope string) []Placement {
	var placements []Placement
	for _, p := range r.Placements {
		if p.Scope == scope {
			placements = append(placements, p)
		}
	}
	return placements
}

// Height полная высота сетки в пикселях
func (r *Result) Height() float64 {
	return r.Scale.Offset(r.Hours.End * 60)
}

func singleScope(Entry) string { return "" }

// Compute считает раскладку для списка записей
func Compute(entries []Entry, cfg Config) Result {
	scope := cfg.Scope
	if scope == nil {
		scope = singleScope
	}

	hours := cfg.Hours
	if hours.IsZero() {
		hours = CalculateHourRange(entries)
	}
	scale := ScaleFor(cfg.ViewportHeight, cfg.FillHeight, hours)

	result := Result{
		Hours:           hours,
		Scale:           scale,
		CollapsedCounts: make(map[string]int),
	}

	seenScopes := make(map[string]bool)
	visible := make([]Entry, 0, len(entries))
	scopeEntries := make(map[string][]Entry)
	for _, e := range entries {
		key := scope(e)
		if !seenScopes[key] {
			seenScopes[key] = true
			result.Scopes = append(result.Scopes, key)
		}
		if cfg.Collapsed[key] {
			result.CollapsedCounts[key]++
			continue
		}
		visible = append(visible, e)
		scopeEntries[key] = append(scopeEntries[key], e)
	}

	groups, skipped := GroupEntries(visible, scale, scope)
	result.Groups = groups
	result.Skipped = skipped

	groupsByScope := make(map[string][]*TimeGroup)
	for _, g := range groups {
		groupsByScope[g.Scope] = append(groupsByScope[g.Scope], g)
	}

	for _, key := range result.Scopes {
		scoped := groupsByScope[key]
		if len(scoped) == 0 {
			continue
		}

		sc := SortContext{
			Oracle:      cfg.Oracle,
			ScopeCounts: CountScheduled(scopeEntries[key]),
		}
		columns := PackColumns(scoped)

		for i, g := range scoped {
			if cfg.ByTutor {
				g.Entries = SortGroupByTutor(g.Entries, sc)
			} else {
				g.Entries = SortGroup(g.Entries, sc)
			}

			info := columns[i]
			for order, e := range g.Entries {
				result.Placements = append(result.Placements, Placement{
					Entry:        e,
					Scope:        key,
					GroupKey:     g.Key,
					Top:          g.Top,
					Height:       g.Height,
					Column:       info.Column,
					TotalColumns: info.TotalColumns,
					LeftPercent:  info.LeftPercent(),
					WidthPercent: info.WidthPercent(),
					Order:        order,
				})
			}
		}
	}

	return result
}
