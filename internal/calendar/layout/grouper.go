package layout

import "strconv"

// TimeGroup записи одной колонки с одинаковой отрисованной геометрией
type TimeGroup struct {
	Key     string
	Scope   string
	Top     float64
	Height  float64
	Entries []Entry
}

// Bottom нижняя граница группы
func (g *TimeGroup) Bottom() float64 {
	return g.Top + g.Height
}

// Overlaps проверяет вертикальное пересечение двух групп
func (g *TimeGroup) Overlaps(other *TimeGroup) bool {
	return !(other.Bottom() <= g.Top || other.Top >= g.Bottom())
}

// GroupKey составной ключ группы: колонка + top + height
func GroupKey(scope string, top, height float64) string {
	return scope + "|" + strconv.FormatFloat(top, 'f', -1, 64) + "|" + strconv.FormatFloat(height, 'f', -1, 64)
}

// GroupEntries раскладывает записи по группам времени.
// Группы возвращаются в порядке первого появления; записи с нераспознанным
// временем не позиционируются и возвращаются вторым значением.
func GroupEntries(entries []Entry, scale Scale, scope ScopeFunc) ([]*TimeGroup, []Entry) {
	var groups []*TimeGroup
	var skipped []Entry
	byKey := make(map[string]*TimeGroup)

	for _, e := range entries {
		slot, ok := ParseTimeSlot(e.TimeSlot)
		if !ok {
			skipped = append(skipped, e)
			continue
		}

		top := scale.Offset(slot.StartMinutes())
		height := scale.Height(slot.StartMinutes(), slot.EndMinutes())
		scopeKey := scope(e)
		key := GroupKey(scopeKey, top, height)

		group, exists := byKey[key]
		if !exists {
			group = &TimeGroup{
				Key:    key,
				Scope:  scopeKey,
				Top:    top,
				Height: height,
			}
			byKey[key] = group
			groups = append(groups, group)
		}
		group.Entries = append(group.Entries, e)
	}

	return groups, skipped
}
