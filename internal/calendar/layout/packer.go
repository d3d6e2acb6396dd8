package layout

import "sort"

// ColumnInfo колонка группы и общее число колонок в её кластере пересечений
type ColumnInfo struct {
	Column       int
	TotalColumns int
}

// WidthPercent ширина карточки в процентах от колонки
func (c ColumnInfo) WidthPercent() float64 {
	if c.TotalColumns <= 0 {
		return 100
	}
	return 100 / float64(c.TotalColumns)
}

// LeftPercent смещение карточки слева в процентах
func (c ColumnInfo) LeftPercent() float64 {
	return float64(c.Column) * c.WidthPercent()
}

// PackColumns распределяет группы одной колонки по подколонкам жадным
// алгоритмом разбиения интервалов. Результат индексирован так же, как groups.
func PackColumns(groups []*TimeGroup) []ColumnInfo {
	infos := make([]ColumnInfo, len(groups))
	if len(groups) == 0 {
		return infos
	}

	order := make([]int, len(groups))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return groups[order[a]].Top < groups[order[b]].Top
	})

	// lastBottom[c] нижняя граница последней группы в колонке c
	var lastBottom []float64
	for _, idx := range order {
		g := groups[idx]
		placed := -1
		for c, bottom := range lastBottom {
			if bottom <= g.Top {
				placed = c
				break
			}
		}
		if placed < 0 {
			lastBottom = append(lastBottom, 0)
			placed = len(lastBottom) - 1
		}
		lastBottom[placed] = g.Bottom()
		infos[idx].Column = placed
	}

	for i, g := range groups {
		maxColumn := infos[i].Column
		for j, other := range groups {
			if i == j || !g.Overlaps(other) {
				continue
			}
			if infos[j].Column > maxColumn {
				maxColumn = infos[j].Column
			}
		}
		infos[i].TotalColumns = maxColumn + 1
	}

	return infos
}
