package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func group(top, height float64) *TimeGroup {
	return &TimeGroup{Top: top, Height: height}
}

func TestPackColumnsEmpty(t *testing.T) {
	assert.Empty(t, PackColumns(nil))
}

func TestPackColumnsSingleGroupFullWidth(t *testing.T) {
	infos := PackColumns([]*TimeGroup{group(60, 60)})

	require.Len(t, infos, 1)
	assert.Equal(t, ColumnInfo{Column: 0, TotalColumns: 1}, infos[0])
	assert.Equal(t, 100.0, infos[0].WidthPercent())
	assert.Equal(t, 0.0, infos[0].LeftPercent())
}

func TestPackColumnsNonOverlapping(t *testing.T) {
	groups := []*TimeGroup{group(120, 60), group(0, 60), group(60, 60), group(300, 30)}

	for i, info := range PackColumns(groups) {
		assert.Equal(t, ColumnInfo{Column: 0, TotalColumns: 1}, info, "group %d", i)
	}
}

func TestPackColumnsMutuallyOverlapping(t *testing.T) {
	for k := 1; k <= 5; k++ {
		groups := make([]*TimeGroup, k)
		for i := range groups {
			groups[i] = group(float64(i*5), 100)
		}

		infos := PackColumns(groups)
		used := make(map[int]bool)
		for _, info := range infos {
			assert.Equal(t, k, info.TotalColumns)
			used[info.Column] = true
		}
		assert.Len(t, used, k)
	}
}

func TestPackColumnsHalfOverlap(t *testing.T) {
	// 09:00-10:00 и 09:30-10:30 при 1px/мин от 08:00
	groups := []*TimeGroup{group(60, 60), group(90, 60)}

	infos := PackColumns(groups)

	assert.Equal(t, ColumnInfo{Column: 0, TotalColumns: 2}, infos[0])
	assert.Equal(t, ColumnInfo{Column: 1, TotalColumns: 2}, infos[1])
	assert.Equal(t, 50.0, infos[0].WidthPercent())
	assert.Equal(t, 50.0, infos[1].LeftPercent())
}

func TestPackColumnsReusesFreedColumn(t *testing.T) {
	// A [0,100), B [50,150), C [100,200): C встаёт в колонку A
	groups := []*TimeGroup{group(0, 100), group(50, 100), group(100, 100)}

	infos := PackColumns(groups)

	assert.Equal(t, 0, infos[0].Column)
	assert.Equal(t, 1, infos[1].Column)
	assert.Equal(t, 0, infos[2].Column)
	assert.Equal(t, 2, infos[2].TotalColumns)
}

func TestPackColumnsNoSharedColumnForOverlaps(t *testing.T) {
	groups := []*TimeGroup{
		group(0, 90), group(30, 30), group(45, 120), group(60, 10),
		group(100, 20), group(150, 60), group(170, 10), group(200, 40),
	}

	infos := PackColumns(groups)

	for i := range groups {
		for j := range groups {
			if i != j && groups[i].Overlaps(groups[j]) {
				assert.NotEqual(t, infos[i].Column, infos[j].Column, "groups %d and %d", i, j)
			}
		}
		assert.Less(t, infos[i].Column, infos[i].TotalColumns)
	}
}

func TestPackColumnsIdempotent(t *testing.T) {
	groups := []*TimeGroup{group(0, 90), group(30, 30), group(45, 120), group(100, 20)}

	first := PackColumns(groups)
	second := PackColumns(groups)

	assert.Equal(t, first, second)
}
