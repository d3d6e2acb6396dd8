package layout

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Приоритеты карточек внутри группы
const (
	TierTrial             = 0
	TierMainScheduled     = 1
	TierMainAttended      = 2
	TierScheduled         = 3
	TierAttended          = 4
	TierMakeup            = 5
	TierAttendedMakeup    = 6
	TierFallbackBase      = 10
	unknownStatusSortRank = 99
)

// StatusOracle внешний порядок сортировки статусов
type StatusOracle interface {
	SortOrder(status string) int
}

// SortContext параметры сортировки группы
type SortContext struct {
	Oracle StatusOracle
	// ScopeCounts число Scheduled-занятий по ключу класс+поток во всей колонке,
	// используется для разрешения ничьих при выборе основной группы
	ScopeCounts map[string]int
}

// CountScheduled считает Scheduled-записи по ключу класс+поток
func CountScheduled(entries []Entry) map[string]int {
	counts := make(map[string]int)
	for _, e := range entries {
		if e.Status == StatusScheduled {
			counts[e.GradeKey()]++
		}
	}
	return counts
}

// MainGroupKey возвращает ключ класс+поток с наибольшим числом Scheduled-записей.
// Пустая строка означает, что основной группы нет.
func MainGroupKey(entries []Entry, scopeCounts map[string]int) string {
	counts := CountScheduled(entries)

	best := ""
	bestCount := 0
	for key, count := range counts {
		switch {
		case count > bestCount:
		case count == bestCount && scopeCounts[key] > scopeCounts[best]:
		case count == bestCount && scopeCounts[key] == scopeCounts[best] && key < best:
		default:
			continue
		}
		best = key
		bestCount = count
	}
	return best
}

// Tier вычисляет приоритет записи
func Tier(e Entry, mainKey string, oracle StatusOracle) int {
	isMain := mainKey != "" && e.GradeKey() == mainKey

	switch {
	case e.Status == StatusTrialClass:
		return TierTrial
	case isMain && e.Status == StatusScheduled:
		return TierMainScheduled
	case isMain && e.Status == StatusAttended:
		return TierMainAttended
	case e.Status == StatusScheduled:
		return TierScheduled
	case e.Status == StatusAttended:
		return TierAttended
	case e.Status == StatusMakeupClass:
		return TierMakeup
	case e.Status == StatusAttendedMakeup:
		return TierAttendedMakeup
	}

	if oracle == nil {
		return TierFallbackBase + unknownStatusSortRank
	}
	return TierFallbackBase + oracle.SortOrder(e.Status)
}

// SortGroup упорядочивает записи одной группы времени.
// Исходный срез не изменяется.
func SortGroup(entries []Entry, sc SortContext) []Entry {
	mainKey := MainGroupKey(entries, sc.ScopeCounts)

	ranked := make([]rankedEntry, len(entries))
	for i, e := range entries {
		ranked[i] = rankedEntry{entry: e, tier: Tier(e, mainKey, sc.Oracle)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.tier != b.tier {
			return a.tier < b.tier
		}
		if a.tier <= TierMainAttended && a.entry.School != b.entry.School {
			return a.entry.School < b.entry.School
		}
		return a.entry.SchoolStudentID < b.entry.SchoolStudentID
	})

	sorted := make([]Entry, len(ranked))
	for i, r := range ranked {
		sorted[i] = r.entry
	}
	return sorted
}

type rankedEntry struct {
	entry Entry
	tier  int
}

// SortGroupByTutor разбивает группу по тьюторам, сортирует каждую часть
// и склеивает их в порядке имён тьюторов
func SortGroupByTutor(entries []Entry, sc SortContext) []Entry {
	var tutorOrder []int64
	byTutor := make(map[int64][]Entry)
	names := make(map[int64]string)
	for _, e := range entries {
		if _, ok := byTutor[e.TutorID]; !ok {
			tutorOrder = append(tutorOrder, e.TutorID)
			names[e.TutorID] = e.TutorName
		}
		byTutor[e.TutorID] = append(byTutor[e.TutorID], e)
	}

	col := NewTutorCollator()
	sort.SliceStable(tutorOrder, func(i, j int) bool {
		a, b := tutorOrder[i], tutorOrder[j]
		if cmp := col.Compare(names[a], names[b]); cmp != 0 {
			return cmp < 0
		}
		return a < b
	})

	result := make([]Entry, 0, len(entries))
	for _, id := range tutorOrder {
		result = append(result, SortGroup(byTutor[id], sc)...)
	}
	return result
}

// TutorCollator сравнивает имена тьюторов с учётом правил алфавита и без учёта регистра.
// Не безопасен для одновременного использования из нескольких горутин.
type TutorCollator struct {
	col *collate.Collator
}

// NewTutorCollator создаёт компаратор имён тьюторов
func NewTutorCollator() *TutorCollator {
	return &TutorCollator{col: collate.New(language.English, collate.IgnoreCase)}
}

// Compare сравнивает имена без обращений; результат как у strings.Compare
func (t *TutorCollator) Compare(a, b string) int {
	return t.col.CompareString(TutorSortName(a), TutorSortName(b))
}

var honorifics = []string{"mr", "mrs", "ms", "miss", "dr", "teacher", "prof"}

// TutorSortName отбрасывает обращения ("Mr.", "Ms", "Dr." ...) из имени тьютора
func TutorSortName(name string) string {
	fields := strings.Fields(name)
	for len(fields) > 1 && isHonorific(fields[0]) {
		fields = fields[1:]
	}
	return strings.Join(fields, " ")
}

func isHonorific(word string) bool {
	w := strings.ToLower(strings.TrimSuffix(word, "."))
	for _, h := range honorifics {
		if w == h {
			return true
		}
	}
	return false
}
