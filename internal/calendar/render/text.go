package render

import (
	"strconv"
	"strings"

	"github.com/fogleman/gg"
)

const ellipsis = "…"

// fitText обрезает текст по ширине с многоточием
func fitText(dc *gg.Context, s string, maxWidth float64) string {
	if maxWidth <= 0 {
		return ""
	}
	if w, _ := dc.MeasureString(s); w <= maxWidth {
		return s
	}

	runes := []rune(s)
	for n := len(runes) - 1; n > 0; n-- {
		candidate := string(runes[:n]) + ellipsis
		if w, _ := dc.MeasureString(candidate); w <= maxWidth {
			return candidate
		}
	}
	return ""
}

// initials первые буквы слов имени, не больше трёх: "Anna Lee" -> "AL"
func initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r := []rune(word)
		if len(r) == 0 {
			continue
		}
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	if r := []rune(b.String()); len(r) > 3 {
		return string(r[:3])
	}
	return b.String()
}

func formatCount(n int) string {
	return strconv.Itoa(n)
}

// формат числа с двумя цифрами
func formatTwoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func formatHourLabel(h int) string {
	return formatTwoDigits(h) + ":00"
}
