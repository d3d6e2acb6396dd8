package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/calendar"
)

// commandArgs аргументы команды без самой команды: "/day 2026-10-20" -> ["2026-10-20"]
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) <= 1 {
		return nil
	}
	return fields[1:]
}

// commandTail всё после команды одной строкой: "/location North Point" -> "North Point"
func commandTail(text string) string {
	text = strings.TrimSpace(text)
	idx := strings.IndexAny(text, " \t")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(text[idx:])
}

// parseDateArg разбирает необязательную дату команды; без аргумента - сегодня
func parseDateArg(args []string, today time.Time) (time.Time, error) {
	if len(args) == 0 {
		return today, nil
	}

	switch strings.ToLower(args[0]) {
	case "today", "сегодня":
		return today, nil
	case "tomorrow", "завтра":
		return today.AddDate(0, 0, 1), nil
	case "yesterday", "вчера":
		return today.AddDate(0, 0, -1), nil
	}

	date, err := calendar.ParseDate(args[0], today.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", args[0])
	}
	return date, nil
}

// parseSessionID разбирает ID занятия
func parseSessionID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("session id is required")
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(args[0], "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid session id %q", args[0])
	}
	return id, nil
}
