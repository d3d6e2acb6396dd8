// Package status хранит отображение статусов занятий: подпись, иконку, цвет
// и порядок сортировки. Registry используется раскладкой календаря как
// внешний оракул порядка статусов.
package status

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ProposedStatus статус предложенного (ещё не созданного) занятия
const ProposedStatus = "Proposed"

// fallbackSortOrder порядок для неизвестных статусов - после всех известных
const fallbackSortOrder = 99

//go:embed statuses.toml
var defaultTable []byte

// Config отображение одного статуса
type Config struct {
	Name      string
	Label     string
	Icon      string
	Color     color.RGBA
	SortOrder int
	// Ghost карточка рисуется полупрозрачной с пунктиром
	Ghost bool
}

type fileEntry struct {
	Name      string `toml:"name"`
	Label     string `toml:"label"`
	Icon      string `toml:"icon"`
	Color     string `toml:"color"`
	SortOrder int    `toml:"sort_order"`
	Ghost     bool   `toml:"ghost"`
}

type fileTable struct {
	Status []fileEntry `toml:"status"`
}

// Registry таблица статусов
type Registry struct {
	byName map[string]Config
}

// Default возвращает встроенную таблицу статусов
func Default() *Registry {
	reg, err := Parse(defaultTable)
	if err != nil {
		panic("invalid embedded status table: " + err.Error())
	}
	return reg
}

// Load загружает таблицу из файла; пустой путь - встроенная таблица
func Load(path string) (*Registry, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read status table: %w", err)
	}

	reg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse status table %s: %w", path, err)
	}
	return reg, nil
}

// Parse разбирает TOML-таблицу статусов
func Parse(data []byte) (*Registry, error) {
	var table fileTable
	if err := toml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}

	reg := &Registry{byName: make(map[string]Config, len(table.Status))}
	for _, entry := range table.Status {
		if entry.Name == "" {
			return nil, fmt.Errorf("status without name")
		}
		if _, dup := reg.byName[entry.Name]; dup {
			return nil, fmt.Errorf("duplicate status %q", entry.Name)
		}

		clr, err := parseHexColor(entry.Color)
		if err != nil {
			return nil, fmt.Errorf("status %q: %w", entry.Name, err)
		}

		label := entry.Label
		if label == "" {
			label = entry.Name
		}

		reg.byName[entry.Name] = Config{
			Name:      entry.Name,
			Label:     label,
			Icon:      entry.Icon,
			Color:     clr,
			SortOrder: entry.SortOrder,
			Ghost:     entry.Ghost,
		}
	}

	return reg, nil
}

// Lookup возвращает отображение статуса; для неизвестного статуса - нейтральное
func (r *Registry) Lookup(status string) Config {
	if cfg, ok := r.byName[status]; ok {
		return cfg
	}
	return Config{
		Name:      status,
		Label:     status,
		Icon:      "❓",
		Color:     color.RGBA{220, 220, 220, 255},
		SortOrder: fallbackSortOrder,
	}
}

// SortOrder порядок статуса для сортировки карточек
func (r *Registry) SortOrder(status string) int {
	return r.Lookup(status).SortOrder
}

// Known сообщает, описан ли статус в таблице
func (r *Registry) Known(status string) bool {
	_, ok := r.byName[status]
	return ok
}

func parseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}

	if len(hex) == 6 {
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
