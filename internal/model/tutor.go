package model

import "time"

type Tutor struct {
	ID        int64     `json:"id"`
	Name      string    `json:"tutor_name"`
	Location  string    `json:"default_location"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
