package model

import "time"

type User struct {
	ID         int64     `json:"id"`
	TelegramID int64     `json:"telegram_id"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	TutorID    *int64    `json:"tutor_id"` // указатель - пользователь может не быть тьютором
	IsAdmin    bool      `json:"is_admin"`
	Location   string    `json:"location"` // филиал по умолчанию для календаря
	CreatedAt  time.Time `json:"created_at"`
}

// DisplayName имя для сообщений
func (u *User) DisplayName() string {
	if u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.FirstName
}
