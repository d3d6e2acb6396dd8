package service

import (
	"github.com/Freeeeeet/tutor_calendar/internal/calendar/layout"
	"github.com/go-playground/validator/v10"
)

// newValidator создаёт валидатор с проверкой формата "HH:MM - HH:MM"
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("timeslot", func(fl validator.FieldLevel) bool {
		_, ok := layout.ParseTimeSlot(fl.Field().String())
		return ok
	})
	return v
}
