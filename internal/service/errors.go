package service

import (
	"errors"

	"github.com/Freeeeeet/tutor_calendar/internal/repository"
)

// Ошибки сервисного слоя; проверяются через errors.Is
var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrProposalNotFound    = errors.New("proposal not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidTransition   = errors.New("invalid session status transition")
	ErrUnknownStatus       = errors.New("unknown session status")
	ErrNotMakeupEligible   = errors.New("session is not waiting for a make-up")
	ErrProposalNotPending  = repository.ErrProposalNotPending
	ErrProposalSlotMissing = errors.New("proposal slot not found")
)
