package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/tutor_calendar/internal/model"
	"go.uber.org/zap"
)

type UserService struct {
	users           UserStore
	defaultLocation string
	logger          *zap.Logger
}

func NewUserService(users UserStore, defaultLocation string, logger *zap.Logger) *UserService {
	return &UserService{
		users:           users,
		defaultLocation: defaultLocation,
		logger:          logger,
	}
}

// Register регистрирует или обновляет пользователя
func (s *UserService) Register(ctx context.Context, telegramID int64, username, firstName, lastName string) (*model.User, error) {
	user := &model.User{
		TelegramID: telegramID,
		Username:   username,
		FirstName:  firstName,
		LastName:   lastName,
		Location:   s.defaultLocation,
	}

	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	s.logger.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.Int64("telegram_id", telegramID),
		zap.String("username", username),
	)

	return user, nil
}

// GetByTelegramID получает пользователя по Telegram ID
func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// SetLocation меняет филиал по умолчанию для календаря пользователя
func (s *UserService) SetLocation(ctx context.Context, telegramID int64, location string) (*model.User, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("location is empty")
	}

	user, err := s.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateLocation(ctx, user.ID, location); err != nil {
		return nil, fmt.Errorf("update location: %w", err)
	}
	user.Location = location

	s.logger.Info("User location changed",
		zap.Int64("user_id", user.ID),
		zap.String("location", location),
	)

	return user, nil
}
