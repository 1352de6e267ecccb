package get_availability

import (
	"context"

	"github.com/m04kA/SMC-ExperienceService/internal/domain"
	"github.com/m04kA/SMC-ExperienceService/internal/service/bookings/models"
)

// Repository интерфейс реестра предложений
type Repository interface {
	GetExperience(ctx context.Context, id string) (domain.Experience, error)
}

// LockManager интерфейс блокировок по ID предложения
type LockManager interface {
	Do(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// Expirer переводит просроченные бронирования в expired под уже взятой блокировкой
type Expirer interface {
	ExpireWithinLock(ctx context.Context, exp domain.Experience) (models.SweepResult, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
