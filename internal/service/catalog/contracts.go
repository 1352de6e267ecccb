package catalog

import (
	"context"

	"github.com/m04kA/SMC-ExperienceService/internal/domain"
)

// Repository интерфейс реестра предложений и клиентов
type Repository interface {
	AddExperience(ctx context.Context, exp domain.Experience) error
	GetExperience(ctx context.Context, id string) (domain.Experience, error)
	ListExperiences(ctx context.Context) ([]domain.Experience, error)
	AddClient(ctx context.Context, client *domain.Client) error
}

// LockManager интерфейс блокировок по ID предложения
type LockManager interface {
	Do(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
