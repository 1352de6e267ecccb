package bookings

import (
	"context"

	"github.com/m04kA/SMC-ExperienceService/internal/domain"
	"github.com/m04kA/SMC-ExperienceService/internal/infra/storage/catalog"
)

// Repository интерфейс реестра предложений и бронирований
type Repository interface {
	GetExperience(ctx context.Context, id string) (domain.Experience, error)
	ListExperiences(ctx context.Context) ([]domain.Experience, error)
	GetClient(ctx context.Context, id string) (*domain.Client, error)
	SaveReservation(ctx context.Context, reservation *domain.Reservation) error
	FindReservation(ctx context.Context, id string) (*domain.Reservation, error)
	FindRequest(ctx context.Context, id string) (catalog.WaitlistEntry, error)
	DeleteRequest(ctx context.Context, id string) error
}

// LockManager интерфейс блокировок по ID предложения
type LockManager interface {
	Do(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// MetricsRecorder интерфейс для записи метрик
type MetricsRecorder interface {
	RecordTransition(kind, transition string)
	SetAvailability(experienceID string, availableSlots, waitlistLength int)
	ObserveSweep(seconds float64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
