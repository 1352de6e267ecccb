package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ExperienceService/internal/domain"
	"github.com/m04kA/SMC-ExperienceService/internal/service/bookings/models"
)

// Repository интерфейс реестра предложений, клиентов и бронирований
type Repository interface {
	GetExperience(ctx context.Context, id string) (domain.Experience, error)
	GetClient(ctx context.Context, id string) (*domain.Client, error)
	SaveReservation(ctx context.Context, reservation *domain.Reservation) error
	SaveRequest(ctx context.Context, experienceID string, req *domain.WaitlistRequest) error
}

// LockManager интерфейс блокировок по ID предложения
type LockManager interface {
	Do(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// Expirer переводит просроченные бронирования в expired под уже взятой блокировкой
type Expirer interface {
	ExpireWithinLock(ctx context.Context, exp domain.Experience) (models.SweepResult, error)
}

// MetricsRecorder интерфейс для записи метрик
type MetricsRecorder interface {
	RecordTransition(kind, transition string)
	RecordWaitlistJoin(kind string)
	RecordRejected(reason string)
	SetAvailability(experienceID string, availableSlots, waitlistLength int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
