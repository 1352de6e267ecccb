package app

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ExperienceService/internal/clock"
	"github.com/m04kA/SMC-ExperienceService/internal/config"
	catalogRepo "github.com/m04kA/SMC-ExperienceService/internal/infra/storage/catalog"
	bookingsService "github.com/m04kA/SMC-ExperienceService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-ExperienceService/internal/service/catalog"
	createReservationUC "github.com/m04kA/SMC-ExperienceService/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/m04kA/SMC-ExperienceService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-ExperienceService/internal/worker/expiry"
	"github.com/m04kA/SMC-ExperienceService/pkg/lockmanager"
	"github.com/m04kA/SMC-ExperienceService/pkg/metrics"
)

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// App собранный движок бронирований: реестр, сервисы, use cases и фоновая проверка сроков
type App struct {
	Catalog           *catalogService.Service
	Bookings          *bookingsService.Service
	CreateReservation *createReservationUC.UseCase
	GetAvailability   *getAvailabilityUC.UseCase
	Sweeper           *expiry.Sweeper
}

// New собирает зависимости. metricsCollector может быть nil, если метрики выключены.
func New(cfg *config.Config, clk clock.Clock, metricsCollector *metrics.Metrics, log Logger) *App {
	repo := catalogRepo.NewRepository()
	locks := lockmanager.New()

	bookingSvc := bookingsService.NewService(repo, locks, metricsCollector, log)
	catalogSvc := catalogService.NewService(repo, locks, clk, log)

	return &App{
		Catalog:  catalogSvc,
		Bookings: bookingSvc,
		CreateReservation: createReservationUC.NewUseCase(
			repo,
			locks,
			bookingSvc,
			metricsCollector,
			clk,
			cfg.Booking.MaxPartySize,
			log,
		),
		GetAvailability: getAvailabilityUC.NewUseCase(repo, locks, bookingSvc, log),
		Sweeper:         expiry.NewSweeper(bookingSvc, cfg.Expiry.Interval(), log),
	}
}

// Seed регистрирует предложения из конфигурации каталога
func (a *App) Seed(ctx context.Context, cfg *config.Config) error {
	if _, err := a.Catalog.Seed(ctx, cfg.Catalog.Experiences); err != nil {
		return fmt.Errorf("app: seed catalog: %w", err)
	}
	return nil
}
