package expiry

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/m04kA/SMC-ExperienceService/internal/service/bookings/models"
)

// BookingService интерфейс сервиса, выполняющего проверку сроков оплаты
type BookingService interface {
	SweepExpired(ctx context.Context) (*models.SweepResult, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Sweeper периодически переводит просроченные бронирования в expired
type Sweeper struct {
	service  BookingService
	interval time.Duration
	logger   Logger

	started  atomic.Bool
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewSweeper создает фоновую проверку с периодом interval
func NewSweeper(service BookingService, interval time.Duration, logger Logger) *Sweeper {
	return &Sweeper{
		service:  service,
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run выполняет проверки до отмены ctx или вызова Stop. Блокирует вызывающего.
func (s *Sweeper) Run(ctx context.Context) {
	if !s.started.CompareAndSwap(false, true) {
		s.logger.Warn("Sweeper: already running")
		return
	}
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("Sweeper: started, interval=%s", s.interval)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Sweeper: context cancelled, stopping")
			return
		case <-s.stop:
			s.logger.Info("Sweeper: stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// Stop останавливает Run и ждет завершения текущей проверки.
// Если Run не запускался, Stop сразу возвращается, а последующий Run завершится без проверок.
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	if !s.started.Load() {
		return
	}
	<-s.done
}

func (s *Sweeper) sweep(ctx context.Context) {
	result, err := s.service.SweepExpired(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Error("Sweeper: sweep failed: %v", err)
		return
	}
	if result.Failed > 0 {
		s.logger.Warn("Sweeper: %d experiences failed during sweep", result.Failed)
	}
	s.logger.Debug("Sweeper: checked %d experiences, expired=%d, promoted=%d",
		result.Experiences, result.Expired, result.Promoted)
}
