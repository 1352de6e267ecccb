package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ExperienceService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-ExperienceService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-ExperienceService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ExperienceService/pkg/metrics"
)

// Service сервис для работы с бронированиями: подтверждение, отмена,
// просрочка оплаты и продвижение заявок из листа ожидания
type Service struct {
	repo    Repository
	locks   LockManager
	metrics MetricsRecorder
	logger  Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	repo Repository,
	locks LockManager,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	return &Service{
		repo:    repo,
		locks:   locks,
		metrics: metrics,
		logger:  logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%s", id)

	reservation, err := s.findReservation(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	var resp models.ReservationResponse
	err = s.locks.Do(ctx, reservation.Experience().ID(), func(ctx context.Context) error {
		resp = models.FromDomainReservation(reservation)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - lock error: %v", ErrInternal, err)
	}

	return &resp, nil
}

// GetClientReservations получает все бронирования клиента в порядке создания
func (s *Service) GetClientReservations(ctx context.Context, clientID string) (*models.ReservationListResponse, error) {
	s.logger.Info("GetClientReservations: fetching reservations for client=%s", clientID)

	client, err := s.repo.GetClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrClientNotFound) {
			s.logger.Warn("GetClientReservations: client id=%s not found", clientID)
			return nil, ErrClientNotFound
		}
		s.logger.Error("GetClientReservations: repository error for client id=%s: %v", clientID, err)
		return nil, fmt.Errorf("%w: GetClientReservations - repository error: %v", ErrInternal, err)
	}

	reservations := client.Reservations()
	resp := &models.ReservationListResponse{
		Reservations: make([]models.ReservationResponse, 0, len(reservations)),
	}

	// Каждое бронирование читается под блокировкой своего предложения
	for _, r := range reservations {
		err := s.locks.Do(ctx, r.Experience().ID(), func(ctx context.Context) error {
			resp.Reservations = append(resp.Reservations, models.FromDomainReservation(r))
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%w: GetClientReservations - lock error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("GetClientReservations: fetched %d reservations for client=%s", len(resp.Reservations), clientID)
	return resp, nil
}

// Confirm подтверждает оплату бронирования.
// Сначала проверяется срок оплаты: просроченное бронирование переводится в expired
// и освобождает места, подтверждение при этом отклоняется.
func (s *Service) Confirm(ctx context.Context, id string) (*models.ReservationResponse, error) {
	s.logger.Info("Confirm: confirming reservation id=%s", id)

	reservation, err := s.findReservation(ctx, "Confirm", id)
	if err != nil {
		return nil, err
	}
	exp := reservation.Experience()

	var resp models.ReservationResponse
	err = s.locks.Do(ctx, exp.ID(), func(ctx context.Context) error {
		expired, promotion, err := reservation.CheckExpiry()
		if err != nil {
			s.logger.Error("Confirm: expiry check failed for reservation id=%s: %v", id, err)
			return fmt.Errorf("%w: Confirm - expiry check: %v", ErrInternal, err)
		}
		if expired {
			s.metrics.RecordTransition(string(exp.Kind()), metrics.TransitionExpired)
			if err := s.recordPromotion(ctx, exp, promotion); err != nil {
				return err
			}
			s.reportAvailability(exp)
			s.logger.Warn("Confirm: reservation id=%s expired at %s", id,
				reservation.PaymentDeadline().Format(domain.DateTimeFormat))
			return ErrPaymentDeadlinePassed
		}

		if err := reservation.Confirm(); err != nil {
			if errors.Is(err, domain.ErrInvalidTransition) {
				s.logger.Warn("Confirm: reservation id=%s cannot be confirmed, status=%s", id, reservation.Status())
				return ErrCannotConfirm
			}
			s.logger.Error("Confirm: domain error for reservation id=%s: %v", id, err)
			return fmt.Errorf("%w: Confirm - domain error: %v", ErrInternal, err)
		}

		s.metrics.RecordTransition(string(exp.Kind()), metrics.TransitionConfirmed)
		resp = models.FromDomainReservation(reservation)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Confirm: successfully confirmed reservation id=%s", id)
	return &resp, nil
}

// Cancel отменяет бронирование и продвигает подходящую заявку из листа ожидания
func (s *Service) Cancel(ctx context.Context, id string) (*models.CancelResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%s", id)

	reservation, err := s.findReservation(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}
	exp := reservation.Experience()

	var resp models.CancelResponse
	err = s.locks.Do(ctx, exp.ID(), func(ctx context.Context) error {
		promotion, err := reservation.Cancel()
		if err != nil {
			if errors.Is(err, domain.ErrInvalidTransition) {
				s.logger.Warn("Cancel: reservation id=%s cannot be cancelled, status=%s", id, reservation.Status())
				return ErrCannotCancel
			}
			s.logger.Error("Cancel: promotion failed after cancelling reservation id=%s: %v", id, err)
			return fmt.Errorf("%w: Cancel - promotion error: %v", ErrInternal, err)
		}

		s.metrics.RecordTransition(string(exp.Kind()), metrics.TransitionCancelled)
		if err := s.recordPromotion(ctx, exp, promotion); err != nil {
			return err
		}
		s.reportAvailability(exp)

		resp = models.CancelResponse{
			Reservation: models.FromDomainReservation(reservation),
			Promotion:   models.FromDomainPromotion(promotion),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%s", id)
	return &resp, nil
}

// CheckExpiry проверяет срок оплаты одного бронирования
func (s *Service) CheckExpiry(ctx context.Context, id string) (*models.ExpiryResponse, error) {
	reservation, err := s.findReservation(ctx, "CheckExpiry", id)
	if err != nil {
		return nil, err
	}
	exp := reservation.Experience()

	var resp models.ExpiryResponse
	err = s.locks.Do(ctx, exp.ID(), func(ctx context.Context) error {
		expired, promotion, err := reservation.CheckExpiry()
		if err != nil {
			s.logger.Error("CheckExpiry: promotion failed for reservation id=%s: %v", id, err)
			return fmt.Errorf("%w: CheckExpiry - promotion error: %v", ErrInternal, err)
		}
		if expired {
			s.metrics.RecordTransition(string(exp.Kind()), metrics.TransitionExpired)
			if err := s.recordPromotion(ctx, exp, promotion); err != nil {
				return err
			}
			s.reportAvailability(exp)
			s.logger.Info("CheckExpiry: reservation id=%s expired", id)
		}

		resp = models.ExpiryResponse{
			Expired:     expired,
			Reservation: models.FromDomainReservation(reservation),
			Promotion:   models.FromDomainPromotion(promotion),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// OutstandingBalance возвращает сумму неоплаченных (pending) бронирований предложения.
// Перед подсчетом просроченные бронирования переводятся в expired.
func (s *Service) OutstandingBalance(ctx context.Context, experienceID string) (*models.BalanceResponse, error) {
	s.logger.Info("OutstandingBalance: experience id=%s", experienceID)

	exp, err := s.getExperience(ctx, "OutstandingBalance", experienceID)
	if err != nil {
		return nil, err
	}

	resp := &models.BalanceResponse{ExperienceID: experienceID}
	err = s.locks.Do(ctx, experienceID, func(ctx context.Context) error {
		if _, err := s.ExpireWithinLock(ctx, exp); err != nil {
			return err
		}
		// Сроки уже проверены: повторная проверка продвинула бы заявку мимо реестра
		resp.Balance = exp.PendingBalance()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// WithdrawRequest отзывает заявку из листа ожидания
func (s *Service) WithdrawRequest(ctx context.Context, requestID string) error {
	s.logger.Info("WithdrawRequest: withdrawing waitlist request id=%s", requestID)

	entry, err := s.repo.FindRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrRequestNotFound) {
			s.logger.Warn("WithdrawRequest: request id=%s not found", requestID)
			return ErrRequestNotFound
		}
		s.logger.Error("WithdrawRequest: repository error for request id=%s: %v", requestID, err)
		return fmt.Errorf("%w: WithdrawRequest - repository error: %v", ErrInternal, err)
	}

	exp, err := s.getExperience(ctx, "WithdrawRequest", entry.ExperienceID)
	if err != nil {
		return err
	}

	err = s.locks.Do(ctx, exp.ID(), func(ctx context.Context) error {
		if err := exp.RemoveRequest(entry.Request); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				s.logger.Warn("WithdrawRequest: request id=%s is no longer waiting", requestID)
				return ErrRequestNotFound
			}
			return fmt.Errorf("%w: WithdrawRequest - domain error: %v", ErrInternal, err)
		}
		if err := s.repo.DeleteRequest(ctx, requestID); err != nil && !errors.Is(err, catalogRepo.ErrRequestNotFound) {
			return fmt.Errorf("%w: WithdrawRequest - repository error: %v", ErrInternal, err)
		}
		s.reportAvailability(exp)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("WithdrawRequest: successfully withdrew request id=%s", requestID)
	return nil
}

// SweepExpired проверяет сроки оплаты во всех предложениях.
// Ошибка одного предложения не останавливает проверку остальных.
func (s *Service) SweepExpired(ctx context.Context) (*models.SweepResult, error) {
	started := time.Now()

	experiences, err := s.repo.ListExperiences(ctx)
	if err != nil {
		s.logger.Error("SweepExpired: repository error: %v", err)
		return nil, fmt.Errorf("%w: SweepExpired - repository error: %v", ErrInternal, err)
	}

	result := &models.SweepResult{}
	for _, exp := range experiences {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		err := s.locks.Do(ctx, exp.ID(), func(ctx context.Context) error {
			partial, err := s.ExpireWithinLock(ctx, exp)
			result.Add(partial)
			return err
		})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, ctxErr
			}
			result.Failed++
			s.logger.Error("SweepExpired: experience id=%s: %v", exp.ID(), err)
		}
	}

	s.metrics.ObserveSweep(time.Since(started).Seconds())
	if result.Expired > 0 || result.Failed > 0 {
		s.logger.Info("SweepExpired: checked %d experiences, expired=%d, promoted=%d, failed=%d",
			result.Experiences, result.Expired, result.Promoted, result.Failed)
	}
	return result, nil
}

// ExpireWithinLock переводит просроченные бронирования предложения в expired
// и регистрирует продвинутые заявки. Вызывающий должен удерживать блокировку exp.
func (s *Service) ExpireWithinLock(ctx context.Context, exp domain.Experience) (models.SweepResult, error) {
	result := models.SweepResult{Experiences: 1}

	for _, r := range exp.Reservations() {
		expired, promotion, err := r.CheckExpiry()
		if err != nil {
			s.logger.Error("ExpireWithinLock: promotion failed for reservation id=%s: %v", r.ID(), err)
			return result, fmt.Errorf("%w: ExpireWithinLock - promotion error: %v", ErrInternal, err)
		}
		if !expired {
			continue
		}

		result.Expired++
		s.metrics.RecordTransition(string(exp.Kind()), metrics.TransitionExpired)
		s.logger.Info("ExpireWithinLock: reservation id=%s expired", r.ID())

		if promotion != nil {
			if err := s.recordPromotion(ctx, exp, promotion); err != nil {
				return result, err
			}
			result.Promoted++
		}
	}

	if result.Expired > 0 {
		s.reportAvailability(exp)
	}
	return result, nil
}

// Вспомогательные методы

// recordPromotion регистрирует бронирование, созданное из заявки листа ожидания
func (s *Service) recordPromotion(ctx context.Context, exp domain.Experience, p *domain.Promotion) error {
	if p == nil {
		return nil
	}

	if err := s.repo.SaveReservation(ctx, p.Promoted); err != nil {
		s.logger.Error("recordPromotion: failed to index reservation id=%s: %v", p.Promoted.ID(), err)
		return fmt.Errorf("%w: recordPromotion - repository error: %v", ErrInternal, err)
	}
	if err := s.repo.DeleteRequest(ctx, p.Request.ID()); err != nil && !errors.Is(err, catalogRepo.ErrRequestNotFound) {
		s.logger.Error("recordPromotion: failed to drop request id=%s: %v", p.Request.ID(), err)
		return fmt.Errorf("%w: recordPromotion - repository error: %v", ErrInternal, err)
	}

	s.metrics.RecordTransition(string(exp.Kind()), metrics.TransitionPromoted)
	s.logger.Info("recordPromotion: request id=%s promoted to reservation id=%s in experience id=%s (vacated id=%s)",
		p.Request.ID(), p.Promoted.ID(), exp.ID(), p.Vacated.ID())
	return nil
}

// reportAvailability обновляет метрики доступности предложения
func (s *Service) reportAvailability(exp domain.Experience) {
	slots, err := exp.AvailableSlots()
	if err != nil {
		return
	}
	s.metrics.SetAvailability(exp.ID(), slots, len(exp.Requests()))
}

func (s *Service) findReservation(ctx context.Context, op, id string) (*domain.Reservation, error) {
	reservation, err := s.repo.FindReservation(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%s not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return reservation, nil
}

func (s *Service) getExperience(ctx context.Context, op, id string) (domain.Experience, error) {
	exp, err := s.repo.GetExperience(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrExperienceNotFound) {
			s.logger.Warn("%s: experience id=%s not found", op, id)
			return nil, ErrExperienceNotFound
		}
		s.logger.Error("%s: repository error for experience id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return exp, nil
}
