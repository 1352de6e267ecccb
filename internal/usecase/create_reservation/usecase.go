package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ExperienceService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-ExperienceService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-ExperienceService/pkg/metrics"
)

// Причины отказа для метрики rejected
const (
	rejectNoAvailability    = "no_availability"
	rejectCapacityExceeded  = "capacity_exceeded"
	rejectNoGuide           = "no_guide"
	rejectMissingActivities = "missing_activities"
	rejectInvalidInput      = "invalid_input"
)

// UseCase use case для создания бронирования
type UseCase struct {
	repo         Repository
	locks        LockManager
	expirer      Expirer
	metrics      MetricsRecorder
	timeProvider TimeProvider
	maxPartySize int
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	repo Repository,
	locks LockManager,
	expirer Expirer,
	metrics MetricsRecorder,
	timeProvider TimeProvider,
	maxPartySize int,
	logger Logger,
) *UseCase {
	return &UseCase{
		repo:         repo,
		locks:        locks,
		expirer:      expirer,
		metrics:      metrics,
		timeProvider: timeProvider,
		maxPartySize: maxPartySize,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка доступности и регистрация выполняются под блокировкой предложения,
// поэтому два параллельных запроса не могут занять одни и те же места.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req, uc.maxPartySize); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		uc.metrics.RecordRejected(rejectInvalidInput)
		return nil, err
	}

	uc.logger.Info("CreateReservation: client=%s, experience=%s, partySize=%d, joinWaitlist=%t",
		req.ClientID, req.ExperienceID, req.PartySize, req.JoinWaitlist)

	// 2. Получаем клиента
	client, err := uc.repo.GetClient(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrClientNotFound) {
			uc.logger.Warn("CreateReservation: client id=%s not found", req.ClientID)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("CreateReservation: failed to get client id=%s: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	// 3. Получаем предложение
	exp, err := uc.repo.GetExperience(ctx, req.ExperienceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrExperienceNotFound) {
			uc.logger.Warn("CreateReservation: experience id=%s not found", req.ExperienceID)
			return nil, ErrExperienceNotFound
		}
		uc.logger.Error("CreateReservation: failed to get experience id=%s: %v", req.ExperienceID, err)
		return nil, fmt.Errorf("%w: failed to get experience: %v", ErrInternal, err)
	}

	var resp *Response

	// 4. Проверка доступности и регистрация под блокировкой предложения
	err = uc.locks.Do(ctx, exp.ID(), func(ctx context.Context) error {
		// 4.1. Просроченные бронирования освобождают места до проверки
		if _, err := uc.expirer.ExpireWithinLock(ctx, exp); err != nil {
			uc.logger.Error("CreateReservation: expiry failed for experience id=%s: %v", exp.ID(), err)
			return fmt.Errorf("%w: expiry failed: %v", ErrInternal, err)
		}

		// 4.2. Проверяем доступность
		available, err := exp.ValidateAvailability(req.PartySize)
		if err != nil {
			return uc.mapAvailabilityError(exp, err)
		}

		// 4.3. Мест нет: отказ или лист ожидания
		if !available {
			if !req.JoinWaitlist {
				uc.logger.Warn("CreateReservation: no availability for %d people in experience id=%s",
					req.PartySize, exp.ID())
				uc.metrics.RecordRejected(rejectNoAvailability)
				return ErrNoAvailability
			}
			resp, err = uc.joinWaitlist(ctx, exp, client, req.PartySize)
			return err
		}

		// 4.4. Создаем бронирование
		resp, err = uc.reserve(ctx, exp, client, req.PartySize)
		return err
	})
	if err != nil {
		return nil, err
	}

	if resp.Waitlisted {
		uc.logger.Info("CreateReservation: client=%s waitlisted in experience id=%s, request id=%s",
			client.ID(), exp.ID(), resp.RequestID)
	} else {
		uc.logger.Info("CreateReservation: successfully created reservation id=%s", resp.ReservationID)
	}
	return resp, nil
}

// reserve создает бронирование и регистрирует его в предложении, у клиента и в реестре.
// При ошибке на любом шаге предыдущие шаги откатываются.
func (uc *UseCase) reserve(ctx context.Context, exp domain.Experience, client *domain.Client, partySize int) (*Response, error) {
	reservation, err := domain.NewReservation(exp, client, partySize)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to build reservation: %v", err)
		return nil, fmt.Errorf("%w: failed to build reservation: %v", ErrInternal, err)
	}

	if err := exp.AddReservation(reservation); err != nil {
		uc.logger.Error("CreateReservation: failed to register reservation in experience: %v", err)
		return nil, fmt.Errorf("%w: failed to register reservation: %v", ErrInternal, err)
	}

	if err := client.AddReservation(reservation); err != nil {
		_ = exp.RemoveReservation(reservation)
		uc.logger.Error("CreateReservation: failed to register reservation for client id=%s: %v", client.ID(), err)
		return nil, fmt.Errorf("%w: failed to register reservation for client: %v", ErrInternal, err)
	}

	if err := uc.repo.SaveReservation(ctx, reservation); err != nil {
		_ = client.RemoveReservation(reservation)
		_ = exp.RemoveReservation(reservation)
		uc.logger.Error("CreateReservation: failed to index reservation: %v", err)
		return nil, fmt.Errorf("%w: failed to save reservation: %v", ErrInternal, err)
	}

	uc.metrics.RecordTransition(string(exp.Kind()), metrics.TransitionCreated)
	uc.reportAvailability(exp)

	return &Response{
		ReservationID:   reservation.ID(),
		Status:          string(reservation.Status()),
		TotalAmount:     reservation.TotalAmount(),
		CreatedAt:       reservation.CreatedAt(),
		PaymentDeadline: reservation.PaymentDeadline(),
		ExperienceID:    exp.ID(),
		ClientID:        client.ID(),
		PartySize:       partySize,
	}, nil
}

// joinWaitlist ставит клиента в лист ожидания предложения
func (uc *UseCase) joinWaitlist(ctx context.Context, exp domain.Experience, client *domain.Client, partySize int) (*Response, error) {
	request := domain.NewWaitlistRequest(uc.timeProvider.Now(), client, partySize)

	if err := exp.AddRequest(request); err != nil {
		uc.logger.Error("CreateReservation: failed to add waitlist request: %v", err)
		return nil, fmt.Errorf("%w: failed to add waitlist request: %v", ErrInternal, err)
	}

	if err := uc.repo.SaveRequest(ctx, exp.ID(), request); err != nil {
		_ = exp.RemoveRequest(request)
		uc.logger.Error("CreateReservation: failed to index waitlist request: %v", err)
		return nil, fmt.Errorf("%w: failed to save waitlist request: %v", ErrInternal, err)
	}

	uc.metrics.RecordWaitlistJoin(string(exp.Kind()))
	uc.reportAvailability(exp)

	return &Response{
		Waitlisted:   true,
		RequestID:    request.ID(),
		EnteredAt:    request.EnteredAt(),
		Position:     len(exp.Requests()),
		ExperienceID: exp.ID(),
		ClientID:     client.ID(),
		PartySize:    partySize,
	}, nil
}

// mapAvailabilityError переводит доменные ошибки проверки доступности в ошибки usecase
func (uc *UseCase) mapAvailabilityError(exp domain.Experience, err error) error {
	switch {
	case errors.Is(err, domain.ErrCapacityExceeded):
		uc.logger.Warn("CreateReservation: experience id=%s: %v", exp.ID(), err)
		uc.metrics.RecordRejected(rejectCapacityExceeded)
		return fmt.Errorf("%w: %v", ErrCapacityExceeded, err)
	case errors.Is(err, domain.ErrNoGuideAssigned):
		uc.logger.Warn("CreateReservation: experience id=%s has no guide", exp.ID())
		uc.metrics.RecordRejected(rejectNoGuide)
		return ErrNoGuideAssigned
	case errors.Is(err, domain.ErrMissingActivities):
		uc.logger.Warn("CreateReservation: experience id=%s has no activities", exp.ID())
		uc.metrics.RecordRejected(rejectMissingActivities)
		return ErrMissingActivities
	default:
		uc.logger.Error("CreateReservation: availability check failed for experience id=%s: %v", exp.ID(), err)
		return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
	}
}

func (uc *UseCase) reportAvailability(exp domain.Experience) {
	slots, err := exp.AvailableSlots()
	if err != nil {
		return
	}
	uc.metrics.SetAvailability(exp.ID(), slots, len(exp.Requests()))
}
