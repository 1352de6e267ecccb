package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ExperienceService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-ExperienceService/internal/infra/storage/catalog"
)

// UseCase use case для получения доступности предложения
type UseCase struct {
	repo    Repository
	locks   LockManager
	expirer Expirer
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	repo Repository,
	locks LockManager,
	expirer Expirer,
	logger Logger,
) *UseCase {
	return &UseCase{
		repo:    repo,
		locks:   locks,
		expirer: expirer,
		logger:  logger,
	}
}

// Execute возвращает вместимость, занятость, лист ожидания и неоплаченную сумму.
// Все значения читаются под одной блокировкой после перевода просроченных бронирований в expired.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailability: experience=%s", req.ExperienceID)

	exp, err := uc.repo.GetExperience(ctx, req.ExperienceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrExperienceNotFound) {
			uc.logger.Warn("GetAvailability: experience id=%s not found", req.ExperienceID)
			return nil, ErrExperienceNotFound
		}
		uc.logger.Error("GetAvailability: failed to get experience id=%s: %v", req.ExperienceID, err)
		return nil, fmt.Errorf("%w: failed to get experience: %v", ErrInternal, err)
	}

	resp := &Response{
		ExperienceID:  exp.ID(),
		Kind:          string(exp.Kind()),
		Date:          exp.Date(),
		RequiresGuide: exp.RequiresGuide(),
	}

	err = uc.locks.Do(ctx, exp.ID(), func(ctx context.Context) error {
		// 1. Просроченные бронирования освобождают места
		if _, err := uc.expirer.ExpireWithinLock(ctx, exp); err != nil {
			uc.logger.Error("GetAvailability: expiry failed for experience id=%s: %v", exp.ID(), err)
			return fmt.Errorf("%w: expiry failed: %v", ErrInternal, err)
		}

		// 2. Вместимость
		capacity, err := exp.MaxCapacity()
		if err != nil {
			if errors.Is(err, domain.ErrMissingActivities) {
				uc.logger.Warn("GetAvailability: experience id=%s has no activities", exp.ID())
				return ErrMissingActivities
			}
			return fmt.Errorf("%w: max capacity: %v", ErrInternal, err)
		}
		available, err := exp.AvailableSlots()
		if err != nil {
			return fmt.Errorf("%w: available slots: %v", ErrInternal, err)
		}

		// 3. Неоплаченная сумма без повторной проверки сроков
		balance := exp.PendingBalance()

		resp.MaxCapacity = capacity
		resp.OccupiedCapacity = exp.OccupiedCapacity()
		resp.AvailableSlots = available
		resp.MaxBookableParty = maxBookableParty(available)
		resp.WaitlistLength = len(exp.Requests())
		resp.OutstandingBalance = balance

		// 4. Гид экскурсии
		if excursion, ok := exp.(*domain.GuidedExcursion); ok && excursion.Guide() != nil {
			g := excursion.Guide()
			resp.Guide = &GuideInfo{
				Name:     g.Name(),
				Surname:  g.Surname(),
				Language: g.Language(),
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GetAvailability: experience id=%s available=%d/%d, waitlist=%d",
		exp.ID(), resp.AvailableSlots, resp.MaxCapacity, resp.WaitlistLength)
	return resp, nil
}
