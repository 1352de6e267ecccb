package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-ExperienceService/internal/clock"
	"github.com/m04kA/SMC-ExperienceService/internal/config"
	"github.com/m04kA/SMC-ExperienceService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-ExperienceService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-ExperienceService/internal/service/catalog/models"
)

// Service сервис каталога: предложения, гиды, активности и клиенты
type Service struct {
	repo     Repository
	locks    LockManager
	clock    clock.Clock
	validate *validator.Validate
	logger   Logger
}

// NewService создает новый экземпляр сервиса каталога.
// clock передается во все создаваемые предложения.
func NewService(
	repo Repository,
	locks LockManager,
	clk clock.Clock,
	logger Logger,
) *Service {
	return &Service{
		repo:     repo,
		locks:    locks,
		clock:    clk,
		validate: validator.New(),
		logger:   logger,
	}
}

// Seed создает предложения из конфигурации.
// Возвращает количество зарегистрированных предложений.
func (s *Service) Seed(ctx context.Context, entries []config.ExperienceConfig) (int, error) {
	s.logger.Info("Seed: registering %d experiences", len(entries))

	for i, entry := range entries {
		spec, err := toExperienceSpec(entry)
		if err != nil {
			s.logger.Warn("Seed: entry #%d (%s): %v", i, entry.Name, err)
			return i, err
		}

		if _, err := s.AddExperience(ctx, spec); err != nil {
			return i, err
		}
	}

	s.logger.Info("Seed: successfully registered %d experiences", len(entries))
	return len(entries), nil
}

// AddExperience создает и регистрирует предложение
func (s *Service) AddExperience(ctx context.Context, spec domain.ExperienceSpec) (*models.ExperienceResponse, error) {
	exp, err := domain.NewExperience(spec, domain.WithClock(s.clock))
	if err != nil {
		s.logger.Warn("AddExperience: cannot build experience %q: %v", spec.Name, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.AddExperience(ctx, exp); err != nil {
		if errors.Is(err, catalogRepo.ErrAlreadyExists) {
			s.logger.Warn("AddExperience: experience id=%s already exists", exp.ID())
			return nil, ErrExperienceExists
		}
		s.logger.Error("AddExperience: repository error: %v", err)
		return nil, fmt.Errorf("%w: AddExperience - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddExperience: registered %s id=%s (%s)", exp.Kind(), exp.ID(), exp.Name())
	resp := models.FromDomainExperience(exp)
	return &resp, nil
}

// ListExperiences возвращает все предложения каталога
func (s *Service) ListExperiences(ctx context.Context) ([]models.ExperienceResponse, error) {
	experiences, err := s.repo.ListExperiences(ctx)
	if err != nil {
		s.logger.Error("ListExperiences: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListExperiences - repository error: %v", ErrInternal, err)
	}

	resp := make([]models.ExperienceResponse, 0, len(experiences))
	for _, exp := range experiences {
		err := s.locks.Do(ctx, exp.ID(), func(ctx context.Context) error {
			resp = append(resp, models.FromDomainExperience(exp))
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%w: ListExperiences - lock error: %v", ErrInternal, err)
		}
	}
	return resp, nil
}

// RegisterClient регистрирует нового клиента
func (s *Service) RegisterClient(ctx context.Context, req *models.RegisterClientRequest) (*models.ClientResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("RegisterClient: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	client := domain.NewClient(req.Name, req.Surname, req.Contact)
	if err := s.repo.AddClient(ctx, client); err != nil {
		s.logger.Error("RegisterClient: repository error: %v", err)
		return nil, fmt.Errorf("%w: RegisterClient - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RegisterClient: registered client id=%s", client.ID())
	return models.FromDomainClient(client), nil
}

// AssignGuide назначает гида экскурсии
func (s *Service) AssignGuide(ctx context.Context, experienceID string, req *models.GuideRequest) error {
	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("AssignGuide: validation failed: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.withExcursion(ctx, "AssignGuide", experienceID, func(e *domain.GuidedExcursion) error {
		e.AssignGuide(domain.NewGuide(req.Name, req.Surname, req.Language))
		s.logger.Info("AssignGuide: guide %s %s (%s) assigned to excursion id=%s",
			req.Name, req.Surname, req.Language, experienceID)
		return nil
	})
}

// RemoveGuide снимает гида с экскурсии, новые бронирования будут отклоняться
func (s *Service) RemoveGuide(ctx context.Context, experienceID string) error {
	return s.withExcursion(ctx, "RemoveGuide", experienceID, func(e *domain.GuidedExcursion) error {
		e.RemoveGuide()
		s.logger.Info("RemoveGuide: excursion id=%s has no guide", experienceID)
		return nil
	})
}

// AddActivity добавляет активность в приключенческий пакет
func (s *Service) AddActivity(ctx context.Context, experienceID string, req *models.ActivityRequest) error {
	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("AddActivity: validation failed: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	exp, err := s.getExperience(ctx, "AddActivity", experienceID)
	if err != nil {
		return err
	}
	pkg, ok := exp.(*domain.AdventurePackage)
	if !ok {
		s.logger.Warn("AddActivity: experience id=%s is %s, not a package", experienceID, exp.Kind())
		return ErrUnsupportedKind
	}

	return s.locks.Do(ctx, experienceID, func(ctx context.Context) error {
		activity := domain.NewActivity(req.Name, req.Description, req.Duration, req.MaxCapacity)
		if err := pkg.AddActivity(activity); err != nil {
			if errors.Is(err, domain.ErrDuplicateEntity) {
				return ErrActivityExists
			}
			return fmt.Errorf("%w: AddActivity - domain error: %v", ErrInternal, err)
		}
		s.logger.Info("AddActivity: activity %q added to package id=%s", req.Name, experienceID)
		return nil
	})
}

// Вспомогательные методы

func (s *Service) withExcursion(ctx context.Context, op, id string, fn func(e *domain.GuidedExcursion) error) error {
	exp, err := s.getExperience(ctx, op, id)
	if err != nil {
		return err
	}
	excursion, ok := exp.(*domain.GuidedExcursion)
	if !ok {
		s.logger.Warn("%s: experience id=%s is %s, not an excursion", op, id, exp.Kind())
		return ErrUnsupportedKind
	}

	return s.locks.Do(ctx, id, func(ctx context.Context) error {
		return fn(excursion)
	})
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

// toExperienceSpec конвертирует запись конфигурации в описание для доменной фабрики
func toExperienceSpec(entry config.ExperienceConfig) (domain.ExperienceSpec, error) {
	date, err := entry.ParseDate()
	if err != nil {
		return domain.ExperienceSpec{}, fmt.Errorf("%w: date %q: %v", ErrInvalidInput, entry.Date, err)
	}

	spec := domain.ExperienceSpec{
		Kind: domain.Kind(entry.Kind),
		Params: domain.Params{
			ID:                 entry.ID,
			Name:               entry.Name,
			Description:        entry.Description,
			Price:              entry.Price,
			DiscountThreshold:  entry.DiscountThreshold,
			DiscountPercentage: entry.DiscountPercentage,
			Date:               date,
		},
		Duration:    entry.Duration(),
		MaxCapacity: entry.MaxCapacity,
	}

	if entry.Guide != nil {
		spec.Guide = domain.NewGuide(entry.Guide.Name, entry.Guide.Surname, entry.Guide.Language)
	}
	for _, a := range entry.Activities {
		spec.Activities = append(spec.Activities, domain.NewActivity(a.Name, a.Description, a.Duration(), a.MaxCapacity))
	}

	return spec, nil
}
