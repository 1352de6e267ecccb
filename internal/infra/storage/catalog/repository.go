package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/m04kA/SMC-ExperienceService/internal/domain"
)

// WaitlistEntry заявка из листа ожидания вместе с предложением, к которому она относится
type WaitlistEntry struct {
	ExperienceID string
	Request      *domain.WaitlistRequest
}

// Repository реестр предложений, клиентов и индексы бронирований в памяти процесса.
// Репозиторий хранит только ссылки: состояние бронирований меняется доменом
// под блокировкой предложения.
type Repository struct {
	mu           sync.RWMutex
	experiences  map[string]domain.Experience
	clients      map[string]*domain.Client
	reservations map[string]*domain.Reservation
	requests     map[string]WaitlistEntry
}

// NewRepository создает пустой реестр
func NewRepository() *Repository {
	return &Repository{
		experiences:  make(map[string]domain.Experience),
		clients:      make(map[string]*domain.Client),
		reservations: make(map[string]*domain.Reservation),
		requests:     make(map[string]WaitlistEntry),
	}
}

// AddExperience регистрирует предложение
func (r *Repository) AddExperience(ctx context.Context, exp domain.Experience) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.experiences[exp.ID()]; ok {
		return fmt.Errorf("%w: experience id=%s", ErrAlreadyExists, exp.ID())
	}
	r.experiences[exp.ID()] = exp
	return nil
}

// GetExperience возвращает предложение по ID
func (r *Repository) GetExperience(ctx context.Context, id string) (domain.Experience, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exp, ok := r.experiences[id]
	if !ok {
		return nil, fmt.Errorf("%w: id=%s", ErrExperienceNotFound, id)
	}
	return exp, nil
}

// ListExperiences возвращает все предложения, отсортированные по ID
func (r *Repository) ListExperiences(ctx context.Context) ([]domain.Experience, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]domain.Experience, 0, len(r.experiences))
	for _, exp := range r.experiences {
		list = append(list, exp)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID() < list[j].ID()
	})
	return list, nil
}

// AddClient регистрирует клиента
func (r *Repository) AddClient(ctx context.Context, client *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[client.ID()]; ok {
		return fmt.Errorf("%w: client id=%s", ErrAlreadyExists, client.ID())
	}
	r.clients[client.ID()] = client
	return nil
}

// GetClient возвращает клиента по ID
func (r *Repository) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.clients[id]
	if !ok {
		return nil, fmt.Errorf("%w: id=%s", ErrClientNotFound, id)
	}
	return client, nil
}

// SaveReservation добавляет бронирование в индекс по ID.
// Повторное сохранение того же бронирования ничего не меняет.
func (r *Repository) SaveReservation(ctx context.Context, reservation *domain.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.reservations[reservation.ID()]; ok && existing != reservation {
		return fmt.Errorf("%w: reservation id=%s", ErrAlreadyExists, reservation.ID())
	}
	r.reservations[reservation.ID()] = reservation
	return nil
}

// FindReservation возвращает бронирование по ID
func (r *Repository) FindReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reservation, ok := r.reservations[id]
	if !ok {
		return nil, fmt.Errorf("%w: id=%s", ErrReservationNotFound, id)
	}
	return reservation, nil
}

// SaveRequest добавляет заявку листа ожидания в индекс
func (r *Repository) SaveRequest(ctx context.Context, experienceID string, req *domain.WaitlistRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.requests[req.ID()]; ok {
		return fmt.Errorf("%w: waitlist request id=%s", ErrAlreadyExists, req.ID())
	}
	r.requests[req.ID()] = WaitlistEntry{ExperienceID: experienceID, Request: req}
	return nil
}

// FindRequest возвращает заявку листа ожидания по ID
func (r *Repository) FindRequest(ctx context.Context, id string) (WaitlistEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.requests[id]
	if !ok {
		return WaitlistEntry{}, fmt.Errorf("%w: id=%s", ErrRequestNotFound, id)
	}
	return entry, nil
}

// DeleteRequest убирает заявку из индекса (после продвижения или отзыва)
func (r *Repository) DeleteRequest(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.requests[id]; !ok {
		return fmt.Errorf("%w: id=%s", ErrRequestNotFound, id)
	}
	delete(r.requests, id)
	return nil
}
