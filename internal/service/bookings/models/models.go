package models

import (
	"time"

	"github.com/m04kA/SMC-ExperienceService/internal/domain"
)

// Response модели

// ReservationResponse данные бронирования
type ReservationResponse struct {
	ID              string    `json:"id"`
	ExperienceID    string    `json:"experienceId"`
	ExperienceKind  string    `json:"experienceKind"`
	ClientID        string    `json:"clientId,omitempty"`
	PartySize       int       `json:"partySize"`
	Status          string    `json:"status"`
	TotalAmount     float64   `json:"totalAmount"`
	CreatedAt       time.Time `json:"createdAt"`
	PaymentDeadline time.Time `json:"paymentDeadline"`
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// PromotionResponse заявка из листа ожидания, превращенная в бронирование
type PromotionResponse struct {
	VacatedReservationID string              `json:"vacatedReservationId"`
	RequestID            string              `json:"requestId"`
	Promoted             ReservationResponse `json:"promoted"`
}

// CancelResponse результат отмены бронирования
type CancelResponse struct {
	Reservation ReservationResponse `json:"reservation"`
	Promotion   *PromotionResponse  `json:"promotion,omitempty"` // nil, если никто из листа ожидания не подошел
}

// ExpiryResponse результат проверки срока оплаты
type ExpiryResponse struct {
	Expired     bool                `json:"expired"`
	Reservation ReservationResponse `json:"reservation"`
	Promotion   *PromotionResponse  `json:"promotion,omitempty"`
}

// BalanceResponse сумма неоплаченных бронирований предложения
type BalanceResponse struct {
	ExperienceID string  `json:"experienceId"`
	Balance      float64 `json:"balance"`
}

// SweepResult итог проверки просроченных бронирований
type SweepResult struct {
	Experiences int `json:"experiences"` // сколько предложений проверено
	Expired     int `json:"expired"`
	Promoted    int `json:"promoted"`
	Failed      int `json:"failed"` // предложения, на которых проверка завершилась ошибкой
}

// Add суммирует результаты
func (r *SweepResult) Add(other SweepResult) {
	r.Experiences += other.Experiences
	r.Expired += other.Expired
	r.Promoted += other.Promoted
	r.Failed += other.Failed
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO.
// Вызывающий должен удерживать блокировку предложения.
func FromDomainReservation(r *domain.Reservation) ReservationResponse {
	resp := ReservationResponse{
		ID:              r.ID(),
		ExperienceID:    r.Experience().ID(),
		ExperienceKind:  string(r.Experience().Kind()),
		PartySize:       r.PartySize(),
		Status:          string(r.Status()),
		TotalAmount:     r.TotalAmount(),
		CreatedAt:       r.CreatedAt(),
		PaymentDeadline: r.PaymentDeadline(),
	}
	if c := r.Client(); c != nil {
		resp.ClientID = c.ID()
	}
	return resp
}

// FromDomainPromotion конвертирует продвижение из листа ожидания в DTO
func FromDomainPromotion(p *domain.Promotion) *PromotionResponse {
	if p == nil {
		return nil
	}
	return &PromotionResponse{
		VacatedReservationID: p.Vacated.ID(),
		RequestID:            p.Request.ID(),
		Promoted:             FromDomainReservation(p.Promoted),
	}
}
