package create_reservation

import "time"

// Request модель запроса на бронирование
type Request struct {
	ClientID     string `validate:"required"` // ID клиента
	ExperienceID string `validate:"required"` // ID предложения
	PartySize    int    `validate:"min=1"`    // Количество человек
	JoinWaitlist bool   // Встать в лист ожидания, если мест нет
}

// Response модель ответа: либо созданное бронирование, либо заявка в листе ожидания
type Response struct {
	Waitlisted bool // true, если создана заявка в листе ожидания вместо бронирования

	// Бронирование (Waitlisted = false)
	ReservationID   string
	Status          string
	TotalAmount     float64
	CreatedAt       time.Time
	PaymentDeadline time.Time

	// Заявка в листе ожидания (Waitlisted = true)
	RequestID string
	EnteredAt time.Time
	Position  int // позиция в порядке добавления, начиная с 1

	ExperienceID string
	ClientID     string
	PartySize    int
}
