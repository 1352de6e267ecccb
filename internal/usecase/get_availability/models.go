package get_availability

import "time"

// Request модель запроса доступности предложения
type Request struct {
	ExperienceID string `validate:"required"`
}

// Response модель ответа с состоянием вместимости и листа ожидания
type Response struct {
	ExperienceID string
	Kind         string
	Date         time.Time

	MaxCapacity      int
	OccupiedCapacity int // сумма групп в pending и confirmed бронированиях
	AvailableSlots   int
	MaxBookableParty int // наибольшая группа, которую можно забронировать сейчас

	WaitlistLength     int
	OutstandingBalance float64 // сумма pending бронирований

	RequiresGuide bool
	Guide         *GuideInfo // nil, если гид не назначен или не нужен
}

// GuideInfo данные назначенного гида
type GuideInfo struct {
	Name     string
	Surname  string
	Language string
}
