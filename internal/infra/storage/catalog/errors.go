package catalog

import "errors"

var (
	// ErrExperienceNotFound возвращается, когда предложение не найдено
	ErrExperienceNotFound = errors.New("catalog.repository: experience not found")

	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("catalog.repository: client not found")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("catalog.repository: reservation not found")

	// ErrRequestNotFound возвращается, когда заявка в листе ожидания не найдена
	ErrRequestNotFound = errors.New("catalog.repository: waitlist request not found")

	// ErrAlreadyExists возвращается при повторной регистрации сущности с тем же ID
	ErrAlreadyExists = errors.New("catalog.repository: entity already exists")
)
