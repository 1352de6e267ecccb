package create_reservation

import "errors"

var (
	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("create_reservation: client not found")

	// ErrExperienceNotFound возвращается, когда предложение не найдено
	ErrExperienceNotFound = errors.New("create_reservation: experience not found")

	// ErrNoAvailability возвращается, когда свободных мест недостаточно и клиент не встал в лист ожидания
	ErrNoAvailability = errors.New("create_reservation: not enough available slots")

	// ErrCapacityExceeded возвращается, когда группа больше максимальной вместимости предложения
	ErrCapacityExceeded = errors.New("create_reservation: party size exceeds maximum capacity")

	// ErrNoGuideAssigned возвращается, когда у экскурсии нет гида
	ErrNoGuideAssigned = errors.New("create_reservation: no guide assigned to the excursion")

	// ErrMissingActivities возвращается, когда в пакете нет активностей
	ErrMissingActivities = errors.New("create_reservation: package has no activities")

	// ErrPartyTooLarge возвращается, когда группа превышает ограничение сервиса max_party_size
	ErrPartyTooLarge = errors.New("create_reservation: party size exceeds booking limit")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
