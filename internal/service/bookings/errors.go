package bookings

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("bookings: reservation not found")

	// ErrExperienceNotFound возвращается, когда предложение не найдено
	ErrExperienceNotFound = errors.New("bookings: experience not found")

	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("bookings: client not found")

	// ErrRequestNotFound возвращается, когда заявка в листе ожидания не найдена или уже продвинута
	ErrRequestNotFound = errors.New("bookings: waitlist request not found")

	// ErrCannotConfirm возвращается, когда бронирование не в статусе pending
	ErrCannotConfirm = errors.New("bookings: reservation cannot be confirmed")

	// ErrCannotCancel возвращается, когда бронирование уже отменено или просрочено
	ErrCannotCancel = errors.New("bookings: reservation cannot be cancelled")

	// ErrPaymentDeadlinePassed возвращается при подтверждении бронирования с истекшим сроком оплаты
	ErrPaymentDeadlinePassed = errors.New("bookings: payment deadline has passed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
