package get_availability

import "errors"

var (
	// ErrExperienceNotFound возвращается, когда предложение не найдено
	ErrExperienceNotFound = errors.New("get_availability: experience not found")

	// ErrMissingActivities возвращается, когда в пакете нет активностей и вместимость не определена
	ErrMissingActivities = errors.New("get_availability: package has no activities")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
