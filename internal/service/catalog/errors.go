package catalog

import "errors"

var (
	// ErrExperienceNotFound возвращается, когда предложение не найдено
	ErrExperienceNotFound = errors.New("catalog: experience not found")

	// ErrExperienceExists возвращается при повторной регистрации предложения с тем же ID
	ErrExperienceExists = errors.New("catalog: experience already exists")

	// ErrUnsupportedKind возвращается, когда запрошенная операция не поддерживается видом предложения
	ErrUnsupportedKind = errors.New("catalog: operation not supported by experience kind")

	// ErrActivityExists возвращается при повторном добавлении активности
	ErrActivityExists = errors.New("catalog: activity already in package")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("catalog: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog: internal error")
)
