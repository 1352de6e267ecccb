package get_availability

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// maxBookableParty возвращает наибольшую группу, для которой проверка доступности пройдет.
// Проверка строгая (available > partySize), поэтому это available - 1.
func maxBookableParty(available int) int {
	if available <= 1 {
		return 0
	}
	return available - 1
}
