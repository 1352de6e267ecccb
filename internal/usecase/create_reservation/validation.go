package create_reservation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, maxPartySize int) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Если maxPartySize = 0, ограничения нет
	if maxPartySize > 0 && req.PartySize > maxPartySize {
		return fmt.Errorf("%w: %d > %d", ErrPartyTooLarge, req.PartySize, maxPartySize)
	}

	return nil
}
