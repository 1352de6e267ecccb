package domain

import "errors"

var (
	// ErrDuplicateEntity is returned when a reservation, request or activity is already registered
	ErrDuplicateEntity = errors.New("domain: entity already registered")

	// ErrNotFound is returned when removing an entity that is not registered
	ErrNotFound = errors.New("domain: entity not found")

	// ErrCapacityExceeded is returned when a party is larger than the experience maximum capacity
	ErrCapacityExceeded = errors.New("domain: party size exceeds maximum capacity")

	// ErrNoGuideAssigned is returned when a guided excursion is checked without a guide
	ErrNoGuideAssigned = errors.New("domain: no guide assigned to the excursion")

	// ErrMissingActivities is returned when capacity or duration is requested on an empty package
	ErrMissingActivities = errors.New("domain: no activities assigned to the package")

	// ErrInvalidBaseConstruction is returned when the abstract experience kind is instantiated
	ErrInvalidBaseConstruction = errors.New("domain: experience kind cannot be instantiated")

	// ErrInvalidTransition is returned when a reservation cannot move to the requested state
	ErrInvalidTransition = errors.New("domain: invalid reservation state transition")

	// ErrInvalidPartySize is returned when a party size is not positive
	ErrInvalidPartySize = errors.New("domain: party size must be positive")
)
