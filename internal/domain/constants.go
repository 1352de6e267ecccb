package domain

// Payment deadline rules, in calendar days
const (
	PaymentWindowDays = 7 // days after the reservation is made
	DeadlineLeadDays  = 1 // days before the experience date
)

// Time format constants
const (
	DateFormat     = "2006-01-02" // YYYY-MM-DD
	DateTimeFormat = "2006-01-02T15:04:05Z07:00"
)

// Kind identifies a concrete experience variant
type Kind string

const (
	// KindBase is the abstract experience, never constructible
	KindBase             Kind = "experience"
	KindGuidedExcursion  Kind = "guided_excursion"
	KindAdventurePackage Kind = "adventure_package"
)
