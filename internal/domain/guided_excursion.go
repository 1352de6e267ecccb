package domain

import (
	"fmt"
	"time"
)

// ExcursionParams holds the attributes of a guided excursion
type ExcursionParams struct {
	Params
	Duration    time.Duration
	MaxCapacity int
	Guide       *Guide
}

// GuidedExcursion is an experience led by a guide with a fixed duration and capacity
type GuidedExcursion struct {
	offering

	duration    time.Duration
	maxCapacity int
	guide       *Guide
}

// NewGuidedExcursion creates a guided excursion; the guide may be assigned later
func NewGuidedExcursion(p ExcursionParams, opts ...Option) *GuidedExcursion {
	e := &GuidedExcursion{
		duration:    p.Duration,
		maxCapacity: p.MaxCapacity,
		guide:       p.Guide,
	}
	e.offering = newOffering(e, p.Params, opts...)
	return e
}

func (e *GuidedExcursion) Kind() Kind { return KindGuidedExcursion }

func (e *GuidedExcursion) Duration() (time.Duration, error) { return e.duration, nil }

func (e *GuidedExcursion) MaxCapacity() (int, error) { return e.maxCapacity, nil }

func (e *GuidedExcursion) RequiresGuide() bool { return true }

// Guide returns the assigned guide or nil
func (e *GuidedExcursion) Guide() *Guide { return e.guide }

// AssignGuide sets the guide leading the excursion, replacing any previous one
func (e *GuidedExcursion) AssignGuide(g *Guide) {
	e.guide = g
}

// RemoveGuide unassigns the guide; new bookings are refused until another is assigned
func (e *GuidedExcursion) RemoveGuide() {
	e.guide = nil
}

// ValidateAvailability reports whether a party of partySize can be booked now
func (e *GuidedExcursion) ValidateAvailability(partySize int) (bool, error) {
	if e.guide == nil {
		return false, fmt.Errorf("%w: excursion id=%s", ErrNoGuideAssigned, e.id)
	}
	return e.checkCapacity(partySize)
}
