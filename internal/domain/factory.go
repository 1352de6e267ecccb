package domain

import (
	"fmt"
	"time"
)

// ExperienceSpec describes an experience of any kind for NewExperience
type ExperienceSpec struct {
	Kind Kind
	Params

	// guided excursion only
	Duration    time.Duration
	MaxCapacity int
	Guide       *Guide

	// adventure package only
	Activities []*Activity
}

// NewExperience builds the concrete variant named by spec.Kind.
// The base kind and unknown kinds are rejected with ErrInvalidBaseConstruction.
func NewExperience(spec ExperienceSpec, opts ...Option) (Experience, error) {
	switch spec.Kind {
	case KindGuidedExcursion:
		return NewGuidedExcursion(ExcursionParams{
			Params:      spec.Params,
			Duration:    spec.Duration,
			MaxCapacity: spec.MaxCapacity,
			Guide:       spec.Guide,
		}, opts...), nil
	case KindAdventurePackage:
		return NewAdventurePackage(PackageParams{
			Params:     spec.Params,
			Activities: spec.Activities,
		}, opts...), nil
	default:
		return nil, fmt.Errorf("%w: kind %q", ErrInvalidBaseConstruction, spec.Kind)
	}
}
