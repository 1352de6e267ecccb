package domain

import (
	"fmt"
	"time"
)

// PackageParams holds the attributes of an adventure package
type PackageParams struct {
	Params
	Activities []*Activity
}

// AdventurePackage is an experience bundling several activities.
// Capacity is bounded by the smallest activity and duration is the sum of all of them.
type AdventurePackage struct {
	offering

	activities []*Activity
}

// NewAdventurePackage creates an adventure package with the given activities
func NewAdventurePackage(p PackageParams, opts ...Option) *AdventurePackage {
	activities := make([]*Activity, 0, len(p.Activities))
	activities = append(activities, p.Activities...)

	e := &AdventurePackage{activities: activities}
	e.offering = newOffering(e, p.Params, opts...)
	return e
}

func (e *AdventurePackage) Kind() Kind { return KindAdventurePackage }

func (e *AdventurePackage) RequiresGuide() bool { return false }

// Duration returns the total duration of all activities
func (e *AdventurePackage) Duration() (time.Duration, error) {
	if len(e.activities) == 0 {
		return 0, fmt.Errorf("%w: package id=%s", ErrMissingActivities, e.id)
	}
	var total time.Duration
	for _, a := range e.activities {
		total += a.Duration()
	}
	return total, nil
}

// MaxCapacity returns the smallest capacity among the activities
func (e *AdventurePackage) MaxCapacity() (int, error) {
	if len(e.activities) == 0 {
		return 0, fmt.Errorf("%w: package id=%s", ErrMissingActivities, e.id)
	}
	capacity := e.activities[0].MaxCapacity()
	for _, a := range e.activities[1:] {
		capacity = min(capacity, a.MaxCapacity())
	}
	return capacity, nil
}

// AddActivity appends an activity to the package
func (e *AdventurePackage) AddActivity(a *Activity) error {
	if e.indexOfActivity(a) != -1 {
		return fmt.Errorf("%w: activity %q in package id=%s", ErrDuplicateEntity, a.Name(), e.id)
	}
	e.activities = append(e.activities, a)
	return nil
}

// RemoveActivity drops an activity from the package
func (e *AdventurePackage) RemoveActivity(a *Activity) error {
	idx := e.indexOfActivity(a)
	if idx == -1 {
		return fmt.Errorf("%w: activity in package id=%s", ErrNotFound, e.id)
	}
	e.activities = append(e.activities[:idx], e.activities[idx+1:]...)
	return nil
}

// Activities returns a copy of the activities in insertion order
func (e *AdventurePackage) Activities() []*Activity {
	out := make([]*Activity, len(e.activities))
	copy(out, e.activities)
	return out
}

// ValidateAvailability reports whether a party of partySize can be booked now
func (e *AdventurePackage) ValidateAvailability(partySize int) (bool, error) {
	return e.checkCapacity(partySize)
}

func (e *AdventurePackage) indexOfActivity(a *Activity) int {
	for i, existing := range e.activities {
		if existing == a {
			return i
		}
	}
	return -1
}
