package domain

import "time"

// Activity is a single component of an adventure package
type Activity struct {
	name        string
	description string
	duration    time.Duration
	maxCapacity int
}

// NewActivity creates an activity with its own capacity cap
func NewActivity(name, description string, duration time.Duration, maxCapacity int) *Activity {
	return &Activity{
		name:        name,
		description: description,
		duration:    duration,
		maxCapacity: maxCapacity,
	}
}

func (a *Activity) Name() string            { return a.name }
func (a *Activity) Description() string     { return a.description }
func (a *Activity) Duration() time.Duration { return a.duration }
func (a *Activity) MaxCapacity() int        { return a.maxCapacity }
