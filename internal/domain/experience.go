package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ExperienceService/internal/clock"
)

// Experience is the capability set shared by every bookable offering.
// The interface is sealed: only GuidedExcursion and AdventurePackage implement it.
type Experience interface {
	ID() string
	Kind() Kind
	Name() string
	Description() string
	Price() float64
	DiscountThreshold() int
	DiscountPercentage() float64
	Date() time.Time

	// Duration and MaxCapacity are derived for packages and may fail with ErrMissingActivities
	Duration() (time.Duration, error)
	MaxCapacity() (int, error)
	RequiresGuide() bool
	ValidateAvailability(partySize int) (bool, error)

	ComputeTotalCost(partySize int) float64
	AvailableSlots() (int, error)
	OccupiedCapacity() int
	OutstandingBalance() (float64, error)
	PendingBalance() float64
	ExpireStale() ([]*Promotion, error)

	AddReservation(r *Reservation) error
	RemoveReservation(r *Reservation) error
	Reservations() []*Reservation

	AddRequest(req *WaitlistRequest) error
	RemoveRequest(req *WaitlistRequest) error
	Requests() []*WaitlistRequest
	NextCandidate(freedPartySize int) *WaitlistRequest

	base() *offering
}

// Params holds the attributes common to every experience
type Params struct {
	ID                 string
	Name               string
	Description        string
	Price              float64
	DiscountThreshold  int     // minimum party size for the discount
	DiscountPercentage float64 // 0-100
	Date               time.Time
}

// Option configures an experience at construction time
type Option func(*offering)

// WithClock overrides the clock used for reservation timestamps and expiry checks
func WithClock(c clock.Clock) Option {
	return func(o *offering) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithID sets the experience identifier instead of generating one
func WithID(id string) Option {
	return func(o *offering) {
		if id != "" {
			o.id = id
		}
	}
}

// offering is the shared state behind every experience variant:
// pricing policy, capacity ledger and waitlist queue.
type offering struct {
	id                 string
	name               string
	description        string
	price              float64
	discountThreshold  int
	discountPercentage float64
	date               time.Time

	clock        clock.Clock
	reservations []*Reservation
	requests     []*WaitlistRequest

	// self is the concrete variant, used for derived capacity and as the reservation owner
	self Experience
}

func newOffering(self Experience, p Params, opts ...Option) offering {
	id := p.ID
	if id == "" {
		id = uuid.NewString()
	}

	o := offering{
		id:                 id,
		name:               p.Name,
		description:        p.Description,
		price:              p.Price,
		discountThreshold:  p.DiscountThreshold,
		discountPercentage: p.DiscountPercentage,
		date:               p.Date,
		clock:              clock.NewSystem(),
		reservations:       make([]*Reservation, 0),
		requests:           make([]*WaitlistRequest, 0),
		self:               self,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o *offering) base() *offering { return o }

// ID returns the experience identifier
func (o *offering) ID() string { return o.id }

// Name returns the experience name
func (o *offering) Name() string { return o.name }

// Description returns the experience description
func (o *offering) Description() string { return o.description }

// Price returns the price per person
func (o *offering) Price() float64 { return o.price }

// DiscountThreshold returns the minimum party size that gets the volume discount
func (o *offering) DiscountThreshold() int { return o.discountThreshold }

// DiscountPercentage returns the volume discount percentage
func (o *offering) DiscountPercentage() float64 { return o.discountPercentage }

// Date returns the day the experience takes place
func (o *offering) Date() time.Time { return o.date }

// now returns the current instant according to the experience clock
func (o *offering) now() time.Time { return o.clock.Now() }

// ComputeTotalCost returns price * partySize, minus the discount when the party reaches the threshold
func (o *offering) ComputeTotalCost(partySize int) float64 {
	total := o.price * float64(partySize)
	if partySize >= o.discountThreshold {
		total -= total * o.discountPercentage / 100
	}
	return total
}

// OccupiedCapacity returns the sum of party sizes of pending and confirmed reservations
func (o *offering) OccupiedCapacity() int {
	occupied := 0
	for _, r := range o.reservations {
		if r.IsActive() {
			occupied += r.PartySize()
		}
	}
	return occupied
}

// AvailableSlots returns max capacity minus occupied capacity, recomputed on every call
func (o *offering) AvailableSlots() (int, error) {
	capacity, err := o.self.MaxCapacity()
	if err != nil {
		return 0, err
	}
	if len(o.reservations) == 0 {
		return capacity, nil
	}
	return capacity - o.OccupiedCapacity(), nil
}

// checkCapacity rejects parties above max capacity and reports whether enough slots remain.
// The comparison is strict: a party exactly filling the remaining slots is not available.
func (o *offering) checkCapacity(partySize int) (bool, error) {
	capacity, err := o.self.MaxCapacity()
	if err != nil {
		return false, err
	}
	if partySize > capacity {
		return false, fmt.Errorf("%w: party size %d, max capacity %d", ErrCapacityExceeded, partySize, capacity)
	}

	available, err := o.AvailableSlots()
	if err != nil {
		return false, err
	}
	return available > partySize, nil
}

// AddReservation registers a reservation with the experience
func (o *offering) AddReservation(r *Reservation) error {
	if o.indexOfReservation(r) != -1 {
		return fmt.Errorf("%w: reservation id=%s in experience id=%s", ErrDuplicateEntity, r.ID(), o.id)
	}
	o.reservations = append(o.reservations, r)
	return nil
}

// RemoveReservation deregisters a reservation from the experience
func (o *offering) RemoveReservation(r *Reservation) error {
	idx := o.indexOfReservation(r)
	if idx == -1 {
		return fmt.Errorf("%w: reservation %s in experience id=%s", ErrNotFound, reservationRef(r), o.id)
	}
	o.reservations = append(o.reservations[:idx], o.reservations[idx+1:]...)
	return nil
}

// Reservations returns a copy of the registered reservations in insertion order
func (o *offering) Reservations() []*Reservation {
	out := make([]*Reservation, len(o.reservations))
	copy(out, o.reservations)
	return out
}

func (o *offering) indexOfReservation(r *Reservation) int {
	for i, existing := range o.reservations {
		if existing == r {
			return i
		}
	}
	return -1
}

// OutstandingBalance expires stale reservations first, then sums the amounts still pending.
// Promotions triggered here are not reported; callers that track them run ExpireStale
// themselves and then read PendingBalance.
func (o *offering) OutstandingBalance() (float64, error) {
	if _, err := o.ExpireStale(); err != nil {
		return 0, err
	}
	return o.PendingBalance(), nil
}

// PendingBalance sums the amounts of pending reservations without checking deadlines
func (o *offering) PendingBalance() float64 {
	var total float64
	for _, r := range o.reservations {
		if r.Status() == StatusPending {
			total += r.TotalAmount()
		}
	}
	return total
}

// ExpireStale runs the expiry check on every registered reservation.
// Returns the promotions triggered by the expirations.
func (o *offering) ExpireStale() ([]*Promotion, error) {
	promotions := make([]*Promotion, 0)
	for _, r := range o.Reservations() {
		_, promotion, err := r.CheckExpiry()
		if err != nil {
			return promotions, err
		}
		if promotion != nil {
			promotions = append(promotions, promotion)
		}
	}
	return promotions, nil
}

func reservationRef(r *Reservation) string {
	if r == nil {
		return "<nil>"
	}
	return "id=" + r.ID()
}
