package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusExpired   ReservationStatus = "expired"
)

// Reservation represents a claim on party-sized capacity of an experience.
// Amount and payment deadline are computed once at creation and never change.
type Reservation struct {
	id              string
	experience      Experience
	client          *Client
	createdAt       time.Time
	partySize       int
	status          ReservationStatus
	totalAmount     float64
	paymentDeadline time.Time
}

// Promotion describes a waitlist request turned into a reservation after a slot was released
type Promotion struct {
	Vacated  *Reservation
	Request  *WaitlistRequest
	Promoted *Reservation
}

// NewReservation creates a pending reservation priced and dated by the experience.
// The reservation is not registered anywhere; the caller adds it to the experience and the client.
func NewReservation(exp Experience, client *Client, partySize int) (*Reservation, error) {
	if exp == nil {
		return nil, fmt.Errorf("%w: reservation requires an experience", ErrInvalidBaseConstruction)
	}
	if partySize <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPartySize, partySize)
	}
	return newReservation(exp, client, partySize), nil
}

func newReservation(exp Experience, client *Client, partySize int) *Reservation {
	createdAt := exp.base().now()
	return &Reservation{
		id:              uuid.NewString(),
		experience:      exp,
		client:          client,
		createdAt:       createdAt,
		partySize:       partySize,
		status:          StatusPending,
		totalAmount:     exp.ComputeTotalCost(partySize),
		paymentDeadline: PaymentDeadline(createdAt, exp.Date()),
	}
}

// PaymentDeadline returns the earlier of createdAt plus the payment window and
// the day before the experience. Both use calendar-day arithmetic.
func PaymentDeadline(createdAt, experienceDate time.Time) time.Time {
	byWindow := createdAt.AddDate(0, 0, PaymentWindowDays)
	byExperience := experienceDate.AddDate(0, 0, -DeadlineLeadDays)
	if !byWindow.After(byExperience) {
		return byWindow
	}
	return byExperience
}

// ID returns the reservation identifier
func (r *Reservation) ID() string { return r.id }

// Experience returns the booked experience
func (r *Reservation) Experience() Experience { return r.experience }

// Client returns the client holding the reservation
func (r *Reservation) Client() *Client { return r.client }

// CreatedAt returns when the reservation was made
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }

// PartySize returns the number of people in the reservation
func (r *Reservation) PartySize() int { return r.partySize }

// Status returns the current status
func (r *Reservation) Status() ReservationStatus { return r.status }

// TotalAmount returns the amount frozen at creation
func (r *Reservation) TotalAmount() float64 { return r.totalAmount }

// PaymentDeadline returns the deadline frozen at creation
func (r *Reservation) PaymentDeadline() time.Time { return r.paymentDeadline }

// IsActive returns true if the reservation occupies capacity
func (r *Reservation) IsActive() bool {
	return r.status == StatusPending || r.status == StatusConfirmed
}

// IsTerminal returns true if the reservation was cancelled or expired
func (r *Reservation) IsTerminal() bool {
	return r.status == StatusCancelled || r.status == StatusExpired
}

// CanBeConfirmed returns true if the reservation can be confirmed
func (r *Reservation) CanBeConfirmed() bool {
	return r.status == StatusPending
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.IsActive()
}

// Confirm moves a pending reservation to confirmed
func (r *Reservation) Confirm() error {
	if !r.CanBeConfirmed() {
		return fmt.Errorf("%w: cannot confirm reservation id=%s in status %s", ErrInvalidTransition, r.id, r.status)
	}
	r.status = StatusConfirmed
	return nil
}

// Cancel moves a pending or confirmed reservation to cancelled and releases its slots.
// The returned promotion is nil when no waitlist request fits the vacancy.
// On error the reservation keeps its status.
func (r *Reservation) Cancel() (*Promotion, error) {
	if !r.CanBeCancelled() {
		return nil, fmt.Errorf("%w: cannot cancel reservation id=%s in status %s", ErrInvalidTransition, r.id, r.status)
	}
	return r.leave(StatusCancelled)
}

// CheckExpiry expires a pending reservation whose payment deadline has passed and releases its slots.
// Reports whether the reservation expired.
func (r *Reservation) CheckExpiry() (bool, *Promotion, error) {
	if r.status != StatusPending || !r.experience.base().now().After(r.paymentDeadline) {
		return false, nil, nil
	}
	promotion, err := r.leave(StatusExpired)
	if err != nil {
		return false, nil, err
	}
	return true, promotion, nil
}

// leave moves the reservation to a terminal status once the release is known to succeed
func (r *Reservation) leave(status ReservationStatus) (*Promotion, error) {
	plan, err := r.experience.base().planRelease(r)
	if err != nil {
		return nil, err
	}
	r.status = status
	return plan.apply()
}

// releasePlan is a checked promotion waiting to be applied
type releasePlan struct {
	offering       *offering
	vacated        *Reservation
	candidate      *WaitlistRequest
	reservationIdx int
	requestIdx     int
}

// planRelease finds the waitlist candidate for the slots held by vacated and checks
// everything that can fail. A nil plan means nobody fits and the slots stay free.
func (o *offering) planRelease(vacated *Reservation) (*releasePlan, error) {
	candidate := o.NextCandidate(vacated.PartySize())
	if candidate == nil {
		return nil, nil
	}

	reservationIdx := o.indexOfReservation(vacated)
	if reservationIdx == -1 {
		return nil, fmt.Errorf("%w: released reservation id=%s is not registered in experience id=%s",
			ErrNotFound, vacated.ID(), o.id)
	}

	return &releasePlan{
		offering:       o,
		vacated:        vacated,
		candidate:      candidate,
		reservationIdx: reservationIdx,
		requestIdx:     o.indexOfRequest(candidate),
	}, nil
}

// apply hands the vacated slots to the candidate and syncs both clients
func (p *releasePlan) apply() (*Promotion, error) {
	if p == nil {
		return nil, nil
	}
	o := p.offering

	promoted := newReservation(o.self, p.candidate.Client(), p.candidate.PartySize())

	o.requests = append(o.requests[:p.requestIdx], o.requests[p.requestIdx+1:]...)
	o.reservations = append(o.reservations[:p.reservationIdx], o.reservations[p.reservationIdx+1:]...)
	o.reservations = append(o.reservations, promoted)

	if c := p.vacated.Client(); c != nil {
		if err := c.RemoveReservation(p.vacated); err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	if c := p.candidate.Client(); c != nil {
		if err := c.AddReservation(promoted); err != nil {
			return nil, err
		}
	}

	return &Promotion{
		Vacated:  p.vacated,
		Request:  p.candidate,
		Promoted: promoted,
	}, nil
}
