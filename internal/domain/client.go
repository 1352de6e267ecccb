package domain

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Client is a customer holding reservations.
// The reservation list is an index only; experiences own reservation existence.
type Client struct {
	id      string
	name    string
	surname string
	contact string

	mu           sync.RWMutex
	reservations []*Reservation
}

// NewClient creates a client with a generated identifier
func NewClient(name, surname, contact string) *Client {
	return &Client{
		id:           uuid.NewString(),
		name:         name,
		surname:      surname,
		contact:      contact,
		reservations: make([]*Reservation, 0),
	}
}

// ID returns the client identifier
func (c *Client) ID() string { return c.id }

// Name returns the client first name
func (c *Client) Name() string { return c.name }

// Surname returns the client surname
func (c *Client) Surname() string { return c.surname }

// Contact returns the client contact (email or phone)
func (c *Client) Contact() string { return c.contact }

// AddReservation indexes a reservation for the client
func (c *Client) AddReservation(r *Reservation) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.indexOf(r) != -1 {
		return fmt.Errorf("%w: reservation id=%s for client id=%s", ErrDuplicateEntity, r.ID(), c.id)
	}
	c.reservations = append(c.reservations, r)
	return nil
}

// RemoveReservation drops a reservation from the client index
func (c *Client) RemoveReservation(r *Reservation) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(r)
	if idx == -1 {
		return fmt.Errorf("%w: reservation %s for client id=%s", ErrNotFound, reservationRef(r), c.id)
	}
	c.reservations = append(c.reservations[:idx], c.reservations[idx+1:]...)
	return nil
}

// HasReservation returns true if the reservation is indexed for the client
func (c *Client) HasReservation(r *Reservation) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.indexOf(r) != -1
}

// Reservations returns a copy of the client's reservations in insertion order
func (c *Client) Reservations() []*Reservation {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*Reservation, len(c.reservations))
	copy(out, c.reservations)
	return out
}

func (c *Client) indexOf(r *Reservation) int {
	for i, existing := range c.reservations {
		if existing == r {
			return i
		}
	}
	return -1
}
