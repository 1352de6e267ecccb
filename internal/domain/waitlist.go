package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// WaitlistRequest represents a standing request for capacity on an experience
type WaitlistRequest struct {
	id        string
	enteredAt time.Time
	client    *Client
	partySize int
}

// NewWaitlistRequest creates a waitlist request entered at the given instant
func NewWaitlistRequest(enteredAt time.Time, client *Client, partySize int) *WaitlistRequest {
	return &WaitlistRequest{
		id:        uuid.NewString(),
		enteredAt: enteredAt,
		client:    client,
		partySize: partySize,
	}
}

// ID returns the request identifier
func (w *WaitlistRequest) ID() string { return w.id }

// EnteredAt returns when the request joined the list
func (w *WaitlistRequest) EnteredAt() time.Time { return w.enteredAt }

// Client returns the requesting client
func (w *WaitlistRequest) Client() *Client { return w.client }

// PartySize returns the requested party size
func (w *WaitlistRequest) PartySize() int { return w.partySize }

// AddRequest registers a waitlist request with the experience
func (o *offering) AddRequest(req *WaitlistRequest) error {
	if o.indexOfRequest(req) != -1 {
		return fmt.Errorf("%w: waitlist request id=%s in experience id=%s", ErrDuplicateEntity, req.ID(), o.id)
	}
	o.requests = append(o.requests, req)
	return nil
}

// RemoveRequest deregisters a waitlist request from the experience
func (o *offering) RemoveRequest(req *WaitlistRequest) error {
	idx := o.indexOfRequest(req)
	if idx == -1 {
		return fmt.Errorf("%w: waitlist request in experience id=%s", ErrNotFound, o.id)
	}
	o.requests = append(o.requests[:idx], o.requests[idx+1:]...)
	return nil
}

// Requests returns a copy of the waitlist in insertion order
func (o *offering) Requests() []*WaitlistRequest {
	out := make([]*WaitlistRequest, len(o.requests))
	copy(out, o.requests)
	return out
}

func (o *offering) indexOfRequest(req *WaitlistRequest) int {
	for i, existing := range o.requests {
		if existing == req {
			return i
		}
	}
	return -1
}

// NextCandidate picks the waitlist request to promote into a vacancy of freedPartySize.
//
// Requests larger than the vacancy are discarded. The survivors are stable-sorted by
// party size and then stable-sorted again by entry time, so entry time decides and
// party size only breaks ties between requests entered at the same instant.
// Returns nil when nothing fits.
func (o *offering) NextCandidate(freedPartySize int) *WaitlistRequest {
	candidates := make([]*WaitlistRequest, 0, len(o.requests))
	for _, req := range o.requests {
		if req.PartySize() <= freedPartySize {
			candidates = append(candidates, req)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].PartySize() < candidates[j].PartySize()
	})
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].EnteredAt().Before(candidates[j].EnteredAt())
	})

	return candidates[0]
}
