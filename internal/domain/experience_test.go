package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ExperienceService/internal/clock"
	"github.com/m04kA/SMC-ExperienceService/internal/domain"
)

var baseTime = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newExcursion(t *testing.T, clk clock.Clock, capacity int) *domain.GuidedExcursion {
	t.Helper()
	return domain.NewGuidedExcursion(domain.ExcursionParams{
		Params: domain.Params{
			Name:               "Old town walk",
			Price:              100,
			DiscountThreshold:  5,
			DiscountPercentage: 10,
			Date:               baseTime.AddDate(0, 0, 30),
		},
		Duration:    3 * time.Hour,
		MaxCapacity: capacity,
		Guide:       domain.NewGuide("Anna", "Ivanova", "en"),
	}, domain.WithClock(clk))
}

func book(t *testing.T, exp domain.Experience, client *domain.Client, partySize int) *domain.Reservation {
	t.Helper()
	r, err := domain.NewReservation(exp, client, partySize)
	require.NoError(t, err)
	require.NoError(t, exp.AddReservation(r))
	if client != nil {
		require.NoError(t, client.AddReservation(r))
	}
	return r
}

func TestComputeTotalCost(t *testing.T) {
	exp := newExcursion(t, clock.NewFixed(baseTime), 10)

	tests := []struct {
		name      string
		partySize int
		want      float64
	}{
		{name: "below threshold", partySize: 4, want: 400},
		{name: "at threshold", partySize: 5, want: 450},
		{name: "above threshold", partySize: 8, want: 720},
		{name: "single person", partySize: 1, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, exp.ComputeTotalCost(tt.partySize), 1e-9)
		})
	}
}

func TestComputeTotalCost_TwentyPercentFromFive(t *testing.T) {
	exp := domain.NewGuidedExcursion(domain.ExcursionParams{
		Params:      domain.Params{Price: 150, DiscountThreshold: 5, DiscountPercentage: 20},
		MaxCapacity: 10,
	})

	tests := []struct {
		partySize int
		want      float64
	}{
		{partySize: 3, want: 450},
		{partySize: 5, want: 600},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, exp.ComputeTotalCost(tt.partySize), 1e-9, "partySize=%d", tt.partySize)
	}
}

func TestComputeTotalCost_NoDiscount(t *testing.T) {
	exp := domain.NewGuidedExcursion(domain.ExcursionParams{
		Params:      domain.Params{Price: 50, DiscountThreshold: 0, DiscountPercentage: 0},
		MaxCapacity: 10,
	})
	assert.InDelta(t, 150.0, exp.ComputeTotalCost(3), 1e-9)
}

func TestAvailableSlots(t *testing.T) {
	exp := newExcursion(t, clock.NewFixed(baseTime), 10)

	slots, err := exp.AvailableSlots()
	require.NoError(t, err)
	assert.Equal(t, 10, slots)

	book(t, exp, nil, 3)
	r := book(t, exp, nil, 2)

	slots, err = exp.AvailableSlots()
	require.NoError(t, err)
	assert.Equal(t, 5, slots)
	assert.Equal(t, 5, exp.OccupiedCapacity())

	_, err = r.Cancel()
	require.NoError(t, err)

	slots, err = exp.AvailableSlots()
	require.NoError(t, err)
	assert.Equal(t, 7, slots, "cancelled reservations do not occupy capacity")
}

func TestValidateAvailability_StrictComparison(t *testing.T) {
	exp := newExcursion(t, clock.NewFixed(baseTime), 10)
	book(t, exp, nil, 4)

	ok, err := exp.ValidateAvailability(5)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = exp.ValidateAvailability(6)
	require.NoError(t, err)
	assert.False(t, ok, "a party exactly filling the remaining slots is refused")
}

func TestValidateAvailability_EmptyExperienceFullParty(t *testing.T) {
	exp := newExcursion(t, clock.NewFixed(baseTime), 10)

	ok, err := exp.ValidateAvailability(10)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = exp.ValidateAvailability(9)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestValidateAvailability_CapacityExceeded(t *testing.T) {
	exp := newExcursion(t, clock.NewFixed(baseTime), 10)

	ok, err := exp.ValidateAvailability(11)
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.False(t, ok)
}

func TestValidateAvailability_NoGuide(t *testing.T) {
	exp := newExcursion(t, clock.NewFixed(baseTime), 10)
	exp.RemoveGuide()

	_, err := exp.ValidateAvailability(2)
	assert.ErrorIs(t, err, domain.ErrNoGuideAssigned)

	// the guide check runs before the capacity check
	_, err = exp.ValidateAvailability(50)
	assert.ErrorIs(t, err, domain.ErrNoGuideAssigned)

	exp.AssignGuide(domain.NewGuide("Ivan", "Petrov", "ru"))
	ok, err := exp.ValidateAvailability(2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ru", exp.Guide().Language())
}

func TestAddRemoveReservation(t *testing.T) {
	exp := newExcursion(t, clock.NewFixed(baseTime), 10)
	r, err := domain.NewReservation(exp, nil, 2)
	require.NoError(t, err)

	require.NoError(t, exp.AddReservation(r))
	assert.ErrorIs(t, exp.AddReservation(r), domain.ErrDuplicateEntity)

	require.NoError(t, exp.RemoveReservation(r))
	assert.ErrorIs(t, exp.RemoveReservation(r), domain.ErrNotFound)
	assert.Empty(t, exp.Reservations())
}

func TestReservations_ReturnsCopy(t *testing.T) {
	exp := newExcursion(t, clock.NewFixed(baseTime), 10)
	book(t, exp, nil, 2)

	list := exp.Reservations()
	list[0] = nil

	assert.NotNil(t, exp.Reservations()[0])
}

func TestOutstandingBalance(t *testing.T) {
	clk := clock.NewManual(baseTime)
	exp := newExcursion(t, clk, 20)

	book(t, exp, nil, 2)
	confirmed := book(t, exp, nil, 5)
	require.NoError(t, confirmed.Confirm())

	clk.Advance(24 * time.Hour)
	book(t, exp, nil, 1)

	balance, err := exp.OutstandingBalance()
	require.NoError(t, err)
	assert.InDelta(t, 300.0, balance, 1e-9)

	// the first pending reservation expires, the later one is still inside its window
	clk.Set(baseTime.AddDate(0, 0, 7).Add(time.Second))
	balance, err = exp.OutstandingBalance()
	require.NoError(t, err)
	assert.InDelta(t, 100.0, balance, 1e-9)
}

func TestExperienceDefaults(t *testing.T) {
	exp := newExcursion(t, clock.NewFixed(baseTime), 10)

	assert.NotEmpty(t, exp.ID())
	assert.Equal(t, domain.KindGuidedExcursion, exp.Kind())
	assert.True(t, exp.RequiresGuide())

	d, err := exp.Duration()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Hour, d)

	withID := domain.NewGuidedExcursion(domain.ExcursionParams{MaxCapacity: 1}, domain.WithID("exc-1"))
	assert.Equal(t, "exc-1", withID.ID())
}

func TestExpiryIsLazy(t *testing.T) {
	clk := clock.NewManual(baseTime)
	exp := newExcursion(t, clk, 10)
	r := book(t, exp, nil, 4)

	clk.Set(r.PaymentDeadline().Add(time.Minute))

	// no deadline check has run yet
	assert.Equal(t, domain.StatusPending, r.Status())
	slots, err := exp.AvailableSlots()
	require.NoError(t, err)
	assert.Equal(t, 6, slots)
	assert.InDelta(t, 400.0, exp.PendingBalance(), 1e-9, "PendingBalance does not check deadlines")
	assert.Equal(t, domain.StatusPending, r.Status())

	balance, err := exp.OutstandingBalance()
	require.NoError(t, err)
	assert.Zero(t, balance)
	assert.Equal(t, domain.StatusExpired, r.Status())

	slots, err = exp.AvailableSlots()
	require.NoError(t, err)
	assert.Equal(t, 10, slots)
}
