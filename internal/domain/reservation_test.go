package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ExperienceService/internal/clock"
	"github.com/m04kA/SMC-ExperienceService/internal/domain"
)

func TestNewReservation(t *testing.T) {
	exp := newExcursion(t, clock.NewFixed(baseTime), 10)
	client := domain.NewClient("Oleg", "Smirnov", "oleg@example.com")

	r, err := domain.NewReservation(exp, client, 6)
	require.NoError(t, err)

	assert.NotEmpty(t, r.ID())
	assert.Equal(t, domain.StatusPending, r.Status())
	assert.Equal(t, baseTime, r.CreatedAt())
	assert.InDelta(t, 540.0, r.TotalAmount(), 1e-9)
	assert.Same(t, client, r.Client())
	assert.Equal(t, 6, r.PartySize())
	assert.Empty(t, exp.Reservations(), "construction does not register the reservation")
}

func TestNewReservation_Invalid(t *testing.T) {
	_, err := domain.NewReservation(nil, nil, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidBaseConstruction)

	exp := newExcursion(t, clock.NewFixed(baseTime), 10)
	_, err = domain.NewReservation(exp, nil, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidPartySize)
}

func TestPaymentDeadline(t *testing.T) {
	tests := []struct {
		name           string
		experienceDate time.Time
		want           time.Time
	}{
		{
			name:           "payment window ends first",
			experienceDate: baseTime.AddDate(0, 0, 30),
			want:           baseTime.AddDate(0, 0, 7),
		},
		{
			name:           "day before the experience ends first",
			experienceDate: baseTime.AddDate(0, 0, 3),
			want:           baseTime.AddDate(0, 0, 2),
		},
		{
			name:           "both bounds coincide",
			experienceDate: baseTime.AddDate(0, 0, 8),
			want:           baseTime.AddDate(0, 0, 7),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.PaymentDeadline(baseTime, tt.experienceDate))
		})
	}
}

func TestConfirm(t *testing.T) {
	exp := newExcursion(t, clock.NewFixed(baseTime), 10)
	r := book(t, exp, nil, 2)

	require.NoError(t, r.Confirm())
	assert.Equal(t, domain.StatusConfirmed, r.Status())

	assert.ErrorIs(t, r.Confirm(), domain.ErrInvalidTransition)
}

func TestCancel(t *testing.T) {
	exp := newExcursion(t, clock.NewFixed(baseTime), 10)

	pending := book(t, exp, nil, 2)
	promotion, err := pending.Cancel()
	require.NoError(t, err)
	assert.Nil(t, promotion)
	assert.Equal(t, domain.StatusCancelled, pending.Status())

	confirmed := book(t, exp, nil, 2)
	require.NoError(t, confirmed.Confirm())
	_, err = confirmed.Cancel()
	require.NoError(t, err)
	assert.True(t, confirmed.IsTerminal())
}

func TestCancel_Twice(t *testing.T) {
	exp := newExcursion(t, clock.NewFixed(baseTime), 10)
	r := book(t, exp, nil, 2)

	_, err := r.Cancel()
	require.NoError(t, err)

	_, err = r.Cancel()
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.ErrorIs(t, r.Confirm(), domain.ErrInvalidTransition)
}

func TestCheckExpiry(t *testing.T) {
	clk := clock.NewManual(baseTime)
	exp := newExcursion(t, clk, 10)
	r := book(t, exp, nil, 2)

	clk.Set(r.PaymentDeadline())
	expired, _, err := r.CheckExpiry()
	require.NoError(t, err)
	assert.False(t, expired, "deadline itself is still inside the window")

	clk.Advance(time.Nanosecond)
	expired, _, err = r.CheckExpiry()
	require.NoError(t, err)
	assert.True(t, expired)
	assert.Equal(t, domain.StatusExpired, r.Status())

	// terminal reservations never change again
	expired, _, err = r.CheckExpiry()
	require.NoError(t, err)
	assert.False(t, expired)
	_, err = r.Cancel()
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCheckExpiry_ConfirmedNeverExpires(t *testing.T) {
	clk := clock.NewManual(baseTime)
	exp := newExcursion(t, clk, 10)
	r := book(t, exp, nil, 2)
	require.NoError(t, r.Confirm())

	clk.Advance(30 * 24 * time.Hour)
	expired, _, err := r.CheckExpiry()
	require.NoError(t, err)
	assert.False(t, expired)
	assert.Equal(t, domain.StatusConfirmed, r.Status())
}

func TestCancel_PromotesWaitlistRequest(t *testing.T) {
	exp := newExcursion(t, clock.NewFixed(baseTime), 10)
	alice := domain.NewClient("Alice", "A", "alice@example.com")
	bob := domain.NewClient("Bob", "B", "bob@example.com")

	vacated := book(t, exp, alice, 4)
	req := domain.NewWaitlistRequest(baseTime, bob, 3)
	require.NoError(t, exp.AddRequest(req))

	promotion, err := vacated.Cancel()
	require.NoError(t, err)
	require.NotNil(t, promotion)

	assert.Same(t, vacated, promotion.Vacated)
	assert.Same(t, req, promotion.Request)
	assert.Equal(t, 3, promotion.Promoted.PartySize())
	assert.Same(t, bob, promotion.Promoted.Client())
	assert.Equal(t, domain.StatusPending, promotion.Promoted.Status())

	// the request leaves the waitlist, the vacated reservation leaves the ledger
	assert.Empty(t, exp.Requests())
	assert.Equal(t, []*domain.Reservation{promotion.Promoted}, exp.Reservations())

	// client indices follow the promotion
	assert.False(t, alice.HasReservation(vacated))
	assert.True(t, bob.HasReservation(promotion.Promoted))

	// a smaller party in a larger vacancy leaves the remainder free
	slots, err := exp.AvailableSlots()
	require.NoError(t, err)
	assert.Equal(t, 7, slots)
}

func TestCheckExpiry_PromotesWaitlistRequest(t *testing.T) {
	clk := clock.NewManual(baseTime)
	exp := newExcursion(t, clk, 10)

	r := book(t, exp, nil, 5)
	req := domain.NewWaitlistRequest(baseTime, nil, 5)
	require.NoError(t, exp.AddRequest(req))

	clk.Set(r.PaymentDeadline().Add(time.Second))
	promotions, err := exp.ExpireStale()
	require.NoError(t, err)
	require.Len(t, promotions, 1)

	promoted := promotions[0].Promoted
	assert.Equal(t, clk.Now(), promoted.CreatedAt())
	assert.Equal(t, clk.Now().AddDate(0, 0, 7), promoted.PaymentDeadline())
	assert.Equal(t, 5, exp.OccupiedCapacity())
}

func TestRelease_UnregisteredReservation(t *testing.T) {
	exp := newExcursion(t, clock.NewFixed(baseTime), 10)
	r, err := domain.NewReservation(exp, nil, 2)
	require.NoError(t, err)

	req := domain.NewWaitlistRequest(baseTime, nil, 1)
	require.NoError(t, exp.AddRequest(req))

	_, err = r.Cancel()
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.StatusPending, r.Status(), "failed release keeps the status")
	assert.Len(t, exp.Requests(), 1, "failed promotion leaves the waitlist untouched")

	// после регистрации отмену можно повторить
	require.NoError(t, exp.AddReservation(r))
	promotion, err := r.Cancel()
	require.NoError(t, err)
	require.NotNil(t, promotion)
	assert.Equal(t, domain.StatusCancelled, r.Status())
	assert.Empty(t, exp.Requests())
}

func TestCheckExpiry_UnregisteredReservation(t *testing.T) {
	clk := clock.NewManual(baseTime)
	exp := newExcursion(t, clk, 10)
	r, err := domain.NewReservation(exp, nil, 2)
	require.NoError(t, err)
	require.NoError(t, exp.AddRequest(domain.NewWaitlistRequest(baseTime, nil, 2)))

	clk.Advance(8 * 24 * time.Hour)
	expired, promotion, err := r.CheckExpiry()
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, expired)
	assert.Nil(t, promotion)
	assert.Equal(t, domain.StatusPending, r.Status())
}
