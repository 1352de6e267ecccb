package domain_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ExperienceService/internal/clock"
	"github.com/m04kA/SMC-ExperienceService/internal/domain"
)

func TestClient_Reservations(t *testing.T) {
	exp := newExcursion(t, clock.NewFixed(baseTime), 10)
	client := domain.NewClient("Maria", "K", "+7 900 000 00 00")
	r, err := domain.NewReservation(exp, client, 1)
	require.NoError(t, err)

	require.NoError(t, client.AddReservation(r))
	assert.ErrorIs(t, client.AddReservation(r), domain.ErrDuplicateEntity)
	assert.True(t, client.HasReservation(r))
	assert.Len(t, client.Reservations(), 1)

	require.NoError(t, client.RemoveReservation(r))
	assert.ErrorIs(t, client.RemoveReservation(r), domain.ErrNotFound)
	assert.False(t, client.HasReservation(r))
}

func TestClient_ConcurrentAccess(t *testing.T) {
	client := domain.NewClient("Maria", "K", "maria@example.com")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			exp := newExcursion(t, clock.NewFixed(baseTime), 10)
			r, err := domain.NewReservation(exp, client, 1)
			if err != nil {
				return
			}
			_ = client.AddReservation(r)
			_ = client.Reservations()
		}()
	}
	wg.Wait()

	assert.Len(t, client.Reservations(), 8)
}
