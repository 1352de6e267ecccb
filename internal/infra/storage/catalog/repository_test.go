package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ExperienceService/internal/domain"
)

func newExcursion(id string) *domain.GuidedExcursion {
	return domain.NewGuidedExcursion(domain.ExcursionParams{
		Params:      domain.Params{Name: "Walk", Price: 10, Date: time.Now().AddDate(0, 1, 0)},
		MaxCapacity: 10,
	}, domain.WithID(id))
}

func TestRepository_Experiences(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	require.NoError(t, repo.AddExperience(ctx, newExcursion("b")))
	require.NoError(t, repo.AddExperience(ctx, newExcursion("a")))
	assert.ErrorIs(t, repo.AddExperience(ctx, newExcursion("a")), ErrAlreadyExists)

	exp, err := repo.GetExperience(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", exp.ID())

	_, err = repo.GetExperience(ctx, "missing")
	assert.ErrorIs(t, err, ErrExperienceNotFound)

	list, err := repo.ListExperiences(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID())
	assert.Equal(t, "b", list[1].ID())
}

func TestRepository_Clients(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	client := domain.NewClient("Ivan", "Petrov", "ivan@example.com")

	require.NoError(t, repo.AddClient(ctx, client))
	assert.ErrorIs(t, repo.AddClient(ctx, client), ErrAlreadyExists)

	got, err := repo.GetClient(ctx, client.ID())
	require.NoError(t, err)
	assert.Same(t, client, got)

	_, err = repo.GetClient(ctx, "missing")
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestRepository_Reservations(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	r, err := domain.NewReservation(newExcursion("a"), nil, 2)
	require.NoError(t, err)

	require.NoError(t, repo.SaveReservation(ctx, r))
	require.NoError(t, repo.SaveReservation(ctx, r), "saving the same reservation twice is a no-op")

	got, err := repo.FindReservation(ctx, r.ID())
	require.NoError(t, err)
	assert.Same(t, r, got)

	_, err = repo.FindReservation(ctx, "missing")
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestRepository_Requests(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	req := domain.NewWaitlistRequest(time.Now(), nil, 3)

	require.NoError(t, repo.SaveRequest(ctx, "a", req))
	assert.ErrorIs(t, repo.SaveRequest(ctx, "a", req), ErrAlreadyExists)

	entry, err := repo.FindRequest(ctx, req.ID())
	require.NoError(t, err)
	assert.Equal(t, "a", entry.ExperienceID)
	assert.Same(t, req, entry.Request)

	require.NoError(t, repo.DeleteRequest(ctx, req.ID()))
	_, err = repo.FindRequest(ctx, req.ID())
	assert.ErrorIs(t, err, ErrRequestNotFound)
}
