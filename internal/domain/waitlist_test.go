package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ExperienceService/internal/clock"
	"github.com/m04kA/SMC-ExperienceService/internal/domain"
)

func TestAddRemoveRequest(t *testing.T) {
	exp := newExcursion(t, clock.NewFixed(baseTime), 10)
	req := domain.NewWaitlistRequest(baseTime, nil, 2)

	require.NoError(t, exp.AddRequest(req))
	assert.ErrorIs(t, exp.AddRequest(req), domain.ErrDuplicateEntity)

	require.NoError(t, exp.RemoveRequest(req))
	assert.ErrorIs(t, exp.RemoveRequest(req), domain.ErrNotFound)
}

type entry struct {
	at   time.Time
	size int
}

func TestNextCandidate(t *testing.T) {
	early := baseTime
	mid := baseTime.Add(30 * time.Minute)
	late := baseTime.Add(time.Hour)

	tests := []struct {
		name     string
		requests []entry
		freed    int
		want     int // index into requests, -1 for none
	}{
		{
			name:  "empty waitlist",
			freed: 4,
			want:  -1,
		},
		{
			name:     "nothing fits",
			requests: []entry{{early, 5}, {late, 6}},
			freed:    4,
			want:     -1,
		},
		{
			name:     "earliest entry wins over smaller party",
			requests: []entry{{late, 1}, {early, 3}},
			freed:    4,
			want:     1,
		},
		{
			name:     "same instant prefers smaller party",
			requests: []entry{{early, 3}, {early, 2}},
			freed:    4,
			want:     1,
		},
		{
			name:     "same instant and size keeps insertion order",
			requests: []entry{{early, 2}, {early, 2}},
			freed:    4,
			want:     0,
		},
		{
			name:     "oversized earlier request is skipped",
			requests: []entry{{early, 5}, {late, 4}},
			freed:    4,
			want:     1,
		},
		{
			name:     "earlier of two equal parties after skipping the oversized one",
			requests: []entry{{early, 5}, {late, 3}, {mid, 3}},
			freed:    4,
			want:     2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp := newExcursion(t, clock.NewFixed(baseTime), 10)
			reqs := make([]*domain.WaitlistRequest, 0, len(tt.requests))
			for _, r := range tt.requests {
				req := domain.NewWaitlistRequest(r.at, nil, r.size)
				require.NoError(t, exp.AddRequest(req))
				reqs = append(reqs, req)
			}

			got := exp.NextCandidate(tt.freed)
			if tt.want == -1 {
				assert.Nil(t, got)
				return
			}
			assert.Same(t, reqs[tt.want], got)
			assert.Len(t, exp.Requests(), len(tt.requests), "selection does not mutate the waitlist")
		})
	}
}
