package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixed(t *testing.T) {
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	c := NewFixed(at)

	assert.Equal(t, at, c.Now())
	assert.Equal(t, at, c.Now())
}

func TestManual(t *testing.T) {
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	c := NewManual(at)

	assert.Equal(t, at, c.Now())
	assert.Equal(t, at.Add(time.Hour), c.Advance(time.Hour))
	assert.Equal(t, at.Add(time.Hour), c.Now())

	c.Set(at.AddDate(0, 0, 7))
	assert.Equal(t, at.AddDate(0, 0, 7), c.Now())
}

func TestSystem(t *testing.T) {
	now := NewSystem().Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.WithinDuration(t, time.Now(), now, time.Second)
}

func TestFunc(t *testing.T) {
	calls := 0
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	c := Func(func() time.Time {
		calls++
		return at.Add(time.Duration(calls) * time.Minute)
	})

	assert.Equal(t, at.Add(time.Minute), c.Now())
	assert.Equal(t, at.Add(2*time.Minute), c.Now())
}
