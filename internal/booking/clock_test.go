package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseCutoff(t *testing.T) {
	c := ParseCutoff("18:15")
	assert.Equal(t, 18, c.Hour)
	assert.Equal(t, 15, c.Minute)

	assert.Equal(t, DefaultCutoff, ParseCutoff(""))
	assert.Equal(t, DefaultCutoff, ParseCutoff("half past four"))
	assert.Equal(t, DefaultCutoff, ParseCutoff("25:99"))
}

func TestCutoffBefore(t *testing.T) {
	c := Cutoff{Hour: 16, Minute: 30}
	d := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	assert.True(t, c.Before(d.Add(16*time.Hour+29*time.Minute)))
	assert.False(t, c.Before(d.Add(16*time.Hour+30*time.Minute)), "the cutoff instant itself is after-cutoff mode")
	assert.False(t, c.Before(d.Add(17*time.Hour)))

	// classification is per calendar date
	next := d.AddDate(0, 0, 1)
	assert.True(t, c.Before(next.Add(9*time.Hour)))
}
