package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAfterStaffedHours(t *testing.T) {
	on := func(hour, min, sec int) time.Time {
		return time.Date(2026, 3, 2, hour, min, sec, 0, time.UTC)
	}

	cases := []struct {
		name string
		end  time.Time
		want bool
	}{
		{"morning end", on(11, 0, 0), false},
		{"just before close", on(16, 59, 59), false},
		{"exactly at close", on(17, 0, 0), false},
		{"one second past close", on(17, 0, 1), true},
		{"evening end", on(18, 30, 0), true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, afterStaffedHours(tc.end), tc.name)
	}
}
