package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeClock(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"09:00", "09:00:00", true},
		{"09:00:30", "09:00:30", true},
		{" 14:15 ", "14:15:00", true},
		{"9am", "", false},
		{"25:00", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := normalizeClock(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestBulkAddRejectsEmptyBatch(t *testing.T) {
	h := &LectureHandler{}

	c, rec := newTestContext(http.MethodPost, `{"code":"CS101","lectures":[]}`)
	require.NoError(t, h.BulkAdd(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newTestContext(http.MethodPost, `{"lectures":[{"room_number":"911"}]}`)
	require.NoError(t, h.BulkAdd(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
