package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/lab-seat-reservation/internal/booking"
)

func newTestContext(method, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestBookingErrorMapping(t *testing.T) {
	cases := []struct {
		kind   booking.Kind
		status int
	}{
		{booking.KindNotFound, http.StatusBadRequest},
		{booking.KindCapacityExceeded, http.StatusBadRequest},
		{booking.KindFillOrder, http.StatusBadRequest},
		{booking.KindAlreadyBooked, http.StatusConflict},
		{booking.KindLogic, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		c, rec := newTestContext(http.MethodPost, "")
		err := bookingError(c, &booking.Error{Kind: tc.kind, Message: "boom"})
		require.NoError(t, err)
		assert.Equal(t, tc.status, rec.Code, "kind %d", tc.kind)
	}
}

func TestBookingErrorLecturePresentAnswers200(t *testing.T) {
	c, rec := newTestContext(http.MethodPost, "")
	err := bookingError(c, &booking.Error{Kind: booking.KindLecturePresent, Message: "in class"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"in_class":true`)
}

func TestBookRejectsInvalidWindow(t *testing.T) {
	h := &ReservationHandler{}

	c, rec := newTestContext(http.MethodPost,
		`{"room_number":"911","seat_num":"A1","start_time":"2026-03-02T12:00:00Z","end_time":"2026-03-02T11:00:00Z"}`)
	require.NoError(t, h.Book(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newTestContext(http.MethodPost, `{"seat_num":"A1"}`)
	require.NoError(t, h.Book(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
