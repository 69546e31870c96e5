package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lab-seat-reservation/internal/booking"
	"github.com/iliyamo/lab-seat-reservation/internal/queue"
	"github.com/iliyamo/lab-seat-reservation/internal/repository"
	queue_publisher "github.com/iliyamo/lab-seat-reservation/internal/service"
)

// ReservationHandler bundles dependencies for reservation endpoints.
// Booking goes through the decision engine; listings read directly
// from the repository.
type ReservationHandler struct {
	Engine       *booking.Engine
	Reservations *repository.ReservationRepo
}

func NewReservationHandler(e *booking.Engine, r *repository.ReservationRepo) *ReservationHandler {
	return &ReservationHandler{Engine: e, Reservations: r}
}

type bookReq struct {
	RoomNumber string    `json:"room_number"`
	SeatNum    string    `json:"seat_num"`
	TeamSize   int       `json:"team_size"`
	StartTime  time.Time `json:"start_time"` // RFC3339
	EndTime    time.Time `json:"end_time"`   // RFC3339
}

// memberIDFrom reads the numeric subject claim stored by JWTAuth.
// JSON numbers decode as float64; tokens issued elsewhere may carry a
// string.
func memberIDFrom(c echo.Context) (uint64, bool) {
	switch v := c.Get("member_id").(type) {
	case float64:
		return uint64(v), true
	case string:
		id, err := strconv.ParseUint(v, 10, 64)
		return id, err == nil
	}
	return 0, false
}

func studentIDFrom(c echo.Context) string {
	s, _ := c.Get("student_id").(string)
	return s
}

// Book accepts a seat booking request for the authenticated member.
// Bookings whose window starts before the daily cutoff are approved
// immediately; later ones are queued for staff approval, constrained
// to the room fill order, and announced on the broker.
func (h *ReservationHandler) Book(c echo.Context) error {
	var req bookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.RoomNumber = strings.TrimSpace(req.RoomNumber)
	req.SeatNum = strings.TrimSpace(req.SeatNum)
	if req.RoomNumber == "" || req.SeatNum == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_number/seat_num required"})
	}
	if req.TeamSize <= 0 {
		req.TeamSize = 1
	}
	if !req.EndTime.After(req.StartTime) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must be after start_time"})
	}
	studentID := studentIDFrom(c)
	if studentID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing identity"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	conf, err := h.Engine.Book(ctx, booking.Request{
		StudentID:  studentID,
		RoomNumber: req.RoomNumber,
		SeatNum:    req.SeatNum,
		TeamSize:   req.TeamSize,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	})
	if err != nil {
		return bookingError(c, err)
	}

	if !conf.Approved {
		// Broker outages must not fail the booking.
		_ = queue_publisher.PublishReservationPending(ctx, queue.ReservationPendingEvent{
			ReservationID: conf.ReservationID,
			RoomNumber:    conf.RoomNumber,
			StudentID:     conf.StudentID,
			MemberName:    conf.MemberName,
			SeatNum:       conf.SeatNum,
			StartsAt:      conf.StartTime.Format(time.RFC3339),
			EndsAt:        conf.EndTime.Format(time.RFC3339),
			RequestedAt:   time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusCreated, conf)
}

// bookingError converts an engine failure to an HTTP response.  A
// lecture conflict is not an error to the client: it answers with an
// in_class payload so the UI can show the room as in lecture use.
func bookingError(c echo.Context, err error) error {
	switch booking.KindOf(err) {
	case booking.KindNotFound:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case booking.KindLecturePresent:
		return c.JSON(http.StatusOK, echo.Map{"in_class": true, "message": err.Error()})
	case booking.KindCapacityExceeded:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case booking.KindAlreadyBooked:
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case booking.KindFillOrder:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case booking.KindLogic:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
}

// Mine lists everything the authenticated member booked today.
func (h *ReservationHandler) Mine(c echo.Context) error {
	memberID, ok := memberIDFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing identity"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	details, err := h.Reservations.AllByMemberToday(ctx, memberID, time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": details})
}

// Next returns the member's in-progress or upcoming reservation, or
// 404 when nothing is scheduled.
func (h *ReservationHandler) Next(c echo.Context) error {
	memberID, ok := memberIDFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing identity"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d, err := h.Reservations.NextForMember(ctx, memberID, time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}
	if d == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no upcoming reservation"})
	}
	return c.JSON(http.StatusOK, d)
}

// Pending lists today's unapproved reservations for the assistant's
// approval queue.  Route-level role middleware restricts access.
func (h *ReservationHandler) Pending(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	details, err := h.Reservations.PendingToday(ctx, time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list pending failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"pending": details})
}
