package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lab-seat-reservation/internal/booking"
	"github.com/iliyamo/lab-seat-reservation/internal/repository"
)

// LabHandler serves room listings and occupancy queries.  Occupancy
// goes through the engine because it shares the lecture guard with
// booking; the approved-window listing reads the repository directly.
type LabHandler struct {
	Engine       *booking.Engine
	Labs         *repository.LabRepo
	Reservations *repository.ReservationRepo
}

func NewLabHandler(e *booking.Engine, l *repository.LabRepo, r *repository.ReservationRepo) *LabHandler {
	return &LabHandler{Engine: e, Labs: l, Reservations: r}
}

// List returns all provisioned lab rooms.
func (h *LabHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	labs, err := h.Labs.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list labs failed"})
	}
	out := make([]echo.Map, 0, len(labs))
	for _, l := range labs {
		out = append(out, echo.Map{"room_number": l.RoomNumber, "capacity": l.Capacity})
	}
	return c.JSON(http.StatusOK, echo.Map{"labs": out})
}

// Occupancy answers the walk-in question for a room: which seats are
// taken and who leads the room today.  Without query parameters it
// reports right now; with ?start=&end= (RFC3339) it reports the
// window.  A room in lecture use answers with in_class instead of a
// seat list.
func (h *LabHandler) Occupancy(c echo.Context) error {
	room := c.Param("room_number")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	startRaw, endRaw := c.QueryParam("start"), c.QueryParam("end")

	var (
		occ *booking.Occupancy
		err error
	)
	if startRaw == "" && endRaw == "" {
		occ, err = h.Engine.CurrentOccupancy(ctx, room)
	} else {
		start, perr := time.Parse(time.RFC3339, startRaw)
		if perr != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start"})
		}
		end, perr := time.Parse(time.RFC3339, endRaw)
		if perr != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end"})
		}
		if !end.After(start) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "end must be after start"})
		}
		occ, err = h.Engine.OccupancyBetween(ctx, room, start, end)
	}
	if err != nil {
		if booking.KindOf(err) == booking.KindLecturePresent {
			return c.JSON(http.StatusOK, booking.Occupancy{RoomNumber: room, SeatNums: []string{}, InClass: true})
		}
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, occ)
}

// afterStaffedHours reports whether the instant falls strictly after
// 17:00 on its own calendar date, the end of staffed lab hours.
// Windows reaching past it include the room lead so students know who
// holds the key; a window ending exactly at 17:00 does not.
func afterStaffedHours(t time.Time) bool {
	staffedEnd := time.Date(t.Year(), t.Month(), t.Day(), 17, 0, 0, 0, t.Location())
	return t.After(staffedEnd)
}

// Approved lists the room's approved reservations intersecting the
// ?start=&end= window.  When the window ends after staffed hours the
// response also names the room lead for the day.
func (h *LabHandler) Approved(c echo.Context) error {
	room := c.Param("room_number")
	start, err := time.Parse(time.RFC3339, c.QueryParam("start"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start"})
	}
	end, err := time.Parse(time.RFC3339, c.QueryParam("end"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end"})
	}
	if !end.After(start) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end must be after start"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	lab, err := h.Labs.GetByRoomNumber(ctx, room)
	if err == repository.ErrLabNotFound {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "lab room does not exist"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}

	details, err := h.Reservations.ApprovedOverlapping(ctx, lab.ID, start, end)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
	}

	resp := echo.Map{"room_number": lab.RoomNumber, "reservations": details}
	if afterStaffedHours(end) {
		lead, err := h.Labs.LeadOn(ctx, lab.ID, end.Format("2006-01-02"))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lead lookup failed"})
		}
		if lead != nil {
			resp["lead"] = booking.LeadSummary{StudentID: lead.MemberStudentID, Name: lead.MemberName}
		}
	}
	return c.JSON(http.StatusOK, resp)
}
