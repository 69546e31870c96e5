package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lab-seat-reservation/internal/model"
	"github.com/iliyamo/lab-seat-reservation/internal/repository"
)

// LectureHandler manages the class timetable.  Assistants add whole
// courses at once, replace a course's sessions by code, and remove
// courses; the timetable is what the booking engine consults as its
// lecture conflict oracle.
type LectureHandler struct {
	DB       *sql.DB
	Lectures *repository.LectureRepo
	Labs     *repository.LabRepo
}

func NewLectureHandler(db *sql.DB, lec *repository.LectureRepo, labs *repository.LabRepo) *LectureHandler {
	return &LectureHandler{DB: db, Lectures: lec, Labs: labs}
}

type lectureEntry struct {
	RoomNumber string `json:"room_number"`
	Title      string `json:"title"`
	Professor  string `json:"professor"`
	Day        string `json:"day"`        // English weekday name
	StartDate  string `json:"start_date"` // YYYY-MM-DD, first day of term
	EndDate    string `json:"end_date"`   // YYYY-MM-DD, last day of term
	StartTime  string `json:"start_time"` // HH:MM or HH:MM:SS
	EndTime    string `json:"end_time"`
}

type lectureBulkReq struct {
	Code     string         `json:"code"`
	Lectures []lectureEntry `json:"lectures"`
}

var weekdays = map[string]string{
	"monday": "Monday", "tuesday": "Tuesday", "wednesday": "Wednesday",
	"thursday": "Thursday", "friday": "Friday", "saturday": "Saturday",
	"sunday": "Sunday",
}

// normalizeClock pads HH:MM to the HH:MM:SS shape stored in the TIME
// columns; anything else is rejected.
func normalizeClock(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse("15:04:05", s); err == nil {
		return s, true
	}
	if _, err := time.Parse("15:04", s); err == nil {
		return s + ":00", true
	}
	return "", false
}

// parseEntry validates one timetable entry and resolves its room.
func (h *LectureHandler) parseEntry(ctx context.Context, code string, e lectureEntry) (*model.Lecture, string) {
	day, ok := weekdays[strings.ToLower(strings.TrimSpace(e.Day))]
	if !ok {
		return nil, "invalid day: " + e.Day
	}
	start, ok := normalizeClock(e.StartTime)
	if !ok {
		return nil, "invalid start_time: " + e.StartTime
	}
	end, ok := normalizeClock(e.EndTime)
	if !ok {
		return nil, "invalid end_time: " + e.EndTime
	}
	if end <= start {
		return nil, "end_time must be after start_time"
	}
	startDate, err := time.Parse("2006-01-02", e.StartDate)
	if err != nil {
		return nil, "invalid start_date: " + e.StartDate
	}
	endDate, err := time.Parse("2006-01-02", e.EndDate)
	if err != nil {
		return nil, "invalid end_date: " + e.EndDate
	}
	if endDate.Before(startDate) {
		return nil, "end_date must not precede start_date"
	}
	lab, err := h.Labs.GetByRoomNumber(ctx, strings.TrimSpace(e.RoomNumber))
	if err == repository.ErrLabNotFound {
		return nil, "lab room does not exist: " + e.RoomNumber
	}
	if err != nil {
		return nil, "lab lookup failed"
	}
	return &model.Lecture{
		LabID:     lab.ID,
		Title:     strings.TrimSpace(e.Title),
		Professor: strings.TrimSpace(e.Professor),
		Code:      code,
		Day:       day,
		StartDate: startDate,
		EndDate:   endDate,
		StartTime: start,
		EndTime:   end,
	}, ""
}

// BulkAdd registers all sessions of a new course.  Every session is
// checked against the existing timetable before anything is written;
// the whole batch lands in one transaction so a half-added course can
// never block bookings.
func (h *LectureHandler) BulkAdd(c echo.Context) error {
	var req lectureBulkReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	code := strings.TrimSpace(req.Code)
	if code == "" || len(req.Lectures) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code and lectures required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	exists, err := h.Lectures.ExistsByCode(ctx, code)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}
	if exists {
		return c.JSON(http.StatusConflict, echo.Map{"error": "course code already registered"})
	}

	lectures := make([]*model.Lecture, 0, len(req.Lectures))
	for _, e := range req.Lectures {
		lec, msg := h.parseEntry(ctx, code, e)
		if msg != "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
		}
		conflict, err := h.Lectures.HasOverlap(ctx, lec.LabID, lec.Day,
			lec.StartTime, lec.EndTime, lec.StartDate, lec.EndDate)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "overlap check failed"})
		}
		if conflict {
			return c.JSON(http.StatusConflict, echo.Map{
				"error": repository.ErrScheduleConflict.Error(),
				"day":   lec.Day, "start_time": lec.StartTime,
			})
		}
		lectures = append(lectures, lec)
	}

	tx, err := h.DB.BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	for _, lec := range lectures {
		if err := h.Lectures.CreateTx(ctx, tx, lec); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "insert failed"})
		}
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	return c.JSON(http.StatusCreated, echo.Map{"code": code, "created": len(lectures)})
}

// ReplaceByCode swaps a course's entire timetable for a new one in a
// single transaction.  The old sessions are deleted first so the
// overlap checks run against the timetable the new sessions will
// actually live in.
func (h *LectureHandler) ReplaceByCode(c echo.Context) error {
	code := strings.TrimSpace(c.Param("code"))
	var req lectureBulkReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if code == "" || len(req.Lectures) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code and lectures required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	exists, err := h.Lectures.ExistsByCode(ctx, code)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}
	if !exists {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "course code not found"})
	}

	lectures := make([]*model.Lecture, 0, len(req.Lectures))
	for _, e := range req.Lectures {
		lec, msg := h.parseEntry(ctx, code, e)
		if msg != "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
		}
		lectures = append(lectures, lec)
	}

	tx, err := h.DB.BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	removed, err := h.Lectures.DeleteAllByCodeTx(ctx, tx, code)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	for _, lec := range lectures {
		conflict, err := h.Lectures.HasOverlapTx(ctx, tx, lec.LabID, lec.Day,
			lec.StartTime, lec.EndTime, lec.StartDate, lec.EndDate)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "overlap check failed"})
		}
		if conflict {
			return c.JSON(http.StatusConflict, echo.Map{
				"error": repository.ErrScheduleConflict.Error(),
				"day":   lec.Day, "start_time": lec.StartTime,
			})
		}
		if err := h.Lectures.CreateTx(ctx, tx, lec); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "insert failed"})
		}
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	return c.JSON(http.StatusOK, echo.Map{"code": code, "removed": removed, "created": len(lectures)})
}

// DeleteByCode removes every session of a course.
func (h *LectureHandler) DeleteByCode(c echo.Context) error {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	removed, err := h.Lectures.DeleteAllByCode(ctx, code)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if removed == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "course code not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"code": code, "removed": removed})
}

// ByLab returns the room's timetable.
func (h *LectureHandler) ByLab(c echo.Context) error {
	room := c.Param("room_number")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	lab, err := h.Labs.GetByRoomNumber(ctx, room)
	if err == repository.ErrLabNotFound {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "lab room does not exist"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}

	lectures, err := h.Lectures.ListByLab(ctx, lab.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list lectures failed"})
	}
	out := make([]echo.Map, 0, len(lectures))
	for _, lec := range lectures {
		out = append(out, echo.Map{
			"title":      lec.Title,
			"professor":  lec.Professor,
			"code":       lec.Code,
			"day":        lec.Day,
			"start_date": lec.StartDate.Format("2006-01-02"),
			"end_date":   lec.EndDate.Format("2006-01-02"),
			"start_time": lec.StartTime,
			"end_time":   lec.EndTime,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"room_number": lab.RoomNumber, "lectures": out})
}
