package booking

import (
	"context"
	"time"

	"github.com/iliyamo/lab-seat-reservation/internal/model"
)

// Request is a single incoming booking request.  StartTime and
// EndTime are instants on the same calendar day; the [start,end)
// window is treated as half-open for all overlap checks.
type Request struct {
	StudentID  string    // external id of the booking member
	RoomNumber string    // lab room number (e.g. "911")
	SeatNum    string    // seat label within the room (e.g. "A1")
	TeamSize   int       // number of people the booking covers
	StartTime  time.Time // beginning of the reserved window
	EndTime    time.Time // end of the reserved window
}

// Confirmation is returned for an accepted booking.  Approved mirrors
// the persisted reservation: true for before-cutoff (self-service)
// bookings, false for after-cutoff bookings awaiting staff approval.
type Confirmation struct {
	ReservationID uint64    `json:"reservation_id"`
	RoomNumber    string    `json:"room_number"`
	StudentID     string    `json:"student_id"`
	MemberName    string    `json:"member_name"`
	SeatNum       string    `json:"seat_num"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Approved      bool      `json:"approved"`
}

// LeadSummary identifies the current room lead for display.
type LeadSummary struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
}

// Occupancy reports the seats in use in a room, the room lead if one
// is designated today, and whether the room is in lecture use.  When
// InClass is true the seat list is empty: a room in class cannot be
// inspected or reserved.
type Occupancy struct {
	RoomNumber string       `json:"room_number"`
	SeatNums   []string     `json:"seat_nums"`
	Lead       *LeadSummary `json:"lead,omitempty"`
	InClass    bool         `json:"in_class"`
}

// Engine is the booking decision engine.  It evaluates each request
// once, synchronously, inside a single storage transaction: lecture
// guard, capacity, duplicate and seat checks, then (after the cutoff)
// the room fill order, the insert, and the lead rotation.  Any
// failing check aborts the rest, so no partial reservation is ever
// persisted.
type Engine struct {
	store  TxStore
	clock  Clock
	cutoff Cutoff
	prio   []string
}

// NewEngine constructs an Engine.  priority is the ordered room fill
// list consulted for after-cutoff requests.  A nil clock defaults to
// the system clock.
func NewEngine(store TxStore, clock Clock, cutoff Cutoff, priority []string) *Engine {
	if clock == nil {
		clock = SystemClock()
	}
	return &Engine{store: store, clock: clock, cutoff: cutoff, prio: priority}
}

// Book runs the full decision sequence for one request and returns a
// confirmation for the persisted reservation.  Failures carry a Kind
// (see errors.go); anything without a kind is an internal fault.
func (e *Engine) Book(ctx context.Context, req Request) (*Confirmation, error) {
	var conf *Confirmation
	err := e.store.InTx(ctx, func(s Store) error {
		member, err := s.FindMemberByStudentID(ctx, req.StudentID)
		if err == ErrMemberNotFound {
			return newError(KindNotFound, "member does not exist")
		}
		if err != nil {
			return err
		}
		lab, err := s.FindLabByRoomNumber(ctx, req.RoomNumber)
		if err == ErrLabNotFound {
			return newError(KindNotFound, "lab room does not exist")
		}
		if err != nil {
			return err
		}

		beforeCutoff := e.cutoff.Before(req.StartTime)
		today := e.clock.Now()

		occupied, err := s.LectureOverlap(ctx, lab.ID, req.StartTime.Weekday().String(),
			req.StartTime, req.EndTime, today)
		if err != nil {
			return err
		}
		if occupied {
			return newError(KindLecturePresent, "a lecture occupies the room during the requested window")
		}

		v := validator{store: s}
		if err := v.checkCapacity(ctx, req, lab); err != nil {
			return err
		}
		if err := v.checkDuplicate(ctx, member, beforeCutoff, today); err != nil {
			return err
		}
		if err := v.checkSeat(ctx, req, lab, today); err != nil {
			return err
		}

		if !beforeCutoff {
			a := allocator{store: s, priority: e.prio}
			if err := a.checkFillOrder(ctx, req); err != nil {
				return err
			}
		}

		res := &model.Reservation{
			LabID:     lab.ID,
			MemberID:  member.ID,
			SeatNum:   req.SeatNum,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Approved:  beforeCutoff,
		}
		if err := s.CreateReservation(ctx, res); err == ErrSlotTaken {
			// lost the race against a concurrent booking for the
			// same slot; same outcome as the seat check
			return newError(KindAlreadyBooked, "seat was just taken by another booking")
		} else if err != nil {
			return err
		}

		if !beforeCutoff {
			if err := rotateLead(ctx, s, lab, today); err != nil {
				return err
			}
		}

		conf = &Confirmation{
			ReservationID: res.ID,
			RoomNumber:    lab.RoomNumber,
			StudentID:     member.StudentID,
			MemberName:    member.Name,
			SeatNum:       res.SeatNum,
			StartTime:     res.StartTime,
			EndTime:       res.EndTime,
			Approved:      res.Approved,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conf, nil
}

// CurrentOccupancy answers the walk-in query: which seats are in use
// in the room right now, and who leads it today.  When a lecture is
// in session it fails with KindLecturePresent; the handler turns that
// into an in_class payload rather than a hard error.
func (e *Engine) CurrentOccupancy(ctx context.Context, roomNumber string) (*Occupancy, error) {
	now := e.clock.Now()
	return e.occupancy(ctx, roomNumber, now, now, false)
}

// OccupancyBetween answers the windowed variant of the walk-in query
// for [start, end) today.
func (e *Engine) OccupancyBetween(ctx context.Context, roomNumber string, start, end time.Time) (*Occupancy, error) {
	return e.occupancy(ctx, roomNumber, start, end, true)
}

func (e *Engine) occupancy(ctx context.Context, roomNumber string, start, end time.Time, windowed bool) (*Occupancy, error) {
	lab, err := e.store.FindLabByRoomNumber(ctx, roomNumber)
	if err == ErrLabNotFound {
		return nil, newError(KindNotFound, "lab room does not exist")
	}
	if err != nil {
		return nil, err
	}
	today := e.clock.Now()

	occupied, err := e.store.LectureOverlap(ctx, lab.ID, start.Weekday().String(), start, end, today)
	if err != nil {
		return nil, err
	}
	if occupied {
		return nil, newError(KindLecturePresent, "a lecture is in session in the room")
	}

	var reservations []model.Reservation
	if windowed {
		reservations, err = e.store.ReservationsOverlapping(ctx, lab.ID, start, end, today)
	} else {
		reservations, err = e.store.CurrentReservations(ctx, lab.ID, start)
	}
	if err != nil {
		return nil, err
	}

	occ := &Occupancy{RoomNumber: lab.RoomNumber, SeatNums: make([]string, 0, len(reservations))}
	for _, r := range reservations {
		occ.SeatNums = append(occ.SeatNums, r.SeatNum)
	}

	lead, err := e.store.FindRoomLead(ctx, lab.ID, today)
	if err != nil {
		return nil, err
	}
	if lead != nil {
		occ.Lead = &LeadSummary{StudentID: lead.MemberStudentID, Name: lead.MemberName}
	}
	return occ, nil
}
