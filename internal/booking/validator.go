package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/lab-seat-reservation/internal/model"
)

// validator runs the three independent booking checks against a
// point-in-time read of the lab's existing reservations.  Each check
// fails with its own kind so handlers can answer with a precise
// status instead of a generic fault.  Checks are day-scoped: the
// daily horizon of reservations is expressed by filtering on the
// creation date, matching the periodic external cleanup job.
type validator struct {
	store Store
}

// checkCapacity verifies the team fits into the seats left for the
// window: teamSize must not exceed capacity minus the number of
// reservations already intersecting [start, end).
func (v validator) checkCapacity(ctx context.Context, req Request, lab *model.Lab) error {
	count, err := v.store.ActiveReservationCount(ctx, lab.ID, req.StartTime, req.EndTime)
	if err != nil {
		return err
	}
	available := lab.Capacity - count
	if req.TeamSize > available {
		return newError(KindCapacityExceeded,
			fmt.Sprintf("room %s has %d seats left for the requested window", lab.RoomNumber, available))
	}
	return nil
}

// checkDuplicate verifies the member holds no other reservation today
// in the same approval mode.  Mode is an attribute of the request:
// before-cutoff requests collide only with approved reservations,
// after-cutoff requests only with pending ones, so one of each per
// day is allowed.
func (v validator) checkDuplicate(ctx context.Context, member *model.Member, beforeCutoff bool, today time.Time) error {
	existing, err := v.store.MemberReservationsByMode(ctx, member.ID, beforeCutoff, today)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		if beforeCutoff {
			return newError(KindAlreadyBooked, "member already holds a before-cutoff reservation today")
		}
		return newError(KindAlreadyBooked, "member already holds an after-cutoff reservation today")
	}
	return nil
}

// checkSeat verifies the requested seat is not reserved for any
// window intersecting [start, end), regardless of approval state.
func (v validator) checkSeat(ctx context.Context, req Request, lab *model.Lab, today time.Time) error {
	overlapping, err := v.store.ReservationsOverlapping(ctx, lab.ID, req.StartTime, req.EndTime, today)
	if err != nil {
		return err
	}
	for _, r := range overlapping {
		if r.SeatNum == req.SeatNum {
			return newError(KindAlreadyBooked,
				fmt.Sprintf("seat %s in room %s is already reserved for that window", req.SeatNum, lab.RoomNumber))
		}
	}
	return nil
}
