package booking

import (
	"context"
	"fmt"
)

// allocator enforces the after-cutoff fill order across rooms.  The
// priority list is a plain ordered slice of room numbers supplied by
// configuration; students must fill the first room on the list that
// still has free capacity for their window before any later room
// accepts a booking.  Each request recomputes the order independently
// against current reservation counts, so no central queue is needed.
type allocator struct {
	store    Store
	priority []string
}

// checkFillOrder fails with KindFillOrder unless the requested room
// is the first room in the priority list with free capacity for
// [start, end).  Rooms absent from the list are closed to
// after-cutoff bookings entirely.
func (a allocator) checkFillOrder(ctx context.Context, req Request) error {
	for _, roomNumber := range a.priority {
		if roomNumber == req.RoomNumber {
			return nil
		}
		lab, err := a.store.FindLabByRoomNumber(ctx, roomNumber)
		if err == ErrLabNotFound {
			// a configured room that was never provisioned cannot
			// block the fill order
			continue
		}
		if err != nil {
			return err
		}
		count, err := a.store.ActiveReservationCount(ctx, lab.ID, req.StartTime, req.EndTime)
		if err != nil {
			return err
		}
		if count < lab.Capacity {
			return newError(KindFillOrder,
				fmt.Sprintf("room %s must be filled before room %s accepts after-cutoff bookings",
					roomNumber, req.RoomNumber))
		}
	}
	return newError(KindFillOrder,
		fmt.Sprintf("room %s is not open for after-cutoff bookings", req.RoomNumber))
}
