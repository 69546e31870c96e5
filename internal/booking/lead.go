package booking

import (
	"context"
	"time"

	"github.com/iliyamo/lab-seat-reservation/internal/model"
)

// rotateLead recomputes the room lead for (lab, today) after an
// after-cutoff booking was persisted.  The candidate is the member of
// the latest-ending pending reservation: whoever holds the room
// longest is elected leader of that room's overflow session.  An
// existing lead row is overwritten, never duplicated.
//
// The caller invokes this immediately after persisting a pending
// reservation, so an empty pending list indicates a caller-ordering
// bug and fails with KindLogic.
func rotateLead(ctx context.Context, store Store, lab *model.Lab, today time.Time) error {
	pending, err := store.PendingReservationsByLab(ctx, lab.ID, today)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return newError(KindLogic, "room lead rotation invoked with no pending reservation")
	}
	// pending is sorted by end time descending; the head leads.
	return store.UpsertRoomLead(ctx, lab.ID, today, pending[0].MemberID)
}
