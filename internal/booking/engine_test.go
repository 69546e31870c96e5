package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/lab-seat-reservation/internal/model"
)

// All engine tests run on 2026-03-02, a Monday, with the default
// 16:30 cutoff.
var day = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func newTestEngine(f *fakeStore, priority ...string) *Engine {
	return NewEngine(f, fixedClock{t: at(12, 0)}, DefaultCutoff, priority)
}

func TestBook_BeforeCutoffAutoApproved(t *testing.T) {
	f := newFakeStore()
	f.addLab(1, "911", 5)
	f.addMember(1, "s100", "Dana")

	eng := newTestEngine(f, "911")
	conf, err := eng.Book(context.Background(), Request{
		StudentID: "s100", RoomNumber: "911", SeatNum: "A1",
		TeamSize: 1, StartTime: at(10, 0), EndTime: at(12, 0),
	})

	require.NoError(t, err)
	assert.True(t, conf.Approved)
	assert.Equal(t, "911", conf.RoomNumber)
	assert.Equal(t, "Dana", conf.MemberName)
	assert.NotZero(t, conf.ReservationID)
	// auto-approved bookings never elect a lead
	lead, err := f.FindRoomLead(context.Background(), 1, day)
	require.NoError(t, err)
	assert.Nil(t, lead)
}

func TestBook_AtCutoffIsPending(t *testing.T) {
	f := newFakeStore()
	f.addLab(1, "911", 5)
	f.addMember(1, "s100", "Dana")

	eng := newTestEngine(f, "911")
	conf, err := eng.Book(context.Background(), Request{
		StudentID: "s100", RoomNumber: "911", SeatNum: "A1",
		TeamSize: 1, StartTime: at(16, 30), EndTime: at(18, 0),
	})

	require.NoError(t, err)
	assert.False(t, conf.Approved, "a request starting exactly at the cutoff is staff-approval mode")
}

func TestBook_UnknownMemberAndRoom(t *testing.T) {
	f := newFakeStore()
	f.addLab(1, "911", 5)
	f.addMember(1, "s100", "Dana")
	eng := newTestEngine(f, "911")

	_, err := eng.Book(context.Background(), Request{
		StudentID: "ghost", RoomNumber: "911", SeatNum: "A1",
		TeamSize: 1, StartTime: at(10, 0), EndTime: at(11, 0),
	})
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = eng.Book(context.Background(), Request{
		StudentID: "s100", RoomNumber: "404", SeatNum: "A1",
		TeamSize: 1, StartTime: at(10, 0), EndTime: at(11, 0),
	})
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestBook_LectureBlocksRoom(t *testing.T) {
	f := newFakeStore()
	f.addLab(1, "911", 5)
	f.addMember(1, "s100", "Dana")
	f.lectureHit = true

	eng := newTestEngine(f, "911")
	_, err := eng.Book(context.Background(), Request{
		StudentID: "s100", RoomNumber: "911", SeatNum: "A1",
		TeamSize: 1, StartTime: at(10, 0), EndTime: at(11, 0),
	})
	assert.Equal(t, KindLecturePresent, KindOf(err))
	assert.Empty(t, f.reservations, "nothing may be persisted on a lecture conflict")
}

func TestBook_CapacityHeadroom(t *testing.T) {
	f := newFakeStore()
	f.addLab(1, "911", 5)
	f.addMember(1, "s100", "Dana")
	f.addMember(2, "s200", "Riley")
	// one seat already taken for the window leaves headroom of 4
	f.seedReservation(1, 2, "B1", at(10, 0), at(12, 0), true)

	eng := newTestEngine(f, "911")

	_, err := eng.Book(context.Background(), Request{
		StudentID: "s100", RoomNumber: "911", SeatNum: "A1",
		TeamSize: 5, StartTime: at(10, 0), EndTime: at(12, 0),
	})
	assert.Equal(t, KindCapacityExceeded, KindOf(err))

	conf, err := eng.Book(context.Background(), Request{
		StudentID: "s100", RoomNumber: "911", SeatNum: "A1",
		TeamSize: 4, StartTime: at(10, 0), EndTime: at(12, 0),
	})
	require.NoError(t, err)
	assert.True(t, conf.Approved)
}

func TestBook_CapacityIgnoresDisjointWindows(t *testing.T) {
	f := newFakeStore()
	f.addLab(1, "911", 1)
	f.addMember(1, "s100", "Dana")
	f.addMember(2, "s200", "Riley")
	// same seat count but the window ends before ours starts
	f.seedReservation(1, 2, "A1", at(8, 0), at(10, 0), true)

	eng := newTestEngine(f, "911")
	_, err := eng.Book(context.Background(), Request{
		StudentID: "s100", RoomNumber: "911", SeatNum: "A1",
		TeamSize: 1, StartTime: at(10, 0), EndTime: at(12, 0),
	})
	assert.NoError(t, err, "[8,10) and [10,12) do not overlap")
}

func TestBook_DuplicateSameModeRejected(t *testing.T) {
	f := newFakeStore()
	f.addLab(1, "911", 5)
	f.addMember(1, "s100", "Dana")
	f.seedReservation(1, 1, "A1", at(9, 0), at(10, 0), true)

	eng := newTestEngine(f, "911")
	_, err := eng.Book(context.Background(), Request{
		StudentID: "s100", RoomNumber: "911", SeatNum: "A2",
		TeamSize: 1, StartTime: at(11, 0), EndTime: at(12, 0),
	})
	assert.Equal(t, KindAlreadyBooked, KindOf(err))
}

func TestBook_MixedModesAllowed(t *testing.T) {
	f := newFakeStore()
	f.addLab(1, "911", 5)
	f.addMember(1, "s100", "Dana")
	// an approved morning booking does not block an after-cutoff one
	f.seedReservation(1, 1, "A1", at(9, 0), at(10, 0), true)

	eng := newTestEngine(f, "911")
	conf, err := eng.Book(context.Background(), Request{
		StudentID: "s100", RoomNumber: "911", SeatNum: "A2",
		TeamSize: 1, StartTime: at(17, 0), EndTime: at(18, 0),
	})
	require.NoError(t, err)
	assert.False(t, conf.Approved)
}

func TestBook_SeatConflict(t *testing.T) {
	f := newFakeStore()
	f.addLab(1, "911", 5)
	f.addMember(1, "s100", "Dana")
	f.addMember(2, "s200", "Riley")
	f.seedReservation(1, 2, "A1", at(10, 0), at(12, 0), true)

	eng := newTestEngine(f, "911")
	_, err := eng.Book(context.Background(), Request{
		StudentID: "s100", RoomNumber: "911", SeatNum: "A1",
		TeamSize: 1, StartTime: at(11, 0), EndTime: at(13, 0),
	})
	assert.Equal(t, KindAlreadyBooked, KindOf(err))

	// the adjacent window is free
	conf, err := eng.Book(context.Background(), Request{
		StudentID: "s100", RoomNumber: "911", SeatNum: "A1",
		TeamSize: 1, StartTime: at(12, 0), EndTime: at(13, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, "A1", conf.SeatNum)
}

func TestBook_InsertRaceSurfacesAsAlreadyBooked(t *testing.T) {
	f := newFakeStore()
	f.addLab(1, "911", 5)
	f.addMember(1, "s100", "Dana")
	// the unique slot key rejects the insert as if a concurrent
	// booking won the race after our checks passed
	f.createFn = func(ctx context.Context, r *model.Reservation) error {
		return ErrSlotTaken
	}

	eng := newTestEngine(f, "911")
	_, err := eng.Book(context.Background(), Request{
		StudentID: "s100", RoomNumber: "911", SeatNum: "A1",
		TeamSize: 1, StartTime: at(10, 0), EndTime: at(11, 0),
	})
	assert.Equal(t, KindAlreadyBooked, KindOf(err))
}

func TestBook_FillOrder(t *testing.T) {
	f := newFakeStore()
	f.addLab(1, "911", 1)
	f.addLab(2, "912", 5)
	f.addMember(1, "s100", "Dana")
	f.addMember(2, "s200", "Riley")

	eng := newTestEngine(f, "911", "912")

	// 911 still has space, so 912 must refuse
	_, err := eng.Book(context.Background(), Request{
		StudentID: "s100", RoomNumber: "912", SeatNum: "A1",
		TeamSize: 1, StartTime: at(17, 0), EndTime: at(18, 0),
	})
	assert.Equal(t, KindFillOrder, KindOf(err))

	// fill 911 for the window
	conf, err := eng.Book(context.Background(), Request{
		StudentID: "s100", RoomNumber: "911", SeatNum: "A1",
		TeamSize: 1, StartTime: at(17, 0), EndTime: at(18, 0),
	})
	require.NoError(t, err)
	assert.False(t, conf.Approved)

	// now 912 opens up
	conf, err = eng.Book(context.Background(), Request{
		StudentID: "s200", RoomNumber: "912", SeatNum: "A1",
		TeamSize: 1, StartTime: at(17, 0), EndTime: at(18, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, "912", conf.RoomNumber)
}

func TestBook_RoomOutsidePriorityListClosedAfterCutoff(t *testing.T) {
	f := newFakeStore()
	f.addLab(1, "911", 5)
	f.addLab(3, "999", 5)
	f.addMember(1, "s100", "Dana")

	eng := newTestEngine(f, "911")
	_, err := eng.Book(context.Background(), Request{
		StudentID: "s100", RoomNumber: "999", SeatNum: "A1",
		TeamSize: 1, StartTime: at(17, 0), EndTime: at(18, 0),
	})
	assert.Equal(t, KindFillOrder, KindOf(err))

	// before the cutoff the same room books freely
	conf, err := eng.Book(context.Background(), Request{
		StudentID: "s100", RoomNumber: "999", SeatNum: "A1",
		TeamSize: 1, StartTime: at(10, 0), EndTime: at(11, 0),
	})
	require.NoError(t, err)
	assert.True(t, conf.Approved)
}

func TestBook_LeadRotationPicksLatestEnd(t *testing.T) {
	f := newFakeStore()
	f.addLab(1, "911", 5)
	f.addMember(1, "s100", "Dana")
	f.addMember(2, "s200", "Riley")

	eng := newTestEngine(f, "911")

	_, err := eng.Book(context.Background(), Request{
		StudentID: "s100", RoomNumber: "911", SeatNum: "A1",
		TeamSize: 1, StartTime: at(17, 0), EndTime: at(19, 0),
	})
	require.NoError(t, err)
	lead, err := f.FindRoomLead(context.Background(), 1, at(17, 0))
	require.NoError(t, err)
	require.NotNil(t, lead)
	assert.Equal(t, uint64(1), lead.MemberID)

	// a later-ending booking takes the lead over
	_, err = eng.Book(context.Background(), Request{
		StudentID: "s200", RoomNumber: "911", SeatNum: "A2",
		TeamSize: 1, StartTime: at(17, 0), EndTime: at(20, 0),
	})
	require.NoError(t, err)
	lead, err = f.FindRoomLead(context.Background(), 1, at(17, 0))
	require.NoError(t, err)
	require.NotNil(t, lead)
	assert.Equal(t, uint64(2), lead.MemberID)
}

func TestCurrentOccupancy(t *testing.T) {
	f := newFakeStore()
	f.addLab(1, "911", 5)
	f.addMember(1, "s100", "Dana")
	f.addMember(2, "s200", "Riley")
	f.seedReservation(1, 1, "A1", at(11, 0), at(13, 0), true)
	f.seedReservation(1, 2, "A2", at(14, 0), at(15, 0), true) // not yet started
	f.leads[leadKey(1, day)] = 2

	eng := newTestEngine(f, "911")
	occ, err := eng.CurrentOccupancy(context.Background(), "911")
	require.NoError(t, err)
	assert.Equal(t, []string{"A1"}, occ.SeatNums)
	assert.False(t, occ.InClass)
	require.NotNil(t, occ.Lead)
	assert.Equal(t, "s200", occ.Lead.StudentID)
	assert.Equal(t, "Riley", occ.Lead.Name)
}

func TestOccupancyBetween(t *testing.T) {
	f := newFakeStore()
	f.addLab(1, "911", 5)
	f.addMember(1, "s100", "Dana")
	f.seedReservation(1, 1, "A1", at(14, 0), at(16, 0), true)

	eng := newTestEngine(f, "911")
	occ, err := eng.OccupancyBetween(context.Background(), "911", at(15, 0), at(17, 0))
	require.NoError(t, err)
	assert.Equal(t, []string{"A1"}, occ.SeatNums)

	occ, err = eng.OccupancyBetween(context.Background(), "911", at(16, 0), at(17, 0))
	require.NoError(t, err)
	assert.Empty(t, occ.SeatNums)
}

func TestOccupancy_LectureInSession(t *testing.T) {
	f := newFakeStore()
	f.addLab(1, "911", 5)
	f.lectureHit = true

	eng := newTestEngine(f, "911")
	_, err := eng.CurrentOccupancy(context.Background(), "911")
	assert.Equal(t, KindLecturePresent, KindOf(err))
}
