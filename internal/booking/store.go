package booking

import (
	"context"
	"time"

	"github.com/iliyamo/lab-seat-reservation/internal/model"
)

// Store is the persistence collaborator consumed by the engine.  The
// production implementation wraps MySQL; tests supply in-memory
// fakes.  All time parameters are instants; implementations derive
// clock times and dates from them as their schema requires.
type Store interface {
	// FindLabByRoomNumber resolves a lab by its room number.
	// Returns ErrLabNotFound for an unknown number.
	FindLabByRoomNumber(ctx context.Context, roomNumber string) (*model.Lab, error)

	// FindMemberByStudentID resolves a member by their external
	// student id.  Returns ErrMemberNotFound when absent.
	FindMemberByStudentID(ctx context.Context, studentID string) (*model.Member, error)

	// LectureOverlap reports whether any lecture scheduled for the
	// lab on day (English weekday name) intersects the clock-time
	// range of [start, end] and is in session on onDate (term bounds
	// contain it).
	LectureOverlap(ctx context.Context, labID uint64, day string, start, end time.Time, onDate time.Time) (bool, error)

	// ActiveReservationCount counts reservations for the lab whose
	// [start,end) interval intersects the given window, regardless of
	// approval state.
	ActiveReservationCount(ctx context.Context, labID uint64, start, end time.Time) (int, error)

	// ReservationsOverlapping returns the lab's reservations created
	// on onDate whose interval intersects [start, end).
	ReservationsOverlapping(ctx context.Context, labID uint64, start, end time.Time, onDate time.Time) ([]model.Reservation, error)

	// CurrentReservations returns the lab's reservations in progress
	// at the given instant.  Used for walk-in occupancy queries, so
	// it is deliberately not day-scoped.
	CurrentReservations(ctx context.Context, labID uint64, now time.Time) ([]model.Reservation, error)

	// MemberReservationsByMode returns the member's reservations
	// created on onDate whose approved flag matches the given mode,
	// latest-ending first.
	MemberReservationsByMode(ctx context.Context, memberID uint64, approved bool, onDate time.Time) ([]model.Reservation, error)

	// CreateReservation persists a new reservation and populates its
	// ID and timestamps.  Returns ErrSlotTaken when the unique seat
	// slot constraint rejects the insert.
	CreateReservation(ctx context.Context, r *model.Reservation) error

	// PendingReservationsByLab returns the lab's unapproved
	// reservations created on onDate, sorted by end time descending.
	PendingReservationsByLab(ctx context.Context, labID uint64, onDate time.Time) ([]model.Reservation, error)

	// FindRoomLead returns the lead record for (lab, date), or
	// (nil, nil) when nobody leads the room that day.
	FindRoomLead(ctx context.Context, labID uint64, onDate time.Time) (*model.RoomLead, error)

	// UpsertRoomLead points the (lab, date) lead record at the given
	// member, inserting the row if it does not exist yet.  Last
	// writer wins under concurrency; (lab, date) uniqueness is
	// enforced by storage.
	UpsertRoomLead(ctx context.Context, labID uint64, onDate time.Time, memberID uint64) error
}

// TxStore is a Store whose operations can be grouped into a single
// storage transaction.  The engine runs the entire check-then-persist
// sequence of a booking inside one InTx call so the validation reads
// and the eventual insert observe a consistent snapshot.
type TxStore interface {
	Store

	// InTx runs fn against a transaction-bound Store.  A non-nil
	// error from fn rolls the transaction back and is returned
	// unchanged; otherwise the transaction commits.
	InTx(ctx context.Context, fn func(Store) error) error
}
