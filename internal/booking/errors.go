// Package booking implements the decision engine that accepts,
// queues or rejects a single seat booking request for a lab room.
// It validates lecture conflicts, capacity headroom, duplicate
// bookings and seat collisions, enforces the after-cutoff room fill
// order, and rotates the room lead.  All persistence goes through
// the narrow Store interface so the engine itself has no idea which
// database sits behind it.
package booking

import "errors"

// Kind classifies a booking failure.  Every failure the engine can
// produce is an expected, recoverable-by-caller condition; handlers
// pattern-match on the kind to pick an HTTP status.
type Kind int

const (
	// KindNotFound means the room number or member id could not be
	// resolved.
	KindNotFound Kind = iota + 1
	// KindLecturePresent means the requested window conflicts with a
	// scheduled lecture.  Callers may respond with occupancy data
	// instead of a bare error.
	KindLecturePresent
	// KindCapacityExceeded means the team size exceeds the room's
	// remaining capacity for the window.
	KindCapacityExceeded
	// KindAlreadyBooked means the member already holds a reservation
	// in the same mode today, or the seat is taken for the window.
	// Storage-level duplicate-key violations also surface as this
	// kind, never as an internal fault.
	KindAlreadyBooked
	// KindFillOrder means an after-cutoff request targeted a
	// lower-priority room while a higher-priority room still had
	// space.
	KindFillOrder
	// KindLogic means a caller-ordering bug, such as rotating the
	// room lead with no qualifying reservation persisted.  Fatal to
	// the request, not to the process.
	KindLogic
)

// Error is the tagged failure type returned by the engine.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(k Kind, msg string) *Error { return &Error{Kind: k, Message: msg} }

// KindOf extracts the failure kind from an error returned by the
// engine.  It returns 0 for nil or foreign errors (those should be
// treated as internal faults).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Sentinel errors that form part of the Store contract.  Store
// implementations return these so the engine can translate storage
// outcomes into failure kinds without depending on any driver.
var (
	// ErrLabNotFound is returned by FindLabByRoomNumber for an
	// unknown room number.
	ErrLabNotFound = errors.New("lab not found")
	// ErrMemberNotFound is returned by FindMemberByStudentID for an
	// unknown student id.
	ErrMemberNotFound = errors.New("member not found")
	// ErrSlotTaken is returned by CreateReservation when the storage
	// layer's unique constraint on (lab, seat, start time) rejects
	// the insert; it is the race-lost backstop behind the in-engine
	// seat conflict check.
	ErrSlotTaken = errors.New("reservation slot taken")
)
