package model

import "time"

// Reservation records a member's booking of a single seat in a lab
// room for a time window.  A reservation is created exactly once by
// the booking engine and never mutated afterwards, except for the
// Approved flag which a separate staff approval action may flip.
//
// Approved doubles as the booking mode: requests starting before the
// daily cutoff are auto-approved (true), requests at or after the
// cutoff start out pending (false) and require staff approval.
//
// Fields:
//  ID        – primary key identifier.
//  LabID     – lab room the seat belongs to.
//  MemberID  – member who booked the seat.
//  SeatNum   – seat label within the room (e.g. "A1").
//  StartTime – beginning of the reserved window.
//  EndTime   – end of the reserved window (exclusive).
//  Approved  – true when auto- or staff-approved, false while pending.
//  CreatedAt – creation timestamp; daily-scoped queries filter on its date.
//  UpdatedAt – last update timestamp.
type Reservation struct {
	ID        uint64    // reservations.id
	LabID     uint64    // reservations.lab_id
	MemberID  uint64    // reservations.member_id
	SeatNum   string    // reservations.seat_num
	StartTime time.Time // reservations.start_time
	EndTime   time.Time // reservations.end_time
	Approved  bool      // reservations.approved
	CreatedAt time.Time // reservations.created_at
	UpdatedAt time.Time // reservations.updated_at
}
