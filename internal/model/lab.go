package model

import "time"

// Lab represents a shared lab room that students can reserve seats in.
// Labs are provisioned once by an administrator and are treated as
// immutable afterwards; the Capacity field is authoritative for every
// headroom check performed by the booking engine.
//
// Fields:
//  ID         – primary key identifier.
//  RoomNumber – human-facing room number, unique (e.g. "911").
//  Capacity   – total number of seats in the room.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Lab struct {
	ID         uint64    // labs.id
	RoomNumber string    // labs.room_number
	Capacity   int       // labs.capacity
	CreatedAt  time.Time // labs.created_at
	UpdatedAt  time.Time // labs.updated_at
}
