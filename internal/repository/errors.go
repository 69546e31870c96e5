// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrLabNotFound indicates that a room number could not be
// resolved, while ErrScheduleConflict signals that a lecture cannot
// be added because its weekly slot collides with one already on the
// timetable.
package repository

import "errors"

// ErrLabNotFound is returned when no lab exists for the given room
// number. Handlers should translate this into an HTTP 400 response.
var ErrLabNotFound = errors.New("lab not found")

// ErrMemberNotFound is returned when no member exists for the given
// student id or primary key. Login translates it into an HTTP 401 so
// unknown ids are indistinguishable from wrong passwords.
var ErrMemberNotFound = errors.New("member not found")

// ErrScheduleConflict is returned when a lecture being added or
// replaced overlaps an existing lecture in the same room on the same
// weekday within the same term. Handlers should translate this into
// an HTTP 409 response.
var ErrScheduleConflict = errors.New("lecture schedule conflict")
