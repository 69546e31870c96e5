package model

import "time"

// Lecture describes a scheduled class that occupies a lab room.  A
// lecture recurs weekly on a fixed day of week between StartDate and
// EndDate (the term bounds).  The booking engine reads lectures only
// as a conflict oracle: a lab in lecture use can never be reserved.
//
// StartTime and EndTime are clock times within the day stored in
// MySQL TIME columns; they are kept as "15:04:05" strings because the
// driver does not map TIME to time.Time.
//
// Fields:
//  ID        – primary key identifier.
//  LabID     – lab the lecture takes place in.
//  Title     – course title.
//  Professor – lecturer responsible for the course.
//  Code      – course code; all sessions of one course share a code.
//  Day       – English weekday name (e.g. "Monday").
//  StartDate – first day of the term the lecture runs in.
//  EndDate   – last day of the term.
//  StartTime – daily start clock time ("HH:MM:SS").
//  EndTime   – daily end clock time ("HH:MM:SS").
type Lecture struct {
	ID        uint64    // lectures.id
	LabID     uint64    // lectures.lab_id
	Title     string    // lectures.title
	Professor string    // lectures.professor
	Code      string    // lectures.code
	Day       string    // lectures.day
	StartDate time.Time // lectures.start_date
	EndDate   time.Time // lectures.end_date
	StartTime string    // lectures.start_time
	EndTime   string    // lectures.end_time
}
