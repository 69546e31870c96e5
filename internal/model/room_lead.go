package model

import "time"

// RoomLead designates the member responsible for a lab room's
// after-cutoff session on a given date.  At most one row exists per
// (lab, date); rotation overwrites MemberID in place rather than
// inserting a second row.  The lead is always the member whose
// pending reservation ends latest that day.
//
// MemberName and MemberStudentID are populated by queries that join
// the members table so callers can build a summary without a second
// lookup.
type RoomLead struct {
	ID              uint64    // room_leads.id
	LabID           uint64    // room_leads.lab_id
	MemberID        uint64    // room_leads.member_id
	LeadDate        time.Time // room_leads.lead_date (date only)
	CreatedAt       time.Time // room_leads.created_at
	UpdatedAt       time.Time // room_leads.updated_at
	MemberName      string    // joined from members.name
	MemberStudentID string    // joined from members.student_id
}
