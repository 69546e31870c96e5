package repository

import (
	"context"
	"database/sql"
	"time"
)

// ReservationRepo provides the read side of reservations used by
// handlers: per-member listings, the assistant's pending queue and
// approved-occupancy windows.  Writes happen exclusively inside the
// booking engine's transaction through the BookingStore, never here.
// All timestamp fields are assumed to be stored in UTC.
type ReservationRepo struct{ DB *sql.DB }

func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{DB: db} }

// ReservationDetail is a reservation joined with its room number and
// member summary for display.  It is returned by the listing queries.
type ReservationDetail struct {
	ID         uint64    `json:"id"`
	RoomNumber string    `json:"room_number"`
	StudentID  string    `json:"student_id"`
	MemberName string    `json:"member_name"`
	SeatNum    string    `json:"seat_num"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Approved   bool      `json:"approved"`
}

const detailSelect = `SELECT r.id, l.room_number, m.student_id, m.name, r.seat_num, r.start_time, r.end_time, r.approved
	FROM reservations r
	JOIN labs l ON l.id = r.lab_id
	JOIN members m ON m.id = r.member_id`

func scanDetails(rows *sql.Rows) ([]ReservationDetail, error) {
	defer rows.Close()
	var details []ReservationDetail
	for rows.Next() {
		var d ReservationDetail
		if err := rows.Scan(&d.ID, &d.RoomNumber, &d.StudentID, &d.MemberName,
			&d.SeatNum, &d.StartTime, &d.EndTime, &d.Approved); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if details == nil {
		details = []ReservationDetail{}
	}
	return details, rows.Err()
}

// AllByMemberToday returns everything the member booked today,
// earliest start first.
func (r *ReservationRepo) AllByMemberToday(ctx context.Context, memberID uint64, today time.Time) ([]ReservationDetail, error) {
	rows, err := r.DB.QueryContext(ctx,
		detailSelect+` WHERE r.member_id = ? AND DATE(r.created_at) = ? ORDER BY r.start_time ASC`,
		memberID, today.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	return scanDetails(rows)
}

// NextForMember returns the member's first reservation that has not
// ended yet, or (nil, nil) when none is in progress or upcoming.
func (r *ReservationRepo) NextForMember(ctx context.Context, memberID uint64, now time.Time) (*ReservationDetail, error) {
	row := r.DB.QueryRowContext(ctx,
		detailSelect+` WHERE r.member_id = ? AND r.end_time > ? ORDER BY r.start_time ASC LIMIT 1`,
		memberID, now)
	var d ReservationDetail
	err := row.Scan(&d.ID, &d.RoomNumber, &d.StudentID, &d.MemberName,
		&d.SeatNum, &d.StartTime, &d.EndTime, &d.Approved)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// PendingToday returns today's unapproved reservations across all
// rooms, earliest start first.  This is the assistant's approval
// queue.
func (r *ReservationRepo) PendingToday(ctx context.Context, today time.Time) ([]ReservationDetail, error) {
	rows, err := r.DB.QueryContext(ctx,
		detailSelect+` WHERE r.approved = FALSE AND DATE(r.created_at) = ? ORDER BY r.start_time ASC`,
		today.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	return scanDetails(rows)
}

// ApprovedOverlapping returns the room's approved reservations whose
// interval intersects [start, end), earliest start first.
func (r *ReservationRepo) ApprovedOverlapping(ctx context.Context, labID uint64, start, end time.Time) ([]ReservationDetail, error) {
	rows, err := r.DB.QueryContext(ctx,
		detailSelect+` WHERE r.lab_id = ? AND r.approved = TRUE AND r.end_time > ? AND r.start_time < ? ORDER BY r.start_time ASC`,
		labID, start, end)
	if err != nil {
		return nil, err
	}
	return scanDetails(rows)
}
