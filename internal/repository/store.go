package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/lab-seat-reservation/internal/booking"
	"github.com/iliyamo/lab-seat-reservation/internal/model"
)

// queryer is the subset of database operations shared by *sql.DB and
// *sql.Tx.  BookingStore runs against either: plain reads outside a
// transaction, the full booking sequence inside one.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// BookingStore is the MySQL implementation of the booking engine's
// Store/TxStore contract.  Inside a transaction the validation reads
// take row locks (FOR UPDATE) so the check-then-persist sequence of a
// booking observes a consistent snapshot relative to its insert; the
// uq_reservation_slot unique key on (lab_id, seat_num, start_time)
// backstops the race when isolation falls short.
type BookingStore struct {
	db *sql.DB
	q  queryer
}

// NewBookingStore returns a BookingStore bound to the given database.
func NewBookingStore(db *sql.DB) *BookingStore { return &BookingStore{db: db, q: db} }

// InTx runs fn against a transaction-bound copy of the store.  A
// non-nil error from fn rolls back and is returned unchanged.
func (s *BookingStore) InTx(ctx context.Context, fn func(booking.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(&BookingStore{db: s.db, q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// locking returns a FOR UPDATE suffix when running inside a
// transaction, and nothing otherwise.
func (s *BookingStore) locking() string {
	if _, ok := s.q.(*sql.Tx); ok {
		return " FOR UPDATE"
	}
	return ""
}

// FindLabByRoomNumber resolves a lab by room number.
func (s *BookingStore) FindLabByRoomNumber(ctx context.Context, roomNumber string) (*model.Lab, error) {
	var lab model.Lab
	err := s.q.QueryRowContext(ctx,
		"SELECT id, room_number, capacity, created_at, updated_at FROM labs WHERE room_number=? LIMIT 1",
		roomNumber).Scan(&lab.ID, &lab.RoomNumber, &lab.Capacity, &lab.CreatedAt, &lab.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, booking.ErrLabNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lab, nil
}

// FindMemberByStudentID resolves a member by student id.
func (s *BookingStore) FindMemberByStudentID(ctx context.Context, studentID string) (*model.Member, error) {
	var m model.Member
	err := s.q.QueryRowContext(ctx,
		"SELECT id,student_id,name,password_hash,role,is_active,created_at,updated_at FROM members WHERE student_id=? LIMIT 1",
		studentID).Scan(&m.ID, &m.StudentID, &m.Name, &m.PasswordHash, &m.Role, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, booking.ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// LectureOverlap reports whether a lecture occupies the lab during
// the clock-time range of [start, end] on the given weekday, within a
// term containing onDate.  Past-term timetables may stay in the table
// without affecting the answer.
func (s *BookingStore) LectureOverlap(ctx context.Context, labID uint64, day string, start, end time.Time, onDate time.Time) (bool, error) {
	var n int
	err := s.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM lectures
		 WHERE lab_id = ? AND day = ?
		   AND end_time >= ? AND start_time <= ?
		   AND start_date <= ? AND end_date >= ?`,
		labID, day,
		start.Format("15:04:05"), end.Format("15:04:05"),
		onDate.Format("2006-01-02"), onDate.Format("2006-01-02"),
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ActiveReservationCount counts reservations intersecting the window,
// regardless of approval state.
func (s *BookingStore) ActiveReservationCount(ctx context.Context, labID uint64, start, end time.Time) (int, error) {
	var n int
	err := s.q.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reservations WHERE lab_id = ? AND end_time > ? AND start_time < ?"+s.locking(),
		labID, start, end).Scan(&n)
	return n, err
}

const reservationSelect = `SELECT id, lab_id, member_id, seat_num, start_time, end_time, approved, created_at, updated_at FROM reservations`

func (s *BookingStore) scanReservations(rows *sql.Rows) ([]model.Reservation, error) {
	defer rows.Close()
	var list []model.Reservation
	for rows.Next() {
		var r model.Reservation
		if err := rows.Scan(&r.ID, &r.LabID, &r.MemberID, &r.SeatNum,
			&r.StartTime, &r.EndTime, &r.Approved, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, r)
	}
	return list, rows.Err()
}

// ReservationsOverlapping returns the lab's reservations created on
// onDate that intersect [start, end).
func (s *BookingStore) ReservationsOverlapping(ctx context.Context, labID uint64, start, end time.Time, onDate time.Time) ([]model.Reservation, error) {
	rows, err := s.q.QueryContext(ctx,
		reservationSelect+" WHERE lab_id = ? AND end_time > ? AND start_time < ? AND DATE(created_at) = ?"+s.locking(),
		labID, start, end, onDate.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	return s.scanReservations(rows)
}

// CurrentReservations returns the lab's reservations in progress at
// the given instant.  Not day-scoped: a window that started yesterday
// and has not ended still occupies its seat.
func (s *BookingStore) CurrentReservations(ctx context.Context, labID uint64, now time.Time) ([]model.Reservation, error) {
	rows, err := s.q.QueryContext(ctx,
		reservationSelect+" WHERE lab_id = ? AND end_time > ? AND start_time < ?",
		labID, now, now)
	if err != nil {
		return nil, err
	}
	return s.scanReservations(rows)
}

// MemberReservationsByMode returns the member's reservations created
// on onDate with the given approved flag, latest-ending first.
func (s *BookingStore) MemberReservationsByMode(ctx context.Context, memberID uint64, approved bool, onDate time.Time) ([]model.Reservation, error) {
	rows, err := s.q.QueryContext(ctx,
		reservationSelect+" WHERE member_id = ? AND approved = ? AND DATE(created_at) = ? ORDER BY end_time DESC"+s.locking(),
		memberID, approved, onDate.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	return s.scanReservations(rows)
}

// CreateReservation inserts a reservation and queries the row back to
// populate generated fields.  A duplicate-key rejection from the
// uq_reservation_slot index surfaces as booking.ErrSlotTaken.
func (s *BookingStore) CreateReservation(ctx context.Context, r *model.Reservation) error {
	res, err := s.q.ExecContext(ctx,
		"INSERT INTO reservations (lab_id, member_id, seat_num, start_time, end_time, approved) VALUES (?,?,?,?,?,?)",
		r.LabID, r.MemberID, r.SeatNum, r.StartTime, r.EndTime, r.Approved)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return booking.ErrSlotTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	r.ID = uint64(id)
	return s.q.QueryRowContext(ctx,
		reservationSelect+" WHERE id = ?", r.ID).Scan(
		&r.ID, &r.LabID, &r.MemberID, &r.SeatNum,
		&r.StartTime, &r.EndTime, &r.Approved, &r.CreatedAt, &r.UpdatedAt)
}

// PendingReservationsByLab returns the lab's unapproved reservations
// created on onDate, latest-ending first (the head is the room lead
// candidate).
func (s *BookingStore) PendingReservationsByLab(ctx context.Context, labID uint64, onDate time.Time) ([]model.Reservation, error) {
	rows, err := s.q.QueryContext(ctx,
		reservationSelect+" WHERE lab_id = ? AND approved = FALSE AND DATE(created_at) = ? ORDER BY end_time DESC"+s.locking(),
		labID, onDate.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	return s.scanReservations(rows)
}

// FindRoomLead returns the (lab, date) lead joined with the member
// summary, or (nil, nil) when nobody leads the room that day.
func (s *BookingStore) FindRoomLead(ctx context.Context, labID uint64, onDate time.Time) (*model.RoomLead, error) {
	var lead model.RoomLead
	err := s.q.QueryRowContext(ctx,
		`SELECT rl.id, rl.lab_id, rl.member_id, rl.lead_date, rl.created_at, rl.updated_at, m.name, m.student_id
		 FROM room_leads rl
		 JOIN members m ON m.id = rl.member_id
		 WHERE rl.lab_id = ? AND rl.lead_date = ? LIMIT 1`,
		labID, onDate.Format("2006-01-02")).Scan(
		&lead.ID, &lead.LabID, &lead.MemberID, &lead.LeadDate,
		&lead.CreatedAt, &lead.UpdatedAt, &lead.MemberName, &lead.MemberStudentID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// UpsertRoomLead points the (lab, date) lead at the member.  The
// uq_room_lead_day unique key on (lab_id, lead_date) turns concurrent
// rotations into last-writer-wins updates instead of duplicate rows.
func (s *BookingStore) UpsertRoomLead(ctx context.Context, labID uint64, onDate time.Time, memberID uint64) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO room_leads (lab_id, member_id, lead_date) VALUES (?,?,?)
		 ON DUPLICATE KEY UPDATE member_id = VALUES(member_id)`,
		labID, memberID, onDate.Format("2006-01-02"))
	return err
}
