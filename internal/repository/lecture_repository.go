package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/lab-seat-reservation/internal/model"
)

// LectureRepo provides access to the 'lectures' table.  Lectures are
// the class timetable: weekly recurring slots bounded by term dates.
// The booking engine only reads them as a conflict oracle; assistants
// manage the timetable through the bulk add / replace / delete
// operations below.  All sessions of one course share a course code,
// so replace and delete are code-scoped.
type LectureRepo struct{ DB *sql.DB }

func NewLectureRepo(db *sql.DB) *LectureRepo { return &LectureRepo{DB: db} }

// HasOverlap reports whether any lecture in the room collides with
// the weekly slot described by (day, startTime..endTime) during a
// term overlapping [startDate, endDate].  Clock times are "HH:MM:SS"
// strings matching the TIME columns.
func (r *LectureRepo) HasOverlap(ctx context.Context, labID uint64, day, startTime, endTime string, startDate, endDate time.Time) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM lectures
		 WHERE lab_id = ? AND day = ?
		   AND end_time > ? AND start_time < ?
		   AND start_date <= ? AND end_date >= ?`,
		labID, day, startTime, endTime,
		endDate.Format("2006-01-02"), startDate.Format("2006-01-02"),
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ExistsByCode reports whether any lecture carries the course code.
func (r *LectureRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM lectures WHERE code = ?", code).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreateTx inserts a lecture within an existing transaction and
// populates its generated ID.  The caller must commit or rollback.
func (r *LectureRepo) CreateTx(ctx context.Context, tx *sql.Tx, lec *model.Lecture) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO lectures (lab_id, title, professor, code, day, start_date, end_date, start_time, end_time)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		lec.LabID, lec.Title, lec.Professor, lec.Code, lec.Day,
		lec.StartDate.Format("2006-01-02"), lec.EndDate.Format("2006-01-02"),
		lec.StartTime, lec.EndTime)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	lec.ID = uint64(id)
	return nil
}

// HasOverlapTx is HasOverlap scoped to an existing transaction, used
// while replacing a course's timetable so the check observes the
// deletions made earlier in the same transaction.
func (r *LectureRepo) HasOverlapTx(ctx context.Context, tx *sql.Tx, labID uint64, day, startTime, endTime string, startDate, endDate time.Time) (bool, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM lectures
		 WHERE lab_id = ? AND day = ?
		   AND end_time > ? AND start_time < ?
		   AND start_date <= ? AND end_date >= ?`,
		labID, day, startTime, endTime,
		endDate.Format("2006-01-02"), startDate.Format("2006-01-02"),
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteAllByCodeTx removes every lecture of a course within an
// existing transaction and returns the number of rows removed.
func (r *LectureRepo) DeleteAllByCodeTx(ctx context.Context, tx *sql.Tx, code string) (int64, error) {
	res, err := tx.ExecContext(ctx, "DELETE FROM lectures WHERE code = ?", code)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteAllByCode removes every lecture of a course outside a
// transaction.
func (r *LectureRepo) DeleteAllByCode(ctx context.Context, code string) (int64, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM lectures WHERE code = ?", code)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListByLab returns the lab's timetable ordered by weekday and start
// time.  Rows outside the current term are included; callers filter
// if they need in-session lectures only.
func (r *LectureRepo) ListByLab(ctx context.Context, labID uint64) ([]model.Lecture, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, lab_id, title, professor, code, day, start_date, end_date, start_time, end_time
		 FROM lectures WHERE lab_id = ?
		 ORDER BY FIELD(day,'Monday','Tuesday','Wednesday','Thursday','Friday','Saturday','Sunday'), start_time`,
		labID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lectures []model.Lecture
	for rows.Next() {
		var lec model.Lecture
		if err := rows.Scan(&lec.ID, &lec.LabID, &lec.Title, &lec.Professor, &lec.Code,
			&lec.Day, &lec.StartDate, &lec.EndDate, &lec.StartTime, &lec.EndTime); err != nil {
			return nil, err
		}
		lectures = append(lectures, lec)
	}
	return lectures, rows.Err()
}
