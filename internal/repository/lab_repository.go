package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/lab-seat-reservation/internal/model"
)

// LabRepo provides read access to the 'labs' table.  Labs are
// provisioned out of band (seed data or an admin script) and never
// change at runtime, so the repository exposes lookups only.
type LabRepo struct{ DB *sql.DB }

func NewLabRepo(db *sql.DB) *LabRepo { return &LabRepo{DB: db} }

// GetByRoomNumber resolves a lab by its room number.  Returns
// ErrLabNotFound when no such room exists.
func (r *LabRepo) GetByRoomNumber(ctx context.Context, roomNumber string) (model.Lab, error) {
	var lab model.Lab
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, room_number, capacity, created_at, updated_at FROM labs WHERE room_number=? LIMIT 1",
		roomNumber).Scan(&lab.ID, &lab.RoomNumber, &lab.Capacity, &lab.CreatedAt, &lab.UpdatedAt)
	if err == sql.ErrNoRows {
		return lab, ErrLabNotFound
	}
	return lab, err
}

// List returns all provisioned labs ordered by room number.
func (r *LabRepo) List(ctx context.Context) ([]model.Lab, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, room_number, capacity, created_at, updated_at FROM labs ORDER BY room_number")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var labs []model.Lab
	for rows.Next() {
		var lab model.Lab
		if err := rows.Scan(&lab.ID, &lab.RoomNumber, &lab.Capacity, &lab.CreatedAt, &lab.UpdatedAt); err != nil {
			return nil, err
		}
		labs = append(labs, lab)
	}
	return labs, rows.Err()
}

// LeadOn returns the room lead for the lab on the given date joined
// with the member summary, or (nil, nil) when none is designated.
func (r *LabRepo) LeadOn(ctx context.Context, labID uint64, onDate string) (*model.RoomLead, error) {
	var lead model.RoomLead
	err := r.DB.QueryRowContext(ctx,
		`SELECT rl.id, rl.lab_id, rl.member_id, rl.lead_date, rl.created_at, rl.updated_at, m.name, m.student_id
		 FROM room_leads rl
		 JOIN members m ON m.id = rl.member_id
		 WHERE rl.lab_id = ? AND rl.lead_date = ? LIMIT 1`,
		labID, onDate).Scan(
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
