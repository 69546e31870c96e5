package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/lab-seat-reservation/internal/model"
	"github.com/iliyamo/lab-seat-reservation/internal/utils"
)

// MemberRepo provides access to the 'members' table.
type MemberRepo struct{ DB *sql.DB }

func NewMemberRepo(db *sql.DB) *MemberRepo { return &MemberRepo{DB: db} }

var ErrStudentIDExists = errors.New("student id already exists")

// Create inserts a member and returns its ID.
func (r *MemberRepo) Create(ctx context.Context, studentID, name, password, role string, cost int) (uint64, error) {
	studentID = strings.TrimSpace(studentID)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO members (student_id, name, password_hash, role) VALUES (?,?,?,?)",
		studentID, name, hash, role)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrStudentIDExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByStudentID fetches a member by their external student id.
// Returns ErrMemberNotFound when no account exists for the id.
func (r *MemberRepo) GetByStudentID(ctx context.Context, studentID string) (model.Member, error) {
	studentID = strings.TrimSpace(studentID)
	var m model.Member
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,student_id,name,password_hash,role,is_active,created_at,updated_at FROM members WHERE student_id=? LIMIT 1",
		studentID).Scan(&m.ID, &m.StudentID, &m.Name, &m.PasswordHash, &m.Role, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return m, ErrMemberNotFound
	}
	return m, err
}

// GetByID fetches a member by primary key.  Returns ErrMemberNotFound
// when the row is gone.
func (r *MemberRepo) GetByID(ctx context.Context, id uint64) (model.Member, error) {
	var m model.Member
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,student_id,name,password_hash,role,is_active,created_at,updated_at FROM members WHERE id=? LIMIT 1",
		id).Scan(&m.ID, &m.StudentID, &m.Name, &m.PasswordHash, &m.Role, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return m, ErrMemberNotFound
	}
	return m, err
}
