package booking

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/iliyamo/lab-seat-reservation/internal/model"
)

// fakeStore is an in-memory TxStore for engine tests.  It keeps the
// same half-open overlap and daily-scoping semantics as the MySQL
// implementation.  Individual methods can be overridden through the
// fn fields to force failures.
type fakeStore struct {
	labs    []*model.Lab
	members []*model.Member

	reservations []*model.Reservation
	leads        map[string]uint64 // "labID|YYYY-MM-DD" -> member id
	nextID       uint64

	lectureHit bool

	createFn func(ctx context.Context, r *model.Reservation) error
}

func newFakeStore() *fakeStore {
	return &fakeStore{leads: map[string]uint64{}, nextID: 1}
}

func (f *fakeStore) addLab(id uint64, room string, capacity int) *model.Lab {
	lab := &model.Lab{ID: id, RoomNumber: room, Capacity: capacity}
	f.labs = append(f.labs, lab)
	return lab
}

func (f *fakeStore) addMember(id uint64, studentID, name string) *model.Member {
	m := &model.Member{ID: id, StudentID: studentID, Name: name, Role: "STUDENT", IsActive: true}
	f.members = append(f.members, m)
	return m
}

func (f *fakeStore) seedReservation(labID, memberID uint64, seat string, start, end time.Time, approved bool) *model.Reservation {
	r := &model.Reservation{
		ID: f.nextID, LabID: labID, MemberID: memberID, SeatNum: seat,
		StartTime: start, EndTime: end, Approved: approved, CreatedAt: start,
	}
	f.nextID++
	f.reservations = append(f.reservations, r)
	return r
}

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aEnd.After(bStart) && aStart.Before(bEnd)
}

func sameDate(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

func leadKey(labID uint64, onDate time.Time) string {
	return fmt.Sprintf("%d|%s", labID, onDate.Format("2006-01-02"))
}

func (f *fakeStore) FindLabByRoomNumber(_ context.Context, roomNumber string) (*model.Lab, error) {
	for _, lab := range f.labs {
		if lab.RoomNumber == roomNumber {
			return lab, nil
		}
	}
	return nil, ErrLabNotFound
}

func (f *fakeStore) FindMemberByStudentID(_ context.Context, studentID string) (*model.Member, error) {
	for _, m := range f.members {
		if m.StudentID == studentID {
			return m, nil
		}
	}
	return nil, ErrMemberNotFound
}

func (f *fakeStore) LectureOverlap(context.Context, uint64, string, time.Time, time.Time, time.Time) (bool, error) {
	return f.lectureHit, nil
}

func (f *fakeStore) ActiveReservationCount(_ context.Context, labID uint64, start, end time.Time) (int, error) {
	n := 0
	for _, r := range f.reservations {
		if r.LabID == labID && overlaps(r.StartTime, r.EndTime, start, end) {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) ReservationsOverlapping(_ context.Context, labID uint64, start, end time.Time, onDate time.Time) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, r := range f.reservations {
		if r.LabID == labID && sameDate(r.CreatedAt, onDate) && overlaps(r.StartTime, r.EndTime, start, end) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStore) CurrentReservations(_ context.Context, labID uint64, now time.Time) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, r := range f.reservations {
		if r.LabID == labID && !now.Before(r.StartTime) && now.Before(r.EndTime) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStore) MemberReservationsByMode(_ context.Context, memberID uint64, approved bool, onDate time.Time) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, r := range f.reservations {
		if r.MemberID == memberID && r.Approved == approved && sameDate(r.CreatedAt, onDate) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EndTime.After(out[j].EndTime) })
	return out, nil
}

func (f *fakeStore) CreateReservation(ctx context.Context, r *model.Reservation) error {
	if f.createFn != nil {
		return f.createFn(ctx, r)
	}
	r.ID = f.nextID
	f.nextID++
	if r.CreatedAt.IsZero() {
		r.CreatedAt = r.StartTime
	}
	f.reservations = append(f.reservations, r)
	return nil
}

func (f *fakeStore) PendingReservationsByLab(_ context.Context, labID uint64, onDate time.Time) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, r := range f.reservations {
		if r.LabID == labID && !r.Approved && sameDate(r.CreatedAt, onDate) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EndTime.After(out[j].EndTime) })
	return out, nil
}

func (f *fakeStore) FindRoomLead(_ context.Context, labID uint64, onDate time.Time) (*model.RoomLead, error) {
	memberID, ok := f.leads[leadKey(labID, onDate)]
	if !ok {
		return nil, nil
	}
	lead := &model.RoomLead{LabID: labID, MemberID: memberID}
	for _, m := range f.members {
		if m.ID == memberID {
			lead.MemberName = m.Name
			lead.MemberStudentID = m.StudentID
		}
	}
	return lead, nil
}

func (f *fakeStore) UpsertRoomLead(_ context.Context, labID uint64, onDate time.Time, memberID uint64) error {
	f.leads[leadKey(labID, onDate)] = memberID
	return nil
}

// InTx runs fn against the fake itself; the engine only cares that
// the sequence observes one consistent store.
func (f *fakeStore) InTx(_ context.Context, fn func(Store) error) error {
	return fn(f)
}

// fixedClock pins the engine's "now" to a single instant.
type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }
