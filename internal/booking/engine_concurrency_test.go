package booking

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serialTxStore wraps fakeStore so each InTx call observes a
// consistent snapshot, the way the MySQL store's row locks serialize
// concurrent booking transactions.
type serialTxStore struct {
	*fakeStore
	mu sync.Mutex
}

func (s *serialTxStore) InTx(_ context.Context, fn func(Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.fakeStore)
}

func TestBook_ConcurrentRequestsNeverOverbook(t *testing.T) {
	f := newFakeStore()
	f.addLab(1, "911", 4)
	for i := 0; i < 10; i++ {
		f.addMember(uint64(i+1), fmt.Sprintf("s%d", i+1), fmt.Sprintf("Member %d", i+1))
	}
	store := &serialTxStore{fakeStore: f}
	eng := NewEngine(store, fixedClock{t: at(12, 0)}, DefaultCutoff, []string{"911"})

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = eng.Book(context.Background(), Request{
				StudentID: fmt.Sprintf("s%d", i+1), RoomNumber: "911",
				SeatNum: fmt.Sprintf("A%d", i+1), TeamSize: 1,
				StartTime: at(10, 0), EndTime: at(12, 0),
			})
		}(i)
	}
	wg.Wait()

	won, lost := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case KindOf(err) == KindCapacityExceeded:
			lost++
		default:
			t.Fatalf("unexpected failure: %v", err)
		}
	}
	assert.Equal(t, 4, won, "exactly capacity many bookings may win")
	assert.Equal(t, 6, lost)
	require.Len(t, f.reservations, 4)
}

func TestBook_ConcurrentIdenticalRequestsOneWins(t *testing.T) {
	f := newFakeStore()
	f.addLab(1, "911", 4)
	f.addMember(1, "s100", "Dana")
	f.addMember(2, "s200", "Riley")
	store := &serialTxStore{fakeStore: f}
	eng := NewEngine(store, fixedClock{t: at(12, 0)}, DefaultCutoff, []string{"911"})

	students := []string{"s100", "s200"}
	var wg sync.WaitGroup
	errs := make([]error, len(students))
	for i, sid := range students {
		wg.Add(1)
		go func(i int, sid string) {
			defer wg.Done()
			_, errs[i] = eng.Book(context.Background(), Request{
				StudentID: sid, RoomNumber: "911", SeatNum: "A1",
				TeamSize: 1, StartTime: at(10, 0), EndTime: at(12, 0),
			})
		}(i, sid)
	}
	wg.Wait()

	won, taken := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case KindOf(err) == KindAlreadyBooked:
			taken++
		default:
			t.Fatalf("unexpected failure: %v", err)
		}
	}
	assert.Equal(t, 1, won, "exactly one identical request may win the seat")
	assert.Equal(t, 1, taken)
	require.Len(t, f.reservations, 1)
}
