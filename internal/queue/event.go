// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationPendingEvent is published when an after-cutoff booking is
// accepted and enters the staff approval queue.  It carries enough
// information for downstream consumers to notify assistants or feed
// dashboards without querying the primary database.
type ReservationPendingEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	RoomNumber    string `json:"room_number"`
	StudentID     string `json:"student_id"`
	MemberName    string `json:"member_name"`
	SeatNum       string `json:"seat_num"`
	StartsAt      string `json:"starts_at"`
	EndsAt        string `json:"ends_at"`
	RequestedAt   string `json:"requested_at"`
}
