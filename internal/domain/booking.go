package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed           BookingStatus = "CONFIRMED"
	BookingStatusPendingCancellation BookingStatus = "PENDING_CANCELLATION"
	BookingStatusCancelled           BookingStatus = "CANCELLED"
)

// ActiveStatuses are the statuses that keep a booking's interval reserved.
var ActiveStatuses = []BookingStatus{BookingStatusConfirmed, BookingStatusPendingCancellation}

type Booking struct {
	ID         string        `json:"id"`
	UserID     string        `json:"user_id"`
	CourtID    string        `json:"court_id"`
	ClubID     string        `json:"club_id"`
	StartTime  time.Time     `json:"start_time"`
	EndTime    time.Time     `json:"end_time"`
	TotalPrice float64       `json:"total_price"`
	Status     BookingStatus `json:"status"`

	// Forum fields. PlayersNeeded == 0 means the booking was never published.
	PlayersNeeded    int      `json:"players_needed,omitempty"`
	SkillLevel       int      `json:"skill_level,omitempty"`
	JoinedPlayerIDs  []string `json:"joined_player_ids,omitempty"`
	PendingPlayerIDs []string `json:"pending_player_ids,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) IsActive() bool {
	return b.Status != BookingStatusCancelled
}

func (b *Booking) IsPublished() bool {
	return b.PlayersNeeded > 0
}

// OpenSpots is the number of players still wanted for a published game.
func (b *Booking) OpenSpots() int {
	if !b.IsPublished() {
		return 0
	}
	return b.PlayersNeeded - len(b.JoinedPlayerIDs)
}

func (b *Booking) IsFull() bool {
	return b.IsPublished() && b.OpenSpots() <= 0
}

func (b *Booking) HasJoined(userID string) bool {
	return contains(b.JoinedPlayerIDs, userID)
}

func (b *Booking) HasRequested(userID string) bool {
	return contains(b.PendingPlayerIDs, userID)
}

// OpenGame is the forum view of a published booking joined with its court
// and club. Built by the query layer, never stored.
type OpenGame struct {
	Booking Booking `json:"booking"`
	Court   Court   `json:"court"`
	Club    Club    `json:"club"`
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
