package dto

import (
	"time"

	"github.com/alr63095/ClubConnect/internal/domain"
	"github.com/alr63095/ClubConnect/internal/service"
)

type ClubResponse struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Sports []string `json:"sports"`
}

type CourtResponse struct {
	ID           string             `json:"id"`
	ClubID       string             `json:"club_id"`
	Name         string             `json:"name"`
	Sport        string             `json:"sport"`
	Features     []string           `json:"features"`
	OpeningTime  string             `json:"opening_time"`
	ClosingTime  string             `json:"closing_time"`
	DefaultPrice float64            `json:"default_price"`
	SlotPrices   []SlotPriceRequest `json:"slot_prices"`
}

type TimeSlotResponse struct {
	Time      string  `json:"time"`
	Available bool    `json:"available"`
	Price     float64 `json:"price"`
}

type CourtAvailabilityResponse struct {
	Court CourtResponse      `json:"court"`
	Slots []TimeSlotResponse `json:"slots"`
}

type ClubAvailabilityResponse struct {
	Club   ClubResponse                `json:"club"`
	Courts []CourtAvailabilityResponse `json:"courts"`
}

type BookingResponse struct {
	ID               string   `json:"id"`
	UserID           string   `json:"user_id"`
	CourtID          string   `json:"court_id"`
	ClubID           string   `json:"club_id"`
	StartTime        string   `json:"start_time"`
	EndTime          string   `json:"end_time"`
	TotalPrice       float64  `json:"total_price"`
	Status           string   `json:"status"`
	PlayersNeeded    int      `json:"players_needed,omitempty"`
	SkillLevel       int      `json:"skill_level,omitempty"`
	JoinedPlayerIDs  []string `json:"joined_player_ids,omitempty"`
	PendingPlayerIDs []string `json:"pending_player_ids,omitempty"`
	CreatedAt        string   `json:"created_at"`
}

type CancellationResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type OpenGameResponse struct {
	Booking BookingResponse `json:"booking"`
	Court   CourtResponse   `json:"court"`
	Club    ClubResponse    `json:"club"`
}

type UserResponse struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Role    string   `json:"role"`
	ClubIDs []string `json:"club_ids,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func ToClubResponse(c *domain.Club) ClubResponse {
	return ClubResponse{ID: c.ID, Name: c.Name, Sports: c.Sports}
}

func ToCourtResponse(c *domain.Court) CourtResponse {
	prices := make([]SlotPriceRequest, 0, len(c.SlotPrices))
	for _, sp := range c.SlotPrices {
		prices = append(prices, SlotPriceRequest{Time: sp.Time, Price: sp.Price})
	}
	return CourtResponse{
		ID:           c.ID,
		ClubID:       c.ClubID,
		Name:         c.Name,
		Sport:        c.Sport,
		Features:     c.Features,
		OpeningTime:  c.OpeningTime,
		ClosingTime:  c.ClosingTime,
		DefaultPrice: c.DefaultPrice,
		SlotPrices:   prices,
	}
}

func ToCourtAvailabilityResponse(a domain.CourtAvailability) CourtAvailabilityResponse {
	slots := make([]TimeSlotResponse, 0, len(a.Slots))
	for _, s := range a.Slots {
		slots = append(slots, TimeSlotResponse{Time: s.Time, Available: s.Available, Price: s.Price})
	}
	return CourtAvailabilityResponse{Court: ToCourtResponse(&a.Court), Slots: slots}
}

func ToClubAvailabilityResponse(a domain.ClubAvailability) ClubAvailabilityResponse {
	courts := make([]CourtAvailabilityResponse, 0, len(a.Courts))
	for _, c := range a.Courts {
		courts = append(courts, ToCourtAvailabilityResponse(c))
	}
	return ClubAvailabilityResponse{Club: ToClubResponse(&a.Club), Courts: courts}
}

func ToBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:               b.ID,
		UserID:           b.UserID,
		CourtID:          b.CourtID,
		ClubID:           b.ClubID,
		StartTime:        b.StartTime.Format(time.RFC3339),
		EndTime:          b.EndTime.Format(time.RFC3339),
		TotalPrice:       b.TotalPrice,
		Status:           string(b.Status),
		PlayersNeeded:    b.PlayersNeeded,
		SkillLevel:       b.SkillLevel,
		JoinedPlayerIDs:  b.JoinedPlayerIDs,
		PendingPlayerIDs: b.PendingPlayerIDs,
		CreatedAt:        b.CreatedAt.Format(time.RFC3339),
	}
}

func ToCancellationResponse(r *service.CancellationResult) CancellationResponse {
	return CancellationResponse{Status: string(r.Status), Message: r.Message}
}

func ToOpenGameResponse(g domain.OpenGame) OpenGameResponse {
	return OpenGameResponse{
		Booking: ToBookingResponse(&g.Booking),
		Court:   ToCourtResponse(&g.Court),
		Club:    ToClubResponse(&g.Club),
	}
}

func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Role:    string(u.Role),
		ClubIDs: u.ClubIDs,
	}
}
