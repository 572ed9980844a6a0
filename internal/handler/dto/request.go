package dto

import "github.com/alr63095/ClubConnect/internal/domain"

type CreateClubRequest struct {
	Name   string   `json:"name" binding:"required"`
	Sports []string `json:"sports"`
}

type SlotPriceRequest struct {
	Time  string  `json:"time" binding:"required"`
	Price float64 `json:"price"`
}

type UpsertCourtRequest struct {
	ClubID       string             `json:"club_id" binding:"required,uuid"`
	Name         string             `json:"name" binding:"required"`
	Sport        string             `json:"sport" binding:"required"`
	Features     []string           `json:"features"`
	OpeningTime  string             `json:"opening_time" binding:"required"`
	ClosingTime  string             `json:"closing_time" binding:"required"`
	DefaultPrice float64            `json:"default_price"`
	SlotPrices   []SlotPriceRequest `json:"slot_prices"`
}

func (r UpsertCourtRequest) ToInput(courtID string) domain.UpsertCourtInput {
	prices := make([]domain.SlotPrice, 0, len(r.SlotPrices))
	for _, sp := range r.SlotPrices {
		prices = append(prices, domain.SlotPrice{Time: sp.Time, Price: sp.Price})
	}
	return domain.UpsertCourtInput{
		ID:           courtID,
		ClubID:       r.ClubID,
		Name:         r.Name,
		Sport:        r.Sport,
		Features:     r.Features,
		OpeningTime:  r.OpeningTime,
		ClosingTime:  r.ClosingTime,
		DefaultPrice: r.DefaultPrice,
		SlotPrices:   prices,
	}
}

type CreateBookingRequest struct {
	UserID    string   `json:"user_id" binding:"required,uuid"`
	CourtID   string   `json:"court_id" binding:"required,uuid"`
	Date      string   `json:"date" binding:"required"` // "2006-01-02"
	SlotTimes []string `json:"slot_times" binding:"required,min=1"`
}

type PublishRequest struct {
	OwnerID       string `json:"owner_id" binding:"required,uuid"`
	PlayersNeeded int    `json:"players_needed" binding:"required,gt=0"`
	SkillLevel    int    `json:"skill_level" binding:"required,min=1,max=5"`
}

type JoinRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

type JoinDecisionRequest struct {
	OwnerID string `json:"owner_id" binding:"required,uuid"`
	UserID  string `json:"user_id" binding:"required,uuid"`
}

type CreateUserRequest struct {
	Name           string   `json:"name" binding:"required"`
	Email          string   `json:"email" binding:"required,email"`
	Role           string   `json:"role" binding:"omitempty,oneof=PLAYER ADMIN SUPER_ADMIN"`
	ClubIDs        []string `json:"club_ids"`
	TelegramChatID *int64   `json:"telegram_chat_id"`
}
