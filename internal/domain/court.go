package domain

import "time"

// SlotPrice overrides the court's default price for one grid slot.
type SlotPrice struct {
	Time  string  `json:"time"`
	Price float64 `json:"price"`
}

type Court struct {
	ID           string      `json:"id"`
	ClubID       string      `json:"club_id"`
	Name         string      `json:"name"`
	Sport        string      `json:"sport"`
	Features     []string    `json:"features"`
	OpeningTime  string      `json:"opening_time"`
	ClosingTime  string      `json:"closing_time"`
	DefaultPrice float64     `json:"default_price"`
	SlotPrices   []SlotPrice `json:"slot_prices"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// PriceFor resolves the price of the slot starting at timeOfDay: the exact
// override if one exists, the court default otherwise.
func (c *Court) PriceFor(timeOfDay string) float64 {
	for _, sp := range c.SlotPrices {
		if sp.Time == timeOfDay {
			return sp.Price
		}
	}
	return c.DefaultPrice
}

// SlotTimes generates the court's bookable grid for one day.
func (c *Court) SlotTimes() ([]string, error) {
	return SlotTimes(c.OpeningTime, c.ClosingTime, SlotStep)
}

type UpsertCourtInput struct {
	ID           string // empty on create
	ClubID       string
	Name         string
	Sport        string
	Features     []string
	OpeningTime  string
	ClosingTime  string
	DefaultPrice float64
	SlotPrices   []SlotPrice
}
