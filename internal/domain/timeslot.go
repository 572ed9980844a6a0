package domain

// TimeSlot is one bookable half-hour cell of an availability grid. Derived on
// every query, never persisted.
type TimeSlot struct {
	Time      string  `json:"time"`
	Available bool    `json:"available"`
	Price     float64 `json:"price"`
}

// CourtAvailability is one court's grid for a date.
type CourtAvailability struct {
	Court Court      `json:"court"`
	Slots []TimeSlot `json:"slots"`
}

// ClubAvailability groups court grids per club for the global search.
type ClubAvailability struct {
	Club   Club                `json:"club"`
	Courts []CourtAvailability `json:"courts"`
}
