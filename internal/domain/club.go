package domain

import "time"

type Club struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Sports    []string  `json:"sports"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Club) HasSport(sport string) bool {
	for _, s := range c.Sports {
		if s == sport {
			return true
		}
	}
	return false
}

// AddSport registers a sport on the club. Returns true if the set changed.
func (c *Club) AddSport(sport string) bool {
	if c.HasSport(sport) {
		return false
	}
	c.Sports = append(c.Sports, sport)
	return true
}

type CreateClubInput struct {
	Name   string
	Sports []string
}
