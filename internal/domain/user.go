package domain

import "time"

type UserRole string

const (
	RolePlayer     UserRole = "PLAYER"
	RoleAdmin      UserRole = "ADMIN"
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
)

type User struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Email            string         `json:"email"`
	Role             UserRole       `json:"role"`
	ClubIDs          []string       `json:"club_ids,omitempty"` // ADMIN only
	IsBanned         bool           `json:"is_banned"`
	SportPreferences map[string]int `json:"sport_preferences,omitempty"` // sport -> skill level
	TelegramChatID   *int64         `json:"telegram_chat_id,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}

func (u *User) AdminOf(clubID string) bool {
	if u.Role != RoleAdmin && u.Role != RoleSuperAdmin {
		return false
	}
	if u.Role == RoleSuperAdmin {
		return true
	}
	return contains(u.ClubIDs, clubID)
}

type CreateUserInput struct {
	Name           string
	Email          string
	Role           UserRole
	ClubIDs        []string
	TelegramChatID *int64
}
