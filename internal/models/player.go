package models

import "time"

// Player belongs to at most one team. The team reference is cleared, not
// cascaded, when the team is deleted.
type Player struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Number    int       `json:"number"`
	Position  string    `json:"position"`
	TeamID    *int64    `json:"teamId"`
	CreatedAt time.Time `json:"createdAt"`
}
