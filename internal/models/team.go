package models

import "time"

// Team is a roster of players that tournaments and games are tracked against.
type Team struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
