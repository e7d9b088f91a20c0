package models

import "time"

// Tournament groups games over a date range for a team.
type Tournament struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	TeamID    *int64     `json:"teamId"`
	CreatedAt time.Time  `json:"createdAt"`
}
