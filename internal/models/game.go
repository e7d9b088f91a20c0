package models

import "time"

// Game records a match between the home team and a named opponent. Opponents
// are free-form names since only your own roster is tracked.
type Game struct {
	ID               int64     `json:"id"`
	HomeTeamID       *int64    `json:"homeTeamId"`
	OpponentTeamName string    `json:"opponentTeamName"`
	TournamentID     *int64    `json:"tournamentId"`
	CreatedAt        time.Time `json:"createdAt"`
}
