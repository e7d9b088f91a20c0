package models

// Point is a single point played within a game, with the players on the
// line for it.
type Point struct {
	ID        int64   `json:"id"`
	GameID    int64   `json:"gameId"`
	Won       bool    `json:"won"`
	PlayerIDs []int64 `json:"playerIds"`
}
