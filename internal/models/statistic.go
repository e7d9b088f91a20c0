package models

// Statistic is a single occurrence of a stat event during a point,
// i.e. a single D, a single assist, a single turn.
type Statistic struct {
	ID       int64  `json:"id"`
	PlayerID *int64 `json:"playerId"`
	PointID  int64  `json:"pointId"`
	Stat     string `json:"stat"`
}
