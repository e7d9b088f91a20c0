package services

import (
	"database/sql"
	"errors"

	"github.com/apython1998/ultistats/internal/models"
)

// StatServiceProvider defines the interface for statistic services.
type StatServiceProvider interface {
	RecordStat(playerID, pointID int64, stat string) (models.Statistic, error)
	GetStatByID(id int64) (models.Statistic, error)
	GetPlayerStats(playerID int64) ([]models.Statistic, error)
	GetPlayerTotals(playerID int64) (map[string]int, error)
	DeleteStat(id int64) error
}

// StatService provides business logic for per-player statistic events.
type StatService struct {
	db *sql.DB
}

// NewStatService creates a new StatService.
func NewStatService(db *sql.DB) *StatService {
	return &StatService{db: db}
}

func scanStat(scanner interface{ Scan(...interface{}) error }) (models.Statistic, error) {
	var stat models.Statistic
	var playerID sql.NullInt64

	err := scanner.Scan(&stat.ID, &playerID, &stat.PointID, &stat.Stat)
	if err != nil {
		return models.Statistic{}, err
	}

	if playerID.Valid {
		stat.PlayerID = &playerID.Int64
	}
	return stat, nil
}

// RecordStat stores one occurrence of a stat for a player on a point.
func (s *StatService) RecordStat(playerID, pointID int64, stat string) (models.Statistic, error) {
	res, err := s.db.Exec(
		"INSERT INTO statistics (player_id, point_id, stat) VALUES (?, ?, ?)",
		playerID, pointID, stat,
	)
	if err != nil {
		return models.Statistic{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Statistic{}, err
	}
	return s.GetStatByID(id)
}

// GetStatByID retrieves a single statistic event.
func (s *StatService) GetStatByID(id int64) (models.Statistic, error) {
	row := s.db.QueryRow("SELECT id, player_id, point_id, stat FROM statistics WHERE id = ?", id)
	stat, err := scanStat(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Statistic{}, ErrNotFound
		}
		return models.Statistic{}, err
	}
	return stat, nil
}

// GetPlayerStats retrieves every statistic event recorded for a player.
func (s *StatService) GetPlayerStats(playerID int64) ([]models.Statistic, error) {
	rows, err := s.db.Query(
		"SELECT id, player_id, point_id, stat FROM statistics WHERE player_id = ? ORDER BY id",
		playerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.Statistic
	for rows.Next() {
		stat, err := scanStat(rows)
		if err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}

// GetPlayerTotals aggregates a player's statistic events into counts per
// stat code.
func (s *StatService) GetPlayerTotals(playerID int64) (map[string]int, error) {
	rows, err := s.db.Query(
		"SELECT stat, COUNT(1) FROM statistics WHERE player_id = ? GROUP BY stat",
		playerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]int)
	for rows.Next() {
		var stat string
		var count int
		if err := rows.Scan(&stat, &count); err != nil {
			return nil, err
		}
		totals[stat] = count
	}
	return totals, rows.Err()
}

// DeleteStat removes a single statistic event.
func (s *StatService) DeleteStat(id int64) error {
	res, err := s.db.Exec("DELETE FROM statistics WHERE id = ?", id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
