package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/apython1998/ultistats/internal/models"
)

// PlayerServiceProvider defines the interface for player services.
type PlayerServiceProvider interface {
	GetAllPlayers() ([]models.Player, error)
	GetPlayerByID(id int64) (models.Player, error)
	CreatePlayer(player models.Player) (models.Player, error)
	UpdatePlayer(id int64, player models.Player) (models.Player, error)
	DeletePlayer(id int64) error
}

// PlayerService provides business logic for player management.
type PlayerService struct {
	db *sql.DB
}

// NewPlayerService creates a new PlayerService.
func NewPlayerService(db *sql.DB) *PlayerService {
	return &PlayerService{db: db}
}

// scanPlayer is a helper to scan a player from a row or rows object.
func scanPlayer(scanner interface{ Scan(...interface{}) error }) (models.Player, error) {
	var player models.Player
	var number sql.NullInt64
	var position sql.NullString
	var teamID sql.NullInt64

	err := scanner.Scan(&player.ID, &player.Name, &number, &position, &teamID, &player.CreatedAt)
	if err != nil {
		return models.Player{}, err
	}

	player.Number = int(number.Int64)
	player.Position = position.String
	if teamID.Valid {
		player.TeamID = &teamID.Int64
	}
	return player, nil
}

func scanPlayers(rows *sql.Rows) ([]models.Player, error) {
	var players []models.Player
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	return players, rows.Err()
}

// GetAllPlayers retrieves all players.
func (s *PlayerService) GetAllPlayers() ([]models.Player, error) {
	rows, err := s.db.Query("SELECT id, name, number, position, team_id, created_at FROM players ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPlayers(rows)
}

// GetPlayerByID retrieves a single player by their ID.
func (s *PlayerService) GetPlayerByID(id int64) (models.Player, error) {
	row := s.db.QueryRow("SELECT id, name, number, position, team_id, created_at FROM players WHERE id = ?", id)
	player, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Player{}, ErrNotFound
		}
		return models.Player{}, err
	}
	return player, nil
}

// CreatePlayer adds a new player, optionally assigned to a team.
func (s *PlayerService) CreatePlayer(player models.Player) (models.Player, error) {
	res, err := s.db.Exec(
		"INSERT INTO players (name, number, position, team_id, created_at) VALUES (?, ?, ?, ?, ?)",
		player.Name, player.Number, player.Position, player.TeamID, time.Now().UTC(),
	)
	if err != nil {
		return models.Player{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Player{}, err
	}
	return s.GetPlayerByID(id)
}

// UpdatePlayer updates a player's details and team assignment.
func (s *PlayerService) UpdatePlayer(id int64, player models.Player) (models.Player, error) {
	res, err := s.db.Exec(
		"UPDATE players SET name = ?, number = ?, position = ?, team_id = ? WHERE id = ?",
		player.Name, player.Number, player.Position, player.TeamID, id,
	)
	if err != nil {
		return models.Player{}, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return models.Player{}, err
	}
	if rows == 0 {
		return models.Player{}, ErrNotFound
	}
	return s.GetPlayerByID(id)
}

// DeletePlayer removes a player. Statistic rows they produced survive with
// the player reference cleared; roster and line entries are removed.
func (s *PlayerService) DeletePlayer(id int64) error {
	res, err := s.db.Exec("DELETE FROM players WHERE id = ?", id)
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
