package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/apython1998/ultistats/internal/models"
)

// GameServiceProvider defines the interface for game and point services.
type GameServiceProvider interface {
	GetAllGames() ([]models.Game, error)
	GetGameByID(id int64) (models.Game, error)
	CreateGame(game models.Game) (models.Game, error)
	UpdateGame(id int64, game models.Game) (models.Game, error)
	DeleteGame(id int64) error
	AddPoint(gameID int64, won bool, playerIDs []int64) (models.Point, error)
	GetGamePoints(gameID int64) ([]models.Point, error)
	DeletePoint(gameID, pointID int64) error
}

// GameService provides business logic for games and the points played in them.
type GameService struct {
	db *sql.DB
}

// NewGameService creates a new GameService.
func NewGameService(db *sql.DB) *GameService {
	return &GameService{db: db}
}

const gameColumns = "id, home_team_id, opponent_team_name, tournament_id, created_at"

func scanGame(scanner interface{ Scan(...interface{}) error }) (models.Game, error) {
	var game models.Game
	var homeTeamID, tournamentID sql.NullInt64

	err := scanner.Scan(&game.ID, &homeTeamID, &game.OpponentTeamName, &tournamentID, &game.CreatedAt)
	if err != nil {
		return models.Game{}, err
	}

	if homeTeamID.Valid {
		game.HomeTeamID = &homeTeamID.Int64
	}
	if tournamentID.Valid {
		game.TournamentID = &tournamentID.Int64
	}
	return game, nil
}

// GetAllGames retrieves all games.
func (s *GameService) GetAllGames() ([]models.Game, error) {
	rows, err := s.db.Query("SELECT " + gameColumns + " FROM games ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

// GetGameByID retrieves a single game by its ID.
func (s *GameService) GetGameByID(id int64) (models.Game, error) {
	row := s.db.QueryRow("SELECT "+gameColumns+" FROM games WHERE id = ?", id)
	game, err := scanGame(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Game{}, ErrNotFound
		}
		return models.Game{}, err
	}
	return game, nil
}

// CreateGame adds a new game.
func (s *GameService) CreateGame(game models.Game) (models.Game, error) {
	res, err := s.db.Exec(
		"INSERT INTO games (home_team_id, opponent_team_name, tournament_id, created_at) VALUES (?, ?, ?, ?)",
		game.HomeTeamID, game.OpponentTeamName, game.TournamentID, time.Now().UTC(),
	)
	if err != nil {
		return models.Game{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Game{}, err
	}
	return s.GetGameByID(id)
}

// UpdateGame updates a game's details.
func (s *GameService) UpdateGame(id int64, game models.Game) (models.Game, error) {
	res, err := s.db.Exec(
		"UPDATE games SET home_team_id = ?, opponent_team_name = ?, tournament_id = ? WHERE id = ?",
		game.HomeTeamID, game.OpponentTeamName, game.TournamentID, id,
	)
	if err != nil {
		return models.Game{}, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return models.Game{}, err
	}
	if rows == 0 {
		return models.Game{}, ErrNotFound
	}
	return s.GetGameByID(id)
}

// DeleteGame removes a game and, through cascade rules, its points, their
// line entries and statistics.
func (s *GameService) DeleteGame(id int64) error {
	res, err := s.db.Exec("DELETE FROM games WHERE id = ?", id)
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

// AddPoint records a played point and the line of players on it as one
// transaction; a failure on any row leaves nothing behind.
func (s *GameService) AddPoint(gameID int64, won bool, playerIDs []int64) (models.Point, error) {
	if _, err := s.GetGameByID(gameID); err != nil {
		return models.Point{}, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.Point{}, err
	}
	defer tx.Rollback()

	res, err := tx.Exec("INSERT INTO points (game_id, won) VALUES (?, ?)", gameID, won)
	if err != nil {
		return models.Point{}, err
	}
	pointID, err := res.LastInsertId()
	if err != nil {
		return models.Point{}, err
	}

	for _, playerID := range playerIDs {
		if _, err := tx.Exec("INSERT INTO point_players (point_id, player_id) VALUES (?, ?)", pointID, playerID); err != nil {
			return models.Point{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Point{}, err
	}

	return models.Point{ID: pointID, GameID: gameID, Won: won, PlayerIDs: playerIDs}, nil
}

// GetGamePoints retrieves the points of a game with their lines.
func (s *GameService) GetGamePoints(gameID int64) ([]models.Point, error) {
	if _, err := s.GetGameByID(gameID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query("SELECT id, game_id, won FROM points WHERE game_id = ? ORDER BY id", gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []models.Point
	for rows.Next() {
		var point models.Point
		if err := rows.Scan(&point.ID, &point.GameID, &point.Won); err != nil {
			return nil, err
		}
		points = append(points, point)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range points {
		playerIDs, err := s.pointPlayerIDs(points[i].ID)
		if err != nil {
			return nil, err
		}
		points[i].PlayerIDs = playerIDs
	}
	return points, nil
}

// DeletePoint removes a point from a game along with its line entries and
// statistics.
func (s *GameService) DeletePoint(gameID, pointID int64) error {
	res, err := s.db.Exec("DELETE FROM points WHERE id = ? AND game_id = ?", pointID, gameID)
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

func (s *GameService) pointPlayerIDs(pointID int64) ([]int64, error) {
	rows, err := s.db.Query("SELECT player_id FROM point_players WHERE point_id = ? ORDER BY player_id", pointID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
