package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/apython1998/ultistats/internal/models"
)

// TournamentServiceProvider defines the interface for tournament services.
type TournamentServiceProvider interface {
	GetAllTournaments() ([]models.Tournament, error)
	GetTournamentByID(id int64) (models.Tournament, error)
	CreateTournament(tournament models.Tournament) (models.Tournament, error)
	UpdateTournament(id int64, tournament models.Tournament) (models.Tournament, error)
	DeleteTournament(id int64) error
	AddTournamentPlayer(tournamentID, playerID int64) error
	RemoveTournamentPlayer(tournamentID, playerID int64) error
	GetTournamentPlayers(tournamentID int64) ([]models.Player, error)
}

// TournamentService provides business logic for tournament management.
type TournamentService struct {
	db *sql.DB
}

// NewTournamentService creates a new TournamentService.
func NewTournamentService(db *sql.DB) *TournamentService {
	return &TournamentService{db: db}
}

const tournamentColumns = "id, name, start_date, end_date, team_id, created_at"

func scanTournament(scanner interface{ Scan(...interface{}) error }) (models.Tournament, error) {
	var t models.Tournament
	var start, end sql.NullTime
	var teamID sql.NullInt64

	err := scanner.Scan(&t.ID, &t.Name, &start, &end, &teamID, &t.CreatedAt)
	if err != nil {
		return models.Tournament{}, err
	}

	if start.Valid {
		t.StartDate = &start.Time
	}
	if end.Valid {
		t.EndDate = &end.Time
	}
	if teamID.Valid {
		t.TeamID = &teamID.Int64
	}
	return t, nil
}

// GetAllTournaments retrieves all tournaments.
func (s *TournamentService) GetAllTournaments() ([]models.Tournament, error) {
	rows, err := s.db.Query("SELECT " + tournamentColumns + " FROM tournaments ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tournaments []models.Tournament
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, err
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, rows.Err()
}

// GetTournamentByID retrieves a single tournament by its ID.
func (s *TournamentService) GetTournamentByID(id int64) (models.Tournament, error) {
	row := s.db.QueryRow("SELECT "+tournamentColumns+" FROM tournaments WHERE id = ?", id)
	t, err := scanTournament(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Tournament{}, ErrNotFound
		}
		return models.Tournament{}, err
	}
	return t, nil
}

// CreateTournament adds a new tournament.
func (s *TournamentService) CreateTournament(tournament models.Tournament) (models.Tournament, error) {
	res, err := s.db.Exec(
		"INSERT INTO tournaments (name, start_date, end_date, team_id, created_at) VALUES (?, ?, ?, ?, ?)",
		tournament.Name, tournament.StartDate, tournament.EndDate, tournament.TeamID, time.Now().UTC(),
	)
	if err != nil {
		return models.Tournament{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Tournament{}, err
	}
	return s.GetTournamentByID(id)
}

// UpdateTournament updates a tournament's details.
func (s *TournamentService) UpdateTournament(id int64, tournament models.Tournament) (models.Tournament, error) {
	res, err := s.db.Exec(
		"UPDATE tournaments SET name = ?, start_date = ?, end_date = ?, team_id = ? WHERE id = ?",
		tournament.Name, tournament.StartDate, tournament.EndDate, tournament.TeamID, id,
	)
	if err != nil {
		return models.Tournament{}, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return models.Tournament{}, err
	}
	if rows == 0 {
		return models.Tournament{}, ErrNotFound
	}
	return s.GetTournamentByID(id)
}

// DeleteTournament removes a tournament along with its roster entries.
// Games that referenced it keep their rows with the reference cleared.
func (s *TournamentService) DeleteTournament(id int64) error {
	res, err := s.db.Exec("DELETE FROM tournaments WHERE id = ?", id)
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

// AddTournamentPlayer registers a player for a tournament. Registering the
// same player twice is a no-op.
func (s *TournamentService) AddTournamentPlayer(tournamentID, playerID int64) error {
	if _, err := s.GetTournamentByID(tournamentID); err != nil {
		return err
	}
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO tournament_players (tournament_id, player_id) VALUES (?, ?)",
		tournamentID, playerID,
	)
	return err
}

// RemoveTournamentPlayer removes a player from a tournament roster.
func (s *TournamentService) RemoveTournamentPlayer(tournamentID, playerID int64) error {
	res, err := s.db.Exec(
		"DELETE FROM tournament_players WHERE tournament_id = ? AND player_id = ?",
		tournamentID, playerID,
	)
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

// GetTournamentPlayers retrieves the roster of a tournament.
func (s *TournamentService) GetTournamentPlayers(tournamentID int64) ([]models.Player, error) {
	if _, err := s.GetTournamentByID(tournamentID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT p.id, p.name, p.number, p.position, p.team_id, p.created_at
		FROM players p
		JOIN tournament_players tp ON tp.player_id = p.id
		WHERE tp.tournament_id = ?
		ORDER BY p.number`, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPlayers(rows)
}
