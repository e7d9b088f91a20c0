package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/apython1998/ultistats/internal/models"
)

// TeamServiceProvider defines the interface for team services.
type TeamServiceProvider interface {
	GetAllTeams() ([]models.Team, error)
	GetTeamByID(id int64) (models.Team, error)
	CreateTeam(name string) (models.Team, error)
	UpdateTeam(id int64, name string) (models.Team, error)
	DeleteTeam(id int64) error
	GetTeamPlayers(teamID int64) ([]models.Player, error)
}

// TeamService provides business logic for team management.
type TeamService struct {
	db *sql.DB
}

// NewTeamService creates a new TeamService.
func NewTeamService(db *sql.DB) *TeamService {
	return &TeamService{db: db}
}

// GetAllTeams retrieves all teams.
func (s *TeamService) GetAllTeams() ([]models.Team, error) {
	rows, err := s.db.Query("SELECT id, name, created_at FROM teams ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var team models.Team
		if err := rows.Scan(&team.ID, &team.Name, &team.CreatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

// GetTeamByID retrieves a single team by its ID.
func (s *TeamService) GetTeamByID(id int64) (models.Team, error) {
	var team models.Team
	row := s.db.QueryRow("SELECT id, name, created_at FROM teams WHERE id = ?", id)
	if err := row.Scan(&team.ID, &team.Name, &team.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Team{}, ErrNotFound
		}
		return models.Team{}, err
	}
	return team, nil
}

// CreateTeam adds a new team.
func (s *TeamService) CreateTeam(name string) (models.Team, error) {
	res, err := s.db.Exec("INSERT INTO teams (name, created_at) VALUES (?, ?)", name, time.Now().UTC())
	if err != nil {
		return models.Team{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Team{}, err
	}
	return s.GetTeamByID(id)
}

// UpdateTeam renames a team.
func (s *TeamService) UpdateTeam(id int64, name string) (models.Team, error) {
	res, err := s.db.Exec("UPDATE teams SET name = ? WHERE id = ?", name, id)
	if err != nil {
		return models.Team{}, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return models.Team{}, err
	}
	if rows == 0 {
		return models.Team{}, ErrNotFound
	}
	return s.GetTeamByID(id)
}

// DeleteTeam removes a team. Players, tournaments and games that referenced
// it keep their rows with the team reference cleared.
func (s *TeamService) DeleteTeam(id int64) error {
	res, err := s.db.Exec("DELETE FROM teams WHERE id = ?", id)
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

// GetTeamPlayers retrieves the current roster of a team.
func (s *TeamService) GetTeamPlayers(teamID int64) ([]models.Player, error) {
	if _, err := s.GetTeamByID(teamID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		"SELECT id, name, number, position, team_id, created_at FROM players WHERE team_id = ? ORDER BY number",
		teamID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPlayers(rows)
}
