package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/apython1998/ultistats/internal/auth"
	"github.com/apython1998/ultistats/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	CreateUser(username, email, password string) (models.User, error)
	GetUserByID(id int64) (models.User, error)
	UpdateUser(id int64, username, email *string) (models.User, error)
	DeleteUser(id int64) error
	Authenticate(username, password string) (models.User, error)
	IssueToken(userID int64) (string, error)
	ValidateToken(token string) (models.User, error)
	RevokeToken(userID int64) error
	DeleteExpiredTokens() (int64, error)
}

// UserService provides business logic for accounts and their tokens.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

const userColumns = "id, username, email, password_hash, token, token_expires_at, created_at"

// scanUser is a helper to scan a user from a row or rows object.
func scanUser(scanner interface{ Scan(...interface{}) error }) (models.User, error) {
	var user models.User
	var token sql.NullString
	var tokenExpires sql.NullTime

	err := scanner.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&token, &tokenExpires, &user.CreatedAt,
	)
	if err != nil {
		return models.User{}, err
	}

	if token.Valid {
		user.Token = &token.String
	}
	if tokenExpires.Valid {
		user.TokenExpires = &tokenExpires.Time
	}
	return user, nil
}

// CreateUser creates a new user, hashing their password. Username and email
// uniqueness are checked up front so nothing is written on a collision.
func (s *UserService) CreateUser(username, email, password string) (models.User, error) {
	email = normalizeEmail(email)

	taken, err := s.usernameTaken(username, 0)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, ErrUsernameTaken
	}

	taken, err = s.emailTaken(email, 0)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	res, err := s.db.Exec(
		"INSERT INTO users (username, email, password_hash, created_at) VALUES (?, ?, ?, ?)",
		username, email, hash, time.Now().UTC(),
	)
	if err != nil {
		return models.User{}, mapConstraintErr(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	return s.GetUserByID(id)
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id int64) (models.User, error) {
	row := s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// getUserByUsername retrieves a user including the password hash.
func (s *UserService) getUserByUsername(username string) (models.User, error) {
	row := s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE username = ?", username)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// UpdateUser applies a partial update to username and email. Uniqueness is
// re-checked only for fields that actually change.
func (s *UserService) UpdateUser(id int64, username, email *string) (models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return models.User{}, err
	}

	newUsername := user.Username
	if username != nil && *username != user.Username {
		taken, err := s.usernameTaken(*username, id)
		if err != nil {
			return models.User{}, err
		}
		if taken {
			return models.User{}, ErrUsernameTaken
		}
		newUsername = *username
	}

	newEmail := user.Email
	if email != nil {
		candidate := normalizeEmail(*email)
		if candidate != user.Email {
			taken, err := s.emailTaken(candidate, id)
			if err != nil {
				return models.User{}, err
			}
			if taken {
				return models.User{}, ErrEmailTaken
			}
			newEmail = candidate
		}
	}

	_, err = s.db.Exec("UPDATE users SET username = ?, email = ? WHERE id = ?", newUsername, newEmail, id)
	if err != nil {
		return models.User{}, mapConstraintErr(err)
	}
	return s.GetUserByID(id)
}

// DeleteUser removes a user. Any active token dies with the row.
func (s *UserService) DeleteUser(id int64) error {
	res, err := s.db.Exec("DELETE FROM users WHERE id = ?", id)
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

// Authenticate verifies a username/password pair. Every failure mode maps to
// the same error.
func (s *UserService) Authenticate(username, password string) (models.User, error) {
	user, err := s.getUserByUsername(username)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// IssueToken returns a bearer token for the user, reusing a stored token that
// is still comfortably valid and minting a fresh one otherwise.
func (s *UserService) IssueToken(userID int64) (string, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	if user.HasValidToken(now.Add(auth.ReuseBuffer)) {
		return *user.Token, nil
	}

	token, err := auth.NewToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	expires := now.Add(auth.TokenTTL)

	_, err = s.db.Exec("UPDATE users SET token = ?, token_expires_at = ? WHERE id = ?", token, expires, userID)
	if err != nil {
		return "", err
	}
	return token, nil
}

// ValidateToken resolves a presented token to the user holding it. Unknown
// and expired tokens are indistinguishable to the caller.
func (s *UserService) ValidateToken(token string) (models.User, error) {
	if token == "" {
		return models.User{}, ErrInvalidCredentials
	}

	row := s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE token = ?", token)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if !user.HasValidToken(time.Now().UTC()) {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// RevokeToken clears the stored token for a user. Revoking an already
// revoked token is a no-op.
func (s *UserService) RevokeToken(userID int64) error {
	_, err := s.db.Exec("UPDATE users SET token = NULL, token_expires_at = NULL WHERE id = ?", userID)
	return err
}

// DeleteExpiredTokens clears token columns whose expiry has passed and
// returns how many rows were touched.
func (s *UserService) DeleteExpiredTokens() (int64, error) {
	res, err := s.db.Exec(
		"UPDATE users SET token = NULL, token_expires_at = NULL WHERE token IS NOT NULL AND token_expires_at <= ?",
		time.Now().UTC(),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *UserService) usernameTaken(username string, excludeID int64) (bool, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(1) FROM users WHERE username = ? AND id != ?", username, excludeID).Scan(&n)
	return n > 0, err
}

func (s *UserService) emailTaken(email string, excludeID int64) (bool, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(1) FROM users WHERE email = ? AND id != ?", email, excludeID).Scan(&n)
	return n > 0, err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// mapConstraintErr catches unique-constraint violations that race past the
// up-front existence checks.
func mapConstraintErr(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "users.username"):
		return ErrUsernameTaken
	case strings.Contains(msg, "users.email"):
		return ErrEmailTaken
	}
	return err
}
