package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"machine_health/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Authorization interface at compile time.
var _ Authorization = (*UserRepository)(nil)

const (
	insertUserSQL        = `INSERT INTO users (email, full_name, role, password_hash) VALUES (?, ?, ?, ?)`
	selectUserByEmailSQL = `SELECT id, email, full_name, role, password_hash FROM users WHERE email = ?`
	selectUserByIDSQL    = `SELECT id, email, full_name, role, password_hash FROM users WHERE id = ?`
)

// Create inserts a new user and returns its ID.
func (r *UserRepository) Create(u models.User) (int, error) {
	res, err := r.db.Exec(insertUserSQL, u.Email, u.FullName, u.Role, u.PasswordHash)
	if err != nil {
		return 0, fmt.Errorf("insert user %q: %w", u.Email, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", u.Email, err)
	}
	return int(lastID), nil
}

// GetByEmail fetches a user by email. Returns (nil, nil) if not found.
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	return r.scanOne(r.db.QueryRow(selectUserByEmailSQL, email), email)
}

// GetByID fetches a user by ID. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(id int) (*models.User, error) {
	return r.scanOne(r.db.QueryRow(selectUserByIDSQL, id), fmt.Sprintf("id=%d", id))
}

func (r *UserRepository) scanOne(row *sql.Row, key string) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.Role, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %s: %w", key, err)
	}
	return &u, nil
}
