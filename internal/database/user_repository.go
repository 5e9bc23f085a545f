package database

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rentalcars/booking-backend/internal/models"
)

// UserRepository handles database operations for the users table
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, telephone_number, email, password, role, created_at`

// Create inserts a new user
func (r *UserRepository) Create(user *models.User) error {
	query := `
		INSERT INTO users (id, name, telephone_number, email, password, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	err := r.db.QueryRow(
		query,
		user.ID, user.Name, user.TelephoneNumber, user.Email, user.Password, user.Role,
	).Scan(&user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(query, email))
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(userID uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(query, userID))
}

func scanUser(row scanner) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Name, &user.TelephoneNumber, &user.Email,
		&user.Password, &user.Role, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return user, nil
}
