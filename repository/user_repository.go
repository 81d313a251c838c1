package repository

import (
	"database/sql"

	"card-bank-api/model"
)

// UserRepository covers the small read/insert surface the seeder needs.
// Users are immutable once created.
type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) CreateUser(user *model.User) error {
	query := `INSERT INTO users (full_name, mobile, national_id) VALUES ($1, $2, $3) RETURNING id, created_at`
	return r.DB.QueryRow(query, user.FullName, user.Mobile, user.NationalID).Scan(&user.ID, &user.CreatedAt)
}

func (r *UserRepository) CountUsers() (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}
