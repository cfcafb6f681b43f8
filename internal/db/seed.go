package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SeedDemo creates demo accounts and a sample course when the users table
// is empty. Intended for local development only.
func SeedDemo(ctx context.Context, db *sql.DB) error {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM users`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	now := time.Now().Unix()
	users := []struct {
		username, password, role string
	}{
		{"student", "student", "student"},
		{"admin", "admin", "admin"},
	}
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx,
			`INSERT INTO users (id, username, password_hash, role, created_at) VALUES ($1,$2,$3,$4,$5)`,
			uuid.NewString(), u.username, string(hash), u.role, now); err != nil {
			return err
		}
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO courses (id, title, description, created_at) VALUES ($1,$2,$3,$4)`,
		uuid.NewString(), "Python Fundamentals", "Core data structures and functions in Python.", now)
	return err
}
