package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")

type User struct {
	ID          int       `json:"id"`
	GoogleID    string    `json:"googleId"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

type UserStore interface {
	Upsert(ctx context.Context, googleID, email, displayName string) (User, error)
	Get(ctx context.Context, id int) (User, error)
	Delete(ctx context.Context, id int) error
}

type PGUserStore struct {
	DB *sql.DB
}

func (s *PGUserStore) Upsert(ctx context.Context, googleID, email, displayName string) (User, error) {
	var u User
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO users (google_id, email, display_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (google_id)
		DO UPDATE SET email = EXCLUDED.email, display_name = EXCLUDED.display_name
		RETURNING id, google_id, email, display_name, created_at
	`, googleID, email, displayName).Scan(&u.ID, &u.GoogleID, &u.Email, &u.DisplayName, &u.CreatedAt)
	return u, err
}

func (s *PGUserStore) Get(ctx context.Context, id int) (User, error) {
	var u User
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, google_id, email, display_name, created_at
		FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.GoogleID, &u.Email, &u.DisplayName, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	return u, err
}

// Delete removes the user and everything they own in one transaction.
func (s *PGUserStore) Delete(ctx context.Context, id int) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	steps := []string{
		`DELETE FROM entries WHERE user_id = $1`,
		`DELETE FROM goals WHERE user_id = $1`,
		`DELETE FROM analytics_events WHERE user_id = $1`,
		`DELETE FROM users WHERE id = $1`,
	}
	for _, q := range steps {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return err
		}
	}

	return tx.Commit()
}
