package goals

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("goal not found")

// Store is the authoritative goal collection, scoped per user.
type Store interface {
	List(ctx context.Context, userID int) ([]Goal, error)
	Get(ctx context.Context, userID int, id string) (Goal, error)
	Create(ctx context.Context, userID int, g Goal) (Goal, error)
	Delete(ctx context.Context, userID int, id string) error
}

type PGStore struct {
	DB *sql.DB
}

func (s *PGStore) List(ctx context.Context, userID int) ([]Goal, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, title, target_phrase, general_description, created_at, updated_at
		FROM goals
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []Goal{}
	for rows.Next() {
		var g Goal
		if err := rows.Scan(&g.ID, &g.Title, &g.TargetPhrase, &g.GeneralDescription, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

func (s *PGStore) Get(ctx context.Context, userID int, id string) (Goal, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Goal{}, ErrNotFound
	}

	var g Goal
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, title, target_phrase, general_description, created_at, updated_at
		FROM goals
		WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&g.ID, &g.Title, &g.TargetPhrase, &g.GeneralDescription, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Goal{}, ErrNotFound
	}
	return g, err
}

func (s *PGStore) Create(ctx context.Context, userID int, g Goal) (Goal, error) {
	g.ID = uuid.NewString()
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO goals (id, user_id, title, target_phrase, general_description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`, g.ID, userID, g.Title, g.TargetPhrase, g.GeneralDescription).Scan(&g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return Goal{}, err
	}
	return g, nil
}

// Delete removes a goal. Entries that still reference it are left alone.
func (s *PGStore) Delete(ctx context.Context, userID int, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
