package entries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"goals-tracker-backend/internal/tasks"
)

var ErrNotFound = errors.New("entry not found")

type Store interface {
	List(ctx context.Context, userID int) ([]DailyEntry, error)
	Get(ctx context.Context, userID int, id string) (DailyEntry, error)
	Create(ctx context.Context, userID int, e DailyEntry) (DailyEntry, error)
	Update(ctx context.Context, userID int, e DailyEntry) (DailyEntry, error)
	Delete(ctx context.Context, userID int, id string) error
}

// PGStore keeps entries in postgres with the task list as JSONB.
type PGStore struct {
	DB *sql.DB
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (DailyEntry, error) {
	var (
		e       DailyEntry
		date    time.Time
		rawJSON []byte
	)
	if err := row.Scan(&e.ID, &date, &rawJSON, &e.TotalScore, &e.CreatedAt); err != nil {
		return DailyEntry{}, err
	}
	e.Date = date.Format(DateLayout)

	e.Tasks = []tasks.Task{}
	if len(rawJSON) > 0 {
		if err := json.Unmarshal(rawJSON, &e.Tasks); err != nil {
			return DailyEntry{}, fmt.Errorf("decode tasks of entry %s: %w", e.ID, err)
		}
	}
	return e, nil
}

func (s *PGStore) List(ctx context.Context, userID int) ([]DailyEntry, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, date, tasks, total_score, created_at
		FROM entries
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []DailyEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (s *PGStore) Get(ctx context.Context, userID int, id string) (DailyEntry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DailyEntry{}, ErrNotFound
	}

	e, err := scanEntry(s.DB.QueryRowContext(ctx, `
		SELECT id, date, tasks, total_score, created_at
		FROM entries
		WHERE id = $1 AND user_id = $2
	`, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return DailyEntry{}, ErrNotFound
	}
	return e, err
}

func (s *PGStore) Create(ctx context.Context, userID int, e DailyEntry) (DailyEntry, error) {
	tasksJSON, err := json.Marshal(e.Tasks)
	if err != nil {
		return DailyEntry{}, err
	}

	e.ID = uuid.NewString()
	err = s.DB.QueryRowContext(ctx, `
		INSERT INTO entries (id, user_id, date, tasks, total_score)
		VALUES ($1, $2, $3, $4::jsonb, $5)
		RETURNING created_at
	`, e.ID, userID, e.Date, string(tasksJSON), e.TotalScore).Scan(&e.CreatedAt)
	if err != nil {
		return DailyEntry{}, err
	}
	return e, nil
}

// Update replaces the date, tasks and total of an existing entry.
func (s *PGStore) Update(ctx context.Context, userID int, e DailyEntry) (DailyEntry, error) {
	if _, err := uuid.Parse(e.ID); err != nil {
		return DailyEntry{}, ErrNotFound
	}

	tasksJSON, err := json.Marshal(e.Tasks)
	if err != nil {
		return DailyEntry{}, err
	}

	err = s.DB.QueryRowContext(ctx, `
		UPDATE entries
		SET date = $3, tasks = $4::jsonb, total_score = $5
		WHERE id = $1 AND user_id = $2
		RETURNING created_at
	`, e.ID, userID, e.Date, string(tasksJSON), e.TotalScore).Scan(&e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return DailyEntry{}, ErrNotFound
	}
	if err != nil {
		return DailyEntry{}, err
	}
	return e, nil
}

func (s *PGStore) Delete(ctx context.Context, userID int, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
