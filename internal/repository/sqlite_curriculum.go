package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/lumina/internal/db"
	"github.com/alexanderramin/lumina/internal/domain"
)

// SQLiteCurriculumRepo implements CurriculumRepo. Save replaces the whole
// schedule; callers needing atomicity run it through a UnitOfWork.
type SQLiteCurriculumRepo struct {
	db db.DBTX
}

func NewSQLiteCurriculumRepo(conn db.DBTX) *SQLiteCurriculumRepo {
	return &SQLiteCurriculumRepo{db: conn}
}

func (r *SQLiteCurriculumRepo) Get(ctx context.Context) (*domain.Curriculum, error) {
	var c domain.Curriculum
	err := r.db.QueryRowContext(ctx,
		`SELECT track_name, description FROM curriculum WHERE id = 'default'`,
	).Scan(&c.TrackName, &c.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("curriculum: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning curriculum: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT day, title, topic FROM curriculum_days WHERE curriculum_id = 'default' ORDER BY day`)
	if err != nil {
		return nil, fmt.Errorf("querying curriculum days: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d domain.CurriculumDay
		if err := rows.Scan(&d.Day, &d.Title, &d.Topic); err != nil {
			return nil, fmt.Errorf("scanning curriculum day: %w", err)
		}
		c.Schedule = append(c.Schedule, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating curriculum days: %w", err)
	}
	return &c, nil
}

func (r *SQLiteCurriculumRepo) Save(ctx context.Context, c *domain.Curriculum) error {
	if err := r.Delete(ctx); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO curriculum (id, track_name, description, created_at) VALUES ('default', ?, ?, ?)`,
		c.TrackName, c.Description, nowUTC())
	if err != nil {
		return fmt.Errorf("inserting curriculum: %w", err)
	}
	for _, d := range c.Schedule {
		_, err := r.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO curriculum_days (curriculum_id, day, title, topic) VALUES ('default', ?, ?, ?)`,
			d.Day, d.Title, d.Topic)
		if err != nil {
			return fmt.Errorf("inserting curriculum day %d: %w", d.Day, err)
		}
	}
	return nil
}

// Delete removes the curriculum; its days go with it via ON DELETE CASCADE.
func (r *SQLiteCurriculumRepo) Delete(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM curriculum WHERE id = 'default'`); err != nil {
		return fmt.Errorf("deleting curriculum: %w", err)
	}
	return nil
}
