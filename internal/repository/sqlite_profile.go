package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/lumina/internal/db"
	"github.com/alexanderramin/lumina/internal/domain"
)

// SQLiteProfileRepo implements ProfileRepo using a SQLite database. The
// content buffer is stored as a JSON document in a single column.
type SQLiteProfileRepo struct {
	db db.DBTX
}

// NewSQLiteProfileRepo creates a new SQLiteProfileRepo.
func NewSQLiteProfileRepo(conn db.DBTX) *SQLiteProfileRepo {
	return &SQLiteProfileRepo{db: conn}
}

func (r *SQLiteProfileRepo) Get(ctx context.Context) (*domain.UserProfile, error) {
	query := `SELECT name, email, role, objective, persona_name, persona_description,
		expertise_level, daily_commitment, current_day, total_days, last_quiz_score,
		is_returning_user, content_buffer
		FROM user_profile WHERE id = 'default'`
	row := r.db.QueryRowContext(ctx, query)

	var (
		p             domain.UserProfile
		role          string
		personaName   sql.NullString
		personaDesc   sql.NullString
		returning     int
		contentBuffer sql.NullString
	)
	err := row.Scan(
		&p.Name,
		&p.Email,
		&role,
		&p.Objective,
		&personaName,
		&personaDesc,
		&p.ExpertiseLevel,
		&p.DailyCommitment,
		&p.CurrentDay,
		&p.TotalDays,
		&p.LastQuizScore,
		&returning,
		&contentBuffer,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user profile: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user profile: %w", err)
	}

	p.Role = domain.Role(role)
	p.PersonaName = stringOrEmpty(personaName)
	p.PersonaDescription = stringOrEmpty(personaDesc)
	p.IsReturningUser = intToBool(returning)
	if contentBuffer.Valid && contentBuffer.String != "" {
		var buf domain.ContentBuffer
		if err := json.Unmarshal([]byte(contentBuffer.String), &buf); err != nil {
			return nil, fmt.Errorf("decoding content buffer: %w", err)
		}
		p.ContentBuffer = &buf
	}
	return &p, nil
}

func (r *SQLiteProfileRepo) Save(ctx context.Context, p *domain.UserProfile) error {
	var buffer any
	if p.ContentBuffer != nil {
		raw, err := json.Marshal(p.ContentBuffer)
		if err != nil {
			return fmt.Errorf("encoding content buffer: %w", err)
		}
		buffer = string(raw)
	}

	query := `INSERT OR REPLACE INTO user_profile (id, name, email, role, objective,
		persona_name, persona_description, expertise_level, daily_commitment, current_day,
		total_days, last_quiz_score, is_returning_user, content_buffer, updated_at)
		VALUES ('default', ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.Email,
		string(p.Role),
		p.Objective,
		nullableString(p.PersonaName),
		nullableString(p.PersonaDescription),
		domain.ClampExpertise(p.ExpertiseLevel),
		p.DailyCommitment,
		p.CurrentDay,
		p.TotalDays,
		p.LastQuizScore,
		boolToInt(p.IsReturningUser),
		buffer,
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("saving user profile: %w", err)
	}
	return nil
}

func (r *SQLiteProfileRepo) Delete(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM user_profile WHERE id = 'default'`); err != nil {
		return fmt.Errorf("deleting user profile: %w", err)
	}
	return nil
}
