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

// SQLiteContentCache implements ContentCache in the content_cache table.
type SQLiteContentCache struct {
	db db.DBTX
}

func NewSQLiteContentCache(conn db.DBTX) *SQLiteContentCache {
	return &SQLiteContentCache{db: conn}
}

func (c *SQLiteContentCache) Get(ctx context.Context, key domain.CacheKey) (*domain.DailyContent, error) {
	var raw string
	err := c.db.QueryRowContext(ctx,
		`SELECT content FROM content_cache WHERE role = ? AND objective = ? AND day = ? AND topic = ?`,
		string(key.Role), key.Objective, key.Day, key.Topic,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("content %s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("reading cached content: %w", err)
	}

	var content domain.DailyContent
	if err := json.Unmarshal([]byte(raw), &content); err != nil {
		return nil, fmt.Errorf("decoding cached content: %w", err)
	}
	return &content, nil
}

func (c *SQLiteContentCache) Put(ctx context.Context, key domain.CacheKey, content domain.DailyContent) error {
	if content.IsUnavailable() {
		return nil
	}
	raw, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("encoding content: %w", err)
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO content_cache (role, objective, day, topic, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		string(key.Role), key.Objective, key.Day, key.Topic, string(raw), nowUTC())
	if err != nil {
		return fmt.Errorf("writing cached content: %w", err)
	}
	return nil
}

func (c *SQLiteContentCache) Delete(ctx context.Context, key domain.CacheKey) error {
	_, err := c.db.ExecContext(ctx,
		`DELETE FROM content_cache WHERE role = ? AND objective = ? AND day = ? AND topic = ?`,
		string(key.Role), key.Objective, key.Day, key.Topic)
	if err != nil {
		return fmt.Errorf("deleting cached content: %w", err)
	}
	return nil
}
