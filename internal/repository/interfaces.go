package repository

import (
	"context"

	"github.com/alexanderramin/lumina/internal/domain"
)

// ProfileRepo stores the single learner profile.
type ProfileRepo interface {
	Get(ctx context.Context) (*domain.UserProfile, error)
	Save(ctx context.Context, p *domain.UserProfile) error
	Delete(ctx context.Context) error
}

// CurriculumRepo stores the active curriculum.
type CurriculumRepo interface {
	Get(ctx context.Context) (*domain.Curriculum, error)
	Save(ctx context.Context, c *domain.Curriculum) error
	Delete(ctx context.Context) error
}

// ContentCache memoizes generated daily modules by CacheKey. Entries survive
// logout. Put ignores the unavailable sentinel.
type ContentCache interface {
	Get(ctx context.Context, key domain.CacheKey) (*domain.DailyContent, error)
	Put(ctx context.Context, key domain.CacheKey, content domain.DailyContent) error
	Delete(ctx context.Context, key domain.CacheKey) error
}
