package repository

import (
	"context"
	"errors"

	"github.com/opentracing/opentracing-go"
	"gorm.io/gorm"

	"github.com/talentstack/cvintake/interfaces"
	"github.com/talentstack/cvintake/internal/models"
	"github.com/talentstack/cvintake/internal/tracing"
)

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) interfaces.CandidateRepository {
	return &candidateRepository{
		db: db,
	}
}

func (r *candidateRepository) Save(ctx context.Context, candidate *models.Candidate) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "candidateRepository.Save")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	if candidate == nil {
		return ErrInvalidInput
	}

	result := r.db.WithContext(ctx).Save(candidate)
	if result.Error != nil {
		tracing.TraceErr(span, result.Error)
		return result.Error
	}

	return nil
}

// GetByID retrieves a candidate by its ID
func (r *candidateRepository) GetByID(ctx context.Context, id string) (*models.Candidate, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "candidateRepository.GetByID")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var candidate models.Candidate
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&candidate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, err)
		return nil, err
	}
	return &candidate, nil
}

// ListByScore returns all candidates, highest score first.
func (r *candidateRepository) ListByScore(ctx context.Context) ([]*models.Candidate, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "candidateRepository.ListByScore")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var candidates []*models.Candidate
	if err := r.db.WithContext(ctx).Order("score DESC").Find(&candidates).Error; err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return candidates, nil
}
