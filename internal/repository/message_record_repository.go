package repository

import (
	"context"
	"errors"

	"github.com/opentracing/opentracing-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/talentstack/cvintake/interfaces"
	"github.com/talentstack/cvintake/internal/models"
	"github.com/talentstack/cvintake/internal/tracing"
)

type messageRecordRepository struct {
	db *gorm.DB
}

func NewMessageRecordRepository(db *gorm.DB) interfaces.MessageRecordRepository {
	return &messageRecordRepository{
		db: db,
	}
}

// IsHandled reports whether a message id was already taken through the
// pipeline. An absent record means not handled.
func (r *messageRecordRepository) IsHandled(ctx context.Context, messageID string) (bool, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "messageRecordRepository.IsHandled")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagMessageID(span, messageID)

	var record models.MessageRecord
	err := r.db.WithContext(ctx).
		Where("message_id = ?", messageID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		tracing.TraceErr(span, err)
		return false, err
	}

	return record.Handled, nil
}

// MarkHandled upserts the record with handled=true. The unique index on
// message_id makes this safe against overlapping runs: the second
// writer updates the same row instead of creating a duplicate.
func (r *messageRecordRepository) MarkHandled(ctx context.Context, messageID, emailAddress string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "messageRecordRepository.MarkHandled")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagMessageID(span, messageID)

	record := models.MessageRecord{
		MessageID:    messageID,
		EmailAddress: emailAddress,
		Handled:      true,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "message_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email_address", "handled", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}

	return nil
}

func (r *messageRecordRepository) GetByMessageID(ctx context.Context, messageID string) (*models.MessageRecord, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "messageRecordRepository.GetByMessageID")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagMessageID(span, messageID)

	var record models.MessageRecord
	if err := r.db.WithContext(ctx).Where("message_id = ?", messageID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, err)
		return nil, err
	}
	return &record, nil
}
