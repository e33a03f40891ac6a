package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/talentstack/cvintake/internal/utils"
)

// MessageRecord marks one inbox message as seen by the ingestion
// pipeline. At most one record exists per message id; once Handled is
// set the message is never processed again.
type MessageRecord struct {
	ID           string `gorm:"type:varchar(50);primaryKey"`
	MessageID    string `gorm:"type:varchar(255);uniqueIndex;not null"`
	EmailAddress string `gorm:"type:varchar(500);not null"`
	Handled      bool   `gorm:"default:false"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;default:current_timestamp" json:"updatedAt"`
}

// TableName overrides the table name for MessageRecord
func (MessageRecord) TableName() string {
	return "message_records"
}

func (m *MessageRecord) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = utils.GenerateNanoIDWithPrefix("msg", 12)
	}
	m.CreatedAt = utils.Now()
	return nil
}
